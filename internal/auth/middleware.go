package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"investments-api/internal/models"
	"investments-api/internal/repositories"
	"investments-api/pkg"
)

const (
	ContextAccount     = "account"
	ContextPermissions = "permissions"
)

// Middleware bundles the authentication gates applied in front of handlers.
type Middleware struct {
	logger      *zap.Logger
	credentials *CredentialVerifier
	tokens      *TokenService
	accounts    repositories.AccountRepository
	revoked     TokenRevocationList
}

func NewMiddleware(logger *zap.Logger, credentials *CredentialVerifier, tokens *TokenService, accounts repositories.AccountRepository, revoked TokenRevocationList) *Middleware {
	return &Middleware{
		logger:      logger,
		credentials: credentials,
		tokens:      tokens,
		accounts:    accounts,
		revoked:     revoked,
	}
}

// Basic authenticates HTTP Basic credentials via the credential verifier.
// A missing Authorization header, or one with a different scheme, is a
// pass-through: the request continues anonymously. Present-but-invalid
// credentials are rejected.
func (m *Middleware) Basic() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(pkg.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Basic ") {
			c.Next()
			return
		}

		email, password, ok := c.Request.BasicAuth()
		if !ok {
			pkg.WriteError(c, m.logger, pkg.NewAuthenticationError("Invalid login data."))
			return
		}

		account, err := m.credentials.Verify(c.Request.Context(), email, password)
		if err != nil {
			pkg.WriteError(c, m.logger, err)
			return
		}

		c.Set(ContextAccount, account)
		c.Next()
	}
}

// Bearer validates the access token and enforces single use. The steps run in
// order: signature check, account re-resolution, permission extraction, and
// only then the atomic replay consume — a token that fails an earlier step is
// not burned and can be retried.
func (m *Middleware) Bearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(pkg.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			pkg.WriteError(c, m.logger, pkg.NewAuthenticationError("Unauthorized. No auth token."))
			return
		}

		claims, err := m.tokens.Verify(raw)
		if err != nil {
			pkg.WriteError(c, m.logger, pkg.NewAuthenticationError("Unauthorized. Invalid token."))
			return
		}

		var account *models.Account
		if claims.Account.ID != nil {
			account, err = m.accounts.FindByID(c.Request.Context(), *claims.Account.ID)
			if err != nil {
				if errors.Is(err, pkg.ErrNotFound) {
					pkg.WriteError(c, m.logger, pkg.NewAuthenticationError("Unauthorized. Account not found."))
					return
				}
				pkg.WriteError(c, m.logger, err)
				return
			}
		}

		permissions := ParsePermissions(claims.Permissions)

		// The raw header value is the unit of replay protection, consumed
		// atomically so concurrent identical requests admit at most one.
		fresh, err := m.revoked.TryConsume(c.Request.Context(), header)
		if err != nil {
			pkg.WriteError(c, m.logger, err)
			return
		}
		if !fresh {
			pkg.WriteError(c, m.logger, pkg.NewAuthenticationError("Unauthorized. Token already used."))
			return
		}

		c.Set(ContextAccount, account)
		c.Set(ContextPermissions, permissions)
		c.Next()
	}
}

// RequirePermissions rejects requests whose resolved permission set is empty
// or missing any of the required permissions.
func (m *Middleware) RequirePermissions(required ...Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		granted := PermissionsFromContext(c)
		if len(granted) == 0 {
			pkg.WriteError(c, m.logger, pkg.NewAuthorizationError("Unauthorized. Missing permissions."))
			return
		}
		for _, p := range required {
			if !hasPermission(granted, p) {
				pkg.WriteError(c, m.logger, pkg.NewAuthorizationError("Unauthorized. Permission not found."))
				return
			}
		}
		c.Next()
	}
}

// AccountFromContext returns the authenticated account, or nil for anonymous
// requests.
func AccountFromContext(c *gin.Context) *models.Account {
	v, ok := c.Get(ContextAccount)
	if !ok {
		return nil
	}
	account, _ := v.(*models.Account)
	return account
}

// PermissionsFromContext returns the permission set resolved from the token.
func PermissionsFromContext(c *gin.Context) []Permission {
	v, ok := c.Get(ContextPermissions)
	if !ok {
		return nil
	}
	perms, _ := v.([]Permission)
	return perms
}
