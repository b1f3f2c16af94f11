package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"investments-api/internal/models"
)

// AccountClaim carries the optional account id inside the token payload.
type AccountClaim struct {
	ID *int64 `json:"id,omitempty"`
}

// Claims is the signed token payload: the permission set and the account the
// token was issued to, if any. Tokens carry no expiry; single use is enforced
// by the revocation list instead.
type Claims struct {
	jwt.RegisteredClaims
	Permissions []string     `json:"permissions"`
	Account     AccountClaim `json:"account"`
}

// TokenService issues and verifies HS256-signed access tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService builds a TokenService around the configured secret. When no
// secret is configured a random per-process value is generated, which makes
// tokens unverifiable across restarts.
func NewTokenService(logger *zap.Logger, secret string) *TokenService {
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		secret = hex.EncodeToString(buf)
		logger.Warn("no secret key configured, using a random per-process value; tokens will not survive restarts")
	}
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token for the given account. A nil account yields an
// anonymous read-only token; an authenticated account gets read and write.
func (s *TokenService) Issue(account *models.Account) (string, error) {
	permissions := []Permission{PermissionRead}
	claim := AccountClaim{}
	if account != nil {
		permissions = []Permission{PermissionRead, PermissionWrite}
		claim.ID = &account.ID
	}

	// iat+jti keep consecutive logins from producing the same token string,
	// which would trip the single-use guard for the later one.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			ID:       uuid.New().String(),
		},
		Permissions: permissionStrings(permissions),
		Account:     claim,
	})
	return token.SignedString(s.secret)
}

// Verify checks the token signature and structure and returns its claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
