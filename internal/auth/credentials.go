package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"go.uber.org/zap"

	"investments-api/internal/models"
	"investments-api/internal/repositories"
	"investments-api/pkg"
)

// DigestPassword returns the hex-encoded SHA-256 digest stored for accounts.
// Passwords are never persisted or compared in clear.
func DigestPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CredentialVerifier checks an email/password pair against stored accounts.
type CredentialVerifier struct {
	logger   *zap.Logger
	accounts repositories.AccountRepository
}

func NewCredentialVerifier(logger *zap.Logger, accounts repositories.AccountRepository) *CredentialVerifier {
	return &CredentialVerifier{logger: logger, accounts: accounts}
}

// Verify returns the matching account, or an authentication error when the
// pair is empty or does not match any account.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*models.Account, error) {
	if email == "" || password == "" {
		return nil, pkg.NewAuthenticationError("Invalid login data.")
	}

	account, err := v.accounts.FindByCredentials(ctx, email, DigestPassword(password))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.NewAuthenticationError("Invalid credentials.")
		}
		v.logger.Error("credential lookup failed", zap.Error(err))
		return nil, err
	}
	return account, nil
}
