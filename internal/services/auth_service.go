package services

import (
	"go.uber.org/zap"

	"investments-api/internal/auth"
	"investments-api/internal/models"
	"investments-api/internal/views"
	"investments-api/pkg"
)

type AuthService interface {
	// Login issues an access token. A nil account produces an anonymous
	// read-only token; login itself never rejects.
	Login(traceID string, account *models.Account) (views.LoginResponse, error)
}

type AuthServiceImpl struct {
	logger *zap.Logger
	tokens *auth.TokenService
}

func NewAuthService(logger *zap.Logger, tokens *auth.TokenService) AuthService {
	return &AuthServiceImpl{logger: logger, tokens: tokens}
}

func (s *AuthServiceImpl) Login(traceID string, account *models.Account) (views.LoginResponse, error) {
	token, err := s.tokens.Issue(account)
	if err != nil {
		s.logger.Error("token issuance failed", zap.String(pkg.TraceId, traceID), zap.Error(err))
		return views.LoginResponse{}, err
	}

	fields := []zap.Field{zap.String(pkg.TraceId, traceID), zap.Bool("anonymous", account == nil)}
	if account != nil {
		fields = append(fields, zap.Int64("accountId", account.ID))
	}
	s.logger.Info("login", fields...)

	return views.LoginResponse{Data: views.TokenData{Token: token}}, nil
}
