package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"investments-api/internal/auth"
	"investments-api/internal/services"
	"investments-api/pkg"
	"investments-api/pkg/utils"
)

type AuthHandler struct {
	logger  *zap.Logger
	service services.AuthService
	limiter *pkg.DistributedLimiter
}

func NewAuthHandler(logger *zap.Logger, svc services.AuthService, limiter *pkg.DistributedLimiter) *AuthHandler {
	return &AuthHandler{logger: logger, service: svc, limiter: limiter}
}

// RegisterRoutes registers the login route. The Basic gate is a pass-through
// for non-Basic requests, so the endpoint also serves anonymous logins.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, mw *auth.Middleware) {
	r.POST("/auth", h.rateLimit, mw.Basic(), h.Login)
}

func (h *AuthHandler) rateLimit(c *gin.Context) {
	if !h.limiter.Allow(c.Request.Context()) {
		pkg.WriteError(c, h.logger, pkg.NewAppError(http.StatusTooManyRequests, "Too many login attempts.", nil))
		return
	}
	c.Next()
}

func (h *AuthHandler) Login(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		pkg.WriteError(c, h.logger, err)
		return
	}

	response, err := h.service.Login(traceID, auth.AccountFromContext(c))
	if err != nil {
		pkg.WriteError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
