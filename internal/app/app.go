package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"investments-api/internal/auth"
	"investments-api/internal/config"
	"investments-api/internal/handlers"
	"investments-api/internal/repositories"
	"investments-api/internal/services"
	"investments-api/pkg"
	"investments-api/pkg/cache"
	"investments-api/pkg/database"
	middleware "investments-api/pkg/middlewares"
)

// New wires dependencies, builds the Gin engine, and returns an *http.Server
// and a cleanup func. Configuration comes from environment variables via
// config.Load.
func New(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	cfg, err := config.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	// Initialize postgres db
	dbConfig := database.Config{
		PrimaryDSN:  cfg.PrimaryDbAddr,
		ReplicaDSNs: []string{cfg.ReplicaDbAddr},
		MaxConns:    cfg.MaxDbCons,
		MinConns:    cfg.MinDbCons,
	}
	db, disconnect, err := database.New(ctx, logger, dbConfig)
	if err != nil {
		return nil, nil, err
	}

	if err := database.RunMigrations(logger, cfg.PrimaryDbAddr); err != nil {
		disconnect()
		return nil, nil, err
	}

	// Token revocation shares state through Redis when configured; otherwise
	// single use is enforced per process only.
	var revoked auth.TokenRevocationList = auth.NewMemoryRevocationList()
	closeRedis := func() {}
	limiter := pkg.NewDistributedLimiter(nil, "global:login_rate", cfg.LoginRate, cfg.LoginBurst, time.Minute, logger)
	if cfg.RedisAddr != "" {
		redisClient, closer, err := cache.New(ctx, cache.Config{Addr: cfg.RedisAddr})
		if err != nil {
			disconnect()
			return nil, nil, err
		}
		closeRedis = closer
		revoked = auth.NewRedisRevocationList(redisClient)
		limiter = pkg.NewDistributedLimiter(redisClient, "global:login_rate", cfg.LoginRate, cfg.LoginBurst, time.Minute, logger)
	}

	// Setup dependencies
	accountRepo := repositories.NewAccountRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)

	tokens := auth.NewTokenService(logger, cfg.SecretKey)
	credentials := auth.NewCredentialVerifier(logger, accountRepo)
	authMw := auth.NewMiddleware(logger, credentials, tokens, accountRepo, revoked)

	authService := services.NewAuthService(logger, tokens)
	investmentService := services.NewInvestmentService(logger, investmentRepo)
	statsService := services.NewStatsService(logger, investmentRepo)

	baseHandler := handlers.NewBaseHandler(logger)
	authHandler := handlers.NewAuthHandler(logger, authService, limiter)
	investmentHandler := handlers.NewInvestmentHandler(logger, investmentService, statsService)

	// Router
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		pkg.WriteError(c, logger, pkg.NewMethodNotAllowedError())
	})

	api := r.Group("/api")
	api.Use(middleware.TraceID())
	api.Use(middleware.Metrics())

	authHandler.RegisterRoutes(api, authMw)
	investmentHandler.RegisterRoutes(api, authMw)
	baseHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {
		disconnect()
		closeRedis()
	}

	return srv, cleanup, nil
}
