package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"investments-api/internal/auth"
	"investments-api/internal/config"
	"investments-api/internal/models"
	"investments-api/internal/repositories"
	"investments-api/pkg"
	"investments-api/pkg/database"
)

// main seeds a known test account and randomized investments.
// It initializes logging, loads config, connects to the database, runs
// migrations, and performs the inserts.
func main() {
	noOfInvestments := flag.Int("noOfInvestments", 100, "Number of investments to seed")
	minAmount := flag.Float64("minAmount", 10.0, "Min investment amount")
	maxAmount := flag.Float64("maxAmount", 5000.0, "Max investment amount")
	daysBack := flag.Int("daysBack", 365, "Spread created_at over this many past days")

	flag.Parse()

	pkg.InitLogger()
	logger := pkg.Logger
	defer logger.Sync()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	dbConfig := database.Config{
		PrimaryDSN:  cfg.PrimaryDbAddr,
		ReplicaDSNs: []string{cfg.ReplicaDbAddr},
		MaxConns:    cfg.MaxDbCons,
		MinConns:    cfg.MinDbCons,
	}

	ctx := context.Background()
	db, closer, err := database.New(ctx, logger, dbConfig)
	if err != nil {
		logger.Fatal("failed to init DB", zap.Error(err))
	}
	defer closer()

	if err = database.RunMigrations(logger, cfg.PrimaryDbAddr); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	accountRepo := repositories.NewAccountRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)

	accounts := []struct {
		email    string
		password string
	}{
		{"test1@email.com", "prova1"},
		{"test2@email.com", "prova2"},
	}

	var accountIDs []int64
	for _, a := range accounts {
		id, err := accountRepo.Create(ctx, models.Account{
			Email:          a.email,
			PasswordDigest: auth.DigestPassword(a.password),
		})
		if err != nil {
			logger.Fatal("failed to seed account", zap.String("email", a.email), zap.Error(err))
		}
		accountIDs = append(accountIDs, id)
		logger.Info("account seeded", zap.String("email", a.email), zap.Int64("id", id))
	}

	minAmt := *minAmount
	maxAmt := *maxAmount
	if minAmt > maxAmt {
		minAmt, maxAmt = maxAmt, minAmt
	}

	now := time.Now()
	for i := 0; i < *noOfInvestments; i++ {
		createdAt := now.Add(-time.Duration(rand.Intn(*daysBack*24)) * time.Hour)
		createdBy := accountIDs[rand.Intn(len(accountIDs))]

		_, err := investmentRepo.Create(ctx, models.Investment{
			Amount:      minAmt + rand.Float64()*(maxAmt-minAmt),
			AnnualRate:  0.5 + rand.Float64()*14.5,
			ConfirmedAt: createdAt.Add(time.Duration(rand.Intn(72)) * time.Hour),
			CreatedAt:   &createdAt,
			CreatedBy:   &createdBy,
		})
		if err != nil {
			logger.Fatal("failed to seed investment", zap.Error(err))
		}
	}

	logger.Info("seeding complete",
		zap.Int("accounts", len(accountIDs)),
		zap.Int("investments", *noOfInvestments),
	)
}
