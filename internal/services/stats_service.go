package services

import (
	"context"

	"go.uber.org/zap"

	"investments-api/internal/query"
	"investments-api/internal/repositories"
	"investments-api/internal/stats"
	"investments-api/internal/views"
	"investments-api/pkg"
)

type StatsService interface {
	// GetStats aggregates investments created in rng into calendar buckets.
	GetStats(ctx context.Context, traceID string, rng query.TimeFilter, unit stats.Unit) (views.StatsResponse, error)
}

type StatsServiceImpl struct {
	logger      *zap.Logger
	investments repositories.InvestmentRepository
}

func NewStatsService(logger *zap.Logger, investments repositories.InvestmentRepository) StatsService {
	return &StatsServiceImpl{logger: logger, investments: investments}
}

func (s *StatsServiceImpl) GetStats(ctx context.Context, traceID string, rng query.TimeFilter, unit stats.Unit) (views.StatsResponse, error) {
	records, err := s.investments.FindAllByCreatedAt(ctx, rng)
	if err != nil {
		return views.StatsResponse{}, pkg.HandleSQLError(s.logger, traceID, err)
	}

	entries := stats.Aggregate(records, unit)
	return views.StatsResponse{Data: entries}, nil
}
