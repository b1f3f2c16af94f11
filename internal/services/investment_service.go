package services

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"investments-api/internal/models"
	"investments-api/internal/query"
	"investments-api/internal/repositories"
	"investments-api/internal/views"
	"investments-api/pkg"
)

type InvestmentService interface {
	List(ctx context.Context, traceID string, filter query.InvestmentFilter, opts query.Options) (views.InvestmentList, error)
	Create(ctx context.Context, traceID string, account *models.Account, req views.CreateInvestmentRequest) (views.Investment, error)
}

type InvestmentServiceImpl struct {
	logger      *zap.Logger
	investments repositories.InvestmentRepository
}

func NewInvestmentService(logger *zap.Logger, investments repositories.InvestmentRepository) InvestmentService {
	return &InvestmentServiceImpl{logger: logger, investments: investments}
}

func (s *InvestmentServiceImpl) List(ctx context.Context, traceID string, filter query.InvestmentFilter, opts query.Options) (views.InvestmentList, error) {
	records, err := s.investments.FindMany(ctx, filter, opts)
	if err != nil {
		return views.InvestmentList{}, pkg.HandleSQLError(s.logger, traceID, err)
	}

	total, err := s.investments.Count(ctx, filter)
	if err != nil {
		return views.InvestmentList{}, pkg.HandleSQLError(s.logger, traceID, err)
	}

	return views.InvestmentList{
		Data: views.NewInvestments(records),
		Pagination: query.Pagination{
			Total:      total,
			Offset:     opts.Offset,
			Page:       opts.Page,
			TotalPages: int(math.Ceil(float64(total) / float64(opts.Offset))),
		},
	}, nil
}

func (s *InvestmentServiceImpl) Create(ctx context.Context, traceID string, account *models.Account, req views.CreateInvestmentRequest) (views.Investment, error) {
	now := time.Now()
	investment := models.Investment{
		Amount:      req.Amount,
		AnnualRate:  req.AnnualRate,
		ConfirmedAt: req.ConfirmedAt,
		CreatedAt:   &now,
	}
	if account != nil {
		investment.CreatedBy = &account.ID
	}

	created, err := s.investments.Create(ctx, investment)
	if err != nil {
		return views.Investment{}, pkg.HandleSQLError(s.logger, traceID, err)
	}

	s.logger.Info("investment created",
		zap.String(pkg.TraceId, traceID),
		zap.Int64("id", created.ID),
		zap.Float64("amount", created.Amount),
	)
	return views.NewInvestment(created), nil
}
