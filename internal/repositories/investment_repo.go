package repositories

import (
	"context"
	"fmt"
	"strings"

	"investments-api/internal/models"
	"investments-api/internal/query"
	"investments-api/pkg/database"
)

type InvestmentRepository interface {
	Create(ctx context.Context, investment models.Investment) (models.Investment, error)
	// FindMany returns a page of investments matching filter, sorted per opts.
	FindMany(ctx context.Context, filter query.InvestmentFilter, opts query.Options) ([]models.Investment, error)
	Count(ctx context.Context, filter query.InvestmentFilter) (int, error)
	// FindAllByCreatedAt returns every investment whose created_at falls in rng,
	// without pagination; used by the stats aggregation.
	FindAllByCreatedAt(ctx context.Context, rng query.TimeFilter) ([]models.Investment, error)
}

type InvestmentRepositoryImpl struct {
	db *database.DB
}

func NewInvestmentRepository(db *database.DB) InvestmentRepository {
	return &InvestmentRepositoryImpl{db: db}
}

const investmentColumns = "id, amount, annual_rate, confirmed_at, created_at, created_by"

func (r InvestmentRepositoryImpl) Create(ctx context.Context, investment models.Investment) (models.Investment, error) {
	err := r.db.QueryRowPrimary(ctx, `
						INSERT INTO investments (amount, annual_rate, confirmed_at, created_at, created_by)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING id`,
		investment.Amount,
		investment.AnnualRate,
		investment.ConfirmedAt,
		investment.CreatedAt,
		investment.CreatedBy,
	).Scan(&investment.ID)
	if err != nil {
		return models.Investment{}, err
	}
	return investment, nil
}

func (r InvestmentRepositoryImpl) FindMany(ctx context.Context, filter query.InvestmentFilter, opts query.Options) ([]models.Investment, error) {
	where, args := filter.SQL()

	args = append(args, opts.Offset, (opts.Page-1)*opts.Offset)
	sql := fmt.Sprintf("SELECT %s FROM investments%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		investmentColumns,
		where,
		opts.SortBy,
		strings.ToUpper(string(opts.SortOrder)),
		len(args)-1,
		len(args),
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		var inv models.Investment
		if err = rows.Scan(
			&inv.ID,
			&inv.Amount,
			&inv.AnnualRate,
			&inv.ConfirmedAt,
			&inv.CreatedAt,
			&inv.CreatedBy,
		); err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func (r InvestmentRepositoryImpl) Count(ctx context.Context, filter query.InvestmentFilter) (int, error) {
	where, args := filter.SQL()
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM investments"+where, args...).Scan(&count)
	return count, err
}

func (r InvestmentRepositoryImpl) FindAllByCreatedAt(ctx context.Context, rng query.TimeFilter) ([]models.Investment, error) {
	filter := query.InvestmentFilter{CreatedAt: rng}
	where, args := filter.SQL()

	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT %s FROM investments%s", investmentColumns, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		var inv models.Investment
		if err = rows.Scan(
			&inv.ID,
			&inv.Amount,
			&inv.AnnualRate,
			&inv.ConfirmedAt,
			&inv.CreatedAt,
			&inv.CreatedBy,
		); err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}
