package views

import (
	"time"

	"investments-api/internal/models"
	"investments-api/internal/query"
)

// Investment is the wire representation of an investment record.
type Investment struct {
	ID          int64      `json:"id"`
	Amount      float64    `json:"amount"`
	AnnualRate  float64    `json:"annual_rate"`
	ConfirmedAt time.Time  `json:"confirmed_at"`
	CreatedAt   *time.Time `json:"created_at"`
	CreatedBy   *int64     `json:"created_by"`
}

func NewInvestment(m models.Investment) Investment {
	return Investment{
		ID:          m.ID,
		Amount:      m.Amount,
		AnnualRate:  m.AnnualRate,
		ConfirmedAt: m.ConfirmedAt,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

func NewInvestments(ms []models.Investment) []Investment {
	out := make([]Investment, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewInvestment(m))
	}
	return out
}

// CreateInvestmentRequest is the POST /investments payload.
type CreateInvestmentRequest struct {
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	AnnualRate  float64   `json:"annualRate" binding:"required,gt=0"`
	ConfirmedAt time.Time `json:"confirmedAt" binding:"required"`
}

type InvestmentList struct {
	Data       []Investment     `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

type InvestmentCreated struct {
	Data Investment `json:"data"`
}
