package query

import (
	"fmt"
	"strings"
	"time"
)

// Filterable fields accept either an exact value or an open {gt, lt} range.
// Exact takes precedence when both are set.

type NumberFilter struct {
	Exact *float64
	Gt    *float64
	Lt    *float64
}

type IntFilter struct {
	Exact *int64
	Gt    *int64
	Lt    *int64
}

type TimeFilter struct {
	Exact *time.Time
	Gt    *time.Time
	Lt    *time.Time
}

// IsZero reports whether the filter constrains anything.
func (f TimeFilter) IsZero() bool {
	return f.Exact == nil && f.Gt == nil && f.Lt == nil
}

// InvestmentFilter holds every filterable field of the investments table.
type InvestmentFilter struct {
	ID          IntFilter
	Amount      NumberFilter
	AnnualRate  NumberFilter
	ConfirmedAt TimeFilter
	CreatedAt   TimeFilter
	CreatedBy   IntFilter
}

// SQL renders the filter as a WHERE clause with positional args. Returns an
// empty string when no field is constrained.
func (f InvestmentFilter) SQL() (string, []any) {
	b := &clauseBuilder{}
	f.ID.apply(b, "id")
	f.Amount.apply(b, "amount")
	f.AnnualRate.apply(b, "annual_rate")
	f.ConfirmedAt.apply(b, "confirmed_at")
	f.CreatedAt.apply(b, "created_at")
	f.CreatedBy.apply(b, "created_by")
	return b.where(), b.args
}

type clauseBuilder struct {
	conds []string
	args  []any
}

func (b *clauseBuilder) add(column, op string, value any) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s %s $%d", column, op, len(b.args)))
}

func (b *clauseBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func (f NumberFilter) apply(b *clauseBuilder, column string) {
	if f.Exact != nil {
		b.add(column, "=", *f.Exact)
		return
	}
	if f.Gt != nil {
		b.add(column, ">", *f.Gt)
	}
	if f.Lt != nil {
		b.add(column, "<", *f.Lt)
	}
}

func (f IntFilter) apply(b *clauseBuilder, column string) {
	if f.Exact != nil {
		b.add(column, "=", *f.Exact)
		return
	}
	if f.Gt != nil {
		b.add(column, ">", *f.Gt)
	}
	if f.Lt != nil {
		b.add(column, "<", *f.Lt)
	}
}

func (f TimeFilter) apply(b *clauseBuilder, column string) {
	if f.Exact != nil {
		b.add(column, "=", *f.Exact)
		return
	}
	if f.Gt != nil {
		b.add(column, ">", *f.Gt)
	}
	if f.Lt != nil {
		b.add(column, "<", *f.Lt)
	}
}
