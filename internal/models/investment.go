package models

import "time"

// Investment maps to table `investments`. Records are append-only: the API
// creates and reads them, never mutates or deletes.
type Investment struct {
	ID          int64
	Amount      float64
	AnnualRate  float64
	ConfirmedAt time.Time
	CreatedAt   *time.Time
	CreatedBy   *int64
}
