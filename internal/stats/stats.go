// Package stats groups investments into calendar buckets and computes
// per-bucket aggregates. Pure functions, no I/O.
package stats

import (
	"fmt"
	"strconv"
	"time"

	"investments-api/internal/models"
)

// Unit is the calendar bucketing granularity.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

// ParseUnit validates a groupBy query value.
func ParseUnit(s string) (Unit, bool) {
	switch Unit(s) {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return Unit(s), true
	}
	return "", false
}

// NullKey groups records with no created_at timestamp.
const NullKey = "null"

// Bucket holds the aggregates for one calendar bucket.
type Bucket struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// Entry is a single-key object {bucket_key: aggregates}, matching the wire
// shape of the stats response.
type Entry map[string]Bucket

// Aggregate buckets investments by the calendar unit of their created_at.
// Records without a created_at all land in the "null" bucket. Entries appear
// in first-occurrence order of their key, not sorted.
func Aggregate(investments []models.Investment, unit Unit) []Entry {
	var order []string
	buckets := make(map[string]Bucket)

	for _, inv := range investments {
		key := BucketKey(inv.CreatedAt, unit)
		b, seen := buckets[key]
		if !seen {
			order = append(order, key)
		}
		b.Count++
		b.TotalAmount += inv.Amount
		buckets[key] = b
	}

	entries := make([]Entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, Entry{key: buckets[key]})
	}
	return entries
}

// BucketKey formats a timestamp as its calendar bucket identifier.
func BucketKey(t *time.Time, unit Unit) string {
	if t == nil {
		return NullKey
	}
	switch unit {
	case UnitDay:
		return t.Format("02/01/2006")
	case UnitWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d/%d", week, year)
	case UnitMonth:
		return fmt.Sprintf("%d/%d", int(t.Month()), t.Year())
	case UnitYear:
		return strconv.Itoa(t.Year())
	}
	return NullKey
}
