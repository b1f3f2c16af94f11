package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"investments-api/internal/models"
)

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBucketKey(t *testing.T) {
	tests := []struct {
		name string
		time *time.Time
		unit Unit
		want string
	}{
		{"day", ts("2024-10-18T20:23:01Z"), UnitDay, "18/10/2024"},
		{"day pads single digits", ts("2024-03-05T00:00:00Z"), UnitDay, "05/03/2024"},
		{"week", ts("2024-10-18T20:23:01Z"), UnitWeek, "42/2024"},
		{"week at iso year boundary", ts("2024-12-31T12:00:00Z"), UnitWeek, "1/2025"},
		{"month", ts("2024-10-18T20:23:01Z"), UnitMonth, "10/2024"},
		{"month single digit", ts("2024-03-05T00:00:00Z"), UnitMonth, "3/2024"},
		{"year", ts("2024-10-18T20:23:01Z"), UnitYear, "2024"},
		{"nil timestamp", nil, UnitDay, NullKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BucketKey(tc.time, tc.unit))
		})
	}
}

func TestParseUnit(t *testing.T) {
	for _, valid := range []string{"day", "week", "month", "year"} {
		unit, ok := ParseUnit(valid)
		assert.True(t, ok)
		assert.Equal(t, Unit(valid), unit)
	}

	for _, invalid := range []string{"", "Day", "hour", "notValidGroupByValue"} {
		_, ok := ParseUnit(invalid)
		assert.False(t, ok, "expected %q to be rejected", invalid)
	}
}

func TestAggregate_GroupsAndSums(t *testing.T) {
	investments := []models.Investment{
		{Amount: 10, CreatedAt: ts("2024-10-18T08:00:00Z")},
		{Amount: 2.5, CreatedAt: ts("2024-10-19T09:00:00Z")},
		{Amount: 30, CreatedAt: ts("2024-10-18T23:59:59Z")},
	}

	entries := Aggregate(investments, UnitDay)

	assert.Equal(t, []Entry{
		{"18/10/2024": Bucket{Count: 2, TotalAmount: 42.5}},
		{"19/10/2024": Bucket{Count: 1, TotalAmount: 2.5}},
	}, entries)
}

func TestAggregate_PreservesFirstOccurrenceOrder(t *testing.T) {
	investments := []models.Investment{
		{Amount: 1, CreatedAt: ts("2024-12-01T00:00:00Z")},
		{Amount: 1, CreatedAt: ts("2024-01-01T00:00:00Z")},
		{Amount: 1, CreatedAt: ts("2024-12-02T00:00:00Z")},
		{Amount: 1, CreatedAt: ts("2024-01-15T00:00:00Z")},
	}

	entries := Aggregate(investments, UnitMonth)

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		for k := range e {
			keys = append(keys, k)
		}
	}
	// December first because it appears first in the input, not sorted.
	assert.Equal(t, []string{"12/2024", "1/2024"}, keys)
}

func TestAggregate_NullBucket(t *testing.T) {
	investments := []models.Investment{
		{Amount: 5, CreatedAt: nil},
		{Amount: 7, CreatedAt: ts("2024-06-10T00:00:00Z")},
		{Amount: 3, CreatedAt: nil},
	}

	entries := Aggregate(investments, UnitYear)

	assert.Len(t, entries, 2)
	assert.Equal(t, Entry{NullKey: Bucket{Count: 2, TotalAmount: 8}}, entries[0])
	assert.Equal(t, Entry{"2024": Bucket{Count: 1, TotalAmount: 7}}, entries[1])
}

func TestAggregate_Idempotent(t *testing.T) {
	investments := []models.Investment{
		{Amount: 1.25, CreatedAt: ts("2024-02-29T12:00:00Z")},
		{Amount: 2, CreatedAt: ts("2024-03-01T12:00:00Z")},
		{Amount: 4.75, CreatedAt: ts("2024-02-29T13:00:00Z")},
	}

	first := Aggregate(investments, UnitWeek)
	second := Aggregate(investments, UnitWeek)
	assert.Equal(t, first, second)

	// Totals are conserved.
	var count int
	var total float64
	for _, e := range first {
		for _, b := range e {
			count += b.Count
			total += b.TotalAmount
		}
	}
	assert.Equal(t, len(investments), count)
	assert.InDelta(t, 8.0, total, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	entries := Aggregate(nil, UnitDay)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
