package domain

import (
	"fmt"
	"time"
)

// DailyPoint is one (date, cases) pair of the daily chart series.
type DailyPoint struct {
	Date  time.Time `json:"date"`
	Cases int       `json:"cases"`
}

// MonthlyBucket is one calendar-month bucket of the monthly chart series.
// Partial is true when the bucket is the series' final month and the max
// date is not the last calendar day of that month; chart rendering uses it
// to visually set the incomplete bar apart.
type MonthlyBucket struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Cases   int        `json:"cases"`
	Partial bool       `json:"partial,omitempty"`
}

// Label formats the bucket as MM/YY for chart axes.
func (b MonthlyBucket) Label() string {
	return fmt.Sprintf("%02d/%02d", int(b.Month), b.Year%100)
}

// DailySeries returns the trailing periodDays calendar days of case counts
// ending at the series' max date, ascending. Dates with no cases inside the
// range are filled with zero-count points so consumers always receive a
// continuous daily grid.
func DailySeries(daily []DailyRecord, periodDays int) ([]DailyPoint, error) {
	if len(daily) == 0 {
		return nil, ErrEmptySeries
	}
	if periodDays <= 0 {
		return nil, fmt.Errorf("daily series: period must be positive, got %d", periodDays)
	}

	counts := make(map[time.Time]int, len(daily))
	for _, d := range daily {
		counts[d.Date] = d.CaseCount
	}

	last := maxSeriesDate(daily)
	start := last.AddDate(0, 0, -(periodDays - 1))

	points := make([]DailyPoint, 0, periodDays)
	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		points = append(points, DailyPoint{Date: d, Cases: counts[d]})
	}
	return points, nil
}

// MonthlySeries sums case counts into calendar-month buckets for the
// trailing periodMonths months ending at the series' max date's month,
// ascending. Months inside the span with no cases yield zero-count buckets.
func MonthlySeries(daily []DailyRecord, periodMonths int) ([]MonthlyBucket, error) {
	if len(daily) == 0 {
		return nil, ErrEmptySeries
	}
	if periodMonths <= 0 {
		return nil, fmt.Errorf("monthly series: period must be positive, got %d", periodMonths)
	}

	last := maxSeriesDate(daily)
	lastMonth := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstMonth := lastMonth.AddDate(0, -(periodMonths - 1), 0)

	counts := make(map[time.Time]int)
	for _, d := range daily {
		m := time.Date(d.Date.Year(), d.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		if m.Before(firstMonth) {
			continue
		}
		counts[m] += d.CaseCount
	}

	buckets := make([]MonthlyBucket, 0, periodMonths)
	for m := firstMonth; !m.After(lastMonth); m = m.AddDate(0, 1, 0) {
		buckets = append(buckets, MonthlyBucket{
			Year:    m.Year(),
			Month:   m.Month(),
			Cases:   counts[m],
			Partial: m.Equal(lastMonth) && !isLastDayOfMonth(last),
		})
	}
	return buckets, nil
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
