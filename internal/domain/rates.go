package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrEmptySeries is returned by every window computation handed an empty
// daily table. It is a hard precondition failure, not a retryable state.
var ErrEmptySeries = errors.New("daily series is empty")

// RateKind tags a RateResult with the metric it represents.
type RateKind string

const (
	RateCaseVariation RateKind = "case_variation"
	RateMortality     RateKind = "mortality"
	RateICUOccupancy  RateKind = "icu_occupancy"
	RateVaccination   RateKind = "vaccination"
)

// RateResult is a computed percentage rounded to 2 decimals, or an explicit
// undefined marker when the computation's denominator summed to zero.
// Undefined is a value, not an error: downstream report text must be able to
// tell "no data to divide by" apart from a legitimate 0.00%.
type RateResult struct {
	Kind       RateKind `json:"kind"`
	PeriodDays int      `json:"period_days"`
	Value      float64  `json:"value"`
	Undefined  bool     `json:"undefined,omitempty"`
}

func (r RateResult) String() string {
	if r.Undefined {
		return fmt.Sprintf("%s/%dd: undefined", r.Kind, r.PeriodDays)
	}
	return fmt.Sprintf("%s/%dd: %.2f%%", r.Kind, r.PeriodDays, r.Value)
}

// CaseVariation computes the period-over-period percentage variation of case
// counts: the window is the most recent 2*periodDays calendar days ending at
// the series' max date, split into a previous and a current half, and the
// result is (curr-prev)/prev*100 rounded to 2 decimals.
//
// Dates absent from the series contribute zero to their half. A previous
// half summing to zero yields the undefined marker rather than ±Inf, the
// same policy RatioRate applies to a zero denominator.
func CaseVariation(daily []DailyRecord, periodDays int) (RateResult, error) {
	if len(daily) == 0 {
		return RateResult{}, ErrEmptySeries
	}
	if periodDays <= 0 {
		return RateResult{}, fmt.Errorf("case variation: period must be positive, got %d", periodDays)
	}

	last := maxSeriesDate(daily)
	windowStart := last.AddDate(0, 0, -(2*periodDays - 1))
	prevEnd := windowStart.AddDate(0, 0, periodDays-1)

	var prev, curr int
	for _, d := range daily {
		if d.Date.Before(windowStart) {
			continue
		}
		if d.Date.After(prevEnd) {
			curr += d.CaseCount
		} else {
			prev += d.CaseCount
		}
	}

	result := RateResult{Kind: RateCaseVariation, PeriodDays: periodDays}
	if prev == 0 {
		result.Undefined = true
		return result, nil
	}
	result.Value = round2(float64(curr-prev) / float64(prev) * 100)
	return result, nil
}

// ratioKinds maps a numerator field to the metric it defines.
var ratioKinds = map[CountField]RateKind{
	FieldDeaths:     RateMortality,
	FieldICU:        RateICUOccupancy,
	FieldVaccinated: RateVaccination,
}

// RatioRate computes sum(numerator)/sum(denominator)*100 over the most
// recent periodDays calendar days ending at the series' max date, rounded to
// 2 decimals. A denominator summing to zero yields the undefined marker.
func RatioRate(daily []DailyRecord, numerator, denominator CountField, periodDays int) (RateResult, error) {
	if len(daily) == 0 {
		return RateResult{}, ErrEmptySeries
	}
	if periodDays <= 0 {
		return RateResult{}, fmt.Errorf("ratio rate: period must be positive, got %d", periodDays)
	}

	kind, ok := ratioKinds[numerator]
	if !ok {
		kind = RateKind(string(numerator) + "_ratio")
	}

	last := maxSeriesDate(daily)
	windowStart := last.AddDate(0, 0, -(periodDays - 1))

	var num, den int
	for _, d := range daily {
		if d.Date.Before(windowStart) {
			continue
		}
		num += d.Count(numerator)
		den += d.Count(denominator)
	}

	result := RateResult{Kind: kind, PeriodDays: periodDays}
	if den == 0 {
		result.Undefined = true
		return result, nil
	}
	result.Value = round2(float64(num) / float64(den) * 100)
	return result, nil
}

func maxSeriesDate(daily []DailyRecord) time.Time {
	last := daily[0].Date
	for _, d := range daily[1:] {
		if d.Date.After(last) {
			last = d.Date
		}
	}
	return last
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
