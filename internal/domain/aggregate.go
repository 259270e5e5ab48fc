package domain

import (
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// AggregateDaily builds the daily summary table from raw cases: one
// DailyRecord per distinct notification date present in the input, ordered
// ascending. Case, death, and ICU counts cover the full input; the
// vaccinated count is computed only for cases inside the trailing
// vaccWindowDays calendar days ending at the input's max date (inclusive),
// because the vaccination rate only ever reads that window and the
// classification is the expensive part of the pass.
//
// Cases with a zero notification date are skipped. Empty input yields nil.
// The input slice is not mutated; calling twice yields identical output.
func AggregateDaily(cases []CaseRecord, vaccWindowDays int) []DailyRecord {
	counted := make([]CaseRecord, 0, len(cases))
	for _, c := range cases {
		if !c.NotificationDate.IsZero() {
			counted = append(counted, c)
		}
	}
	if len(counted) == 0 {
		return nil
	}

	maxDate := counted[0].NotificationDate
	caseCounts := make(map[time.Time]int)
	for _, c := range counted {
		caseCounts[c.NotificationDate]++
		if c.NotificationDate.After(maxDate) {
			maxDate = c.NotificationDate
		}
	}

	// The three sub-counts are independent passes over the same read-only
	// slice, so they run as one worker each and merge by date afterward.
	var deaths, icus, vaccinated map[time.Time]int
	var g errgroup.Group
	g.Go(func() error {
		deaths = countWhere(counted, func(c CaseRecord) bool {
			return c.Outcome == OutcomeDeath
		})
		return nil
	})
	g.Go(func() error {
		icus = countWhere(counted, func(c CaseRecord) bool {
			return c.ICUAdmission
		})
		return nil
	})
	g.Go(func() error {
		windowStart := maxDate.AddDate(0, 0, -(vaccWindowDays - 1))
		vaccinated = countWhere(counted, func(c CaseRecord) bool {
			if c.NotificationDate.Before(windowStart) {
				return false
			}
			return Classify(c.Classification, c.FluVaccine, c.CovidVaccine) == LabelVaccinated
		})
		return nil
	})
	_ = g.Wait() // workers never return an error

	dates := make([]time.Time, 0, len(caseCounts))
	for d := range caseCounts {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	daily := make([]DailyRecord, 0, len(dates))
	for _, d := range dates {
		daily = append(daily, DailyRecord{
			Date:            d,
			CaseCount:       caseCounts[d],
			DeathCount:      deaths[d],
			ICUCount:        icus[d],
			VaccinatedCount: vaccinated[d],
		})
	}
	return daily
}

func countWhere(cases []CaseRecord, match func(CaseRecord) bool) map[time.Time]int {
	counts := make(map[time.Time]int)
	for _, c := range cases {
		if match(c) {
			counts[c.NotificationDate]++
		}
	}
	return counts
}
