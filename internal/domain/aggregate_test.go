package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func caseOn(d time.Time) CaseRecord {
	return CaseRecord{NotificationDate: d, Classification: ClassificationUnspecified}
}

func TestAggregateDaily(t *testing.T) {
	d1 := day(2026, 3, 10)
	d2 := day(2026, 3, 11)
	d3 := day(2026, 3, 13) // gap on the 12th stays a gap

	t.Run("one record per distinct date, ascending", func(t *testing.T) {
		cases := []CaseRecord{caseOn(d3), caseOn(d1), caseOn(d2), caseOn(d1)}
		daily := AggregateDaily(cases, 30)

		require.Len(t, daily, 3)
		assert.Equal(t, d1, daily[0].Date)
		assert.Equal(t, 2, daily[0].CaseCount)
		assert.Equal(t, d2, daily[1].Date)
		assert.Equal(t, 1, daily[1].CaseCount)
		assert.Equal(t, d3, daily[2].Date)
		assert.Equal(t, 1, daily[2].CaseCount)
	})

	t.Run("no case lost or double-counted", func(t *testing.T) {
		cases := make([]CaseRecord, 0, 500)
		for i := range 500 {
			cases = append(cases, caseOn(d1.AddDate(0, 0, i%37)))
		}
		daily := AggregateDaily(cases, 30)

		total := 0
		for _, d := range daily {
			total += d.CaseCount
		}
		assert.Equal(t, len(cases), total)
	})

	t.Run("death and ICU sub-counts", func(t *testing.T) {
		death := caseOn(d1)
		death.Outcome = OutcomeDeath
		icu := caseOn(d2)
		icu.ICUAdmission = true
		deathOther := caseOn(d1)
		deathOther.Outcome = OutcomeDeathOther // not counted as a death

		daily := AggregateDaily([]CaseRecord{death, deathOther, icu, caseOn(d1)}, 30)

		require.Len(t, daily, 2)
		assert.Equal(t, 1, daily[0].DeathCount)
		assert.Equal(t, 0, daily[0].ICUCount)
		assert.Equal(t, 0, daily[1].DeathCount)
		assert.Equal(t, 1, daily[1].ICUCount)
	})

	t.Run("dates without a subtype keep zero, never dropped", func(t *testing.T) {
		death := caseOn(d2)
		death.Outcome = OutcomeDeath
		daily := AggregateDaily([]CaseRecord{caseOn(d1), death}, 30)

		require.Len(t, daily, 2)
		assert.Equal(t, 0, daily[0].DeathCount)
		assert.Equal(t, 1, daily[0].CaseCount)
	})

	t.Run("vaccinated count restricted to trailing window", func(t *testing.T) {
		maxDate := day(2026, 3, 31)
		oldDate := maxDate.AddDate(0, 0, -30) // outside a 30-day window ending at max
		edgeDate := maxDate.AddDate(0, 0, -29) // first day inside it

		vaccinated := func(d time.Time) CaseRecord {
			return CaseRecord{
				NotificationDate: d,
				Classification:   ClassificationCOVID,
				CovidVaccine:     VaccineYes,
			}
		}

		daily := AggregateDaily([]CaseRecord{
			vaccinated(oldDate),
			vaccinated(edgeDate),
			vaccinated(maxDate),
		}, 30)

		require.Len(t, daily, 3)
		assert.Equal(t, 0, daily[0].VaccinatedCount, "older than the window")
		assert.Equal(t, 1, daily[1].VaccinatedCount, "window start day is inclusive")
		assert.Equal(t, 1, daily[2].VaccinatedCount)
		assert.Equal(t, 1, daily[0].CaseCount, "still counted as a case")
	})

	t.Run("not-vaccinated cases inside the window do not count", func(t *testing.T) {
		rec := CaseRecord{
			NotificationDate: d1,
			Classification:   ClassificationInfluenza,
			FluVaccine:       VaccineIgnored,
		}
		daily := AggregateDaily([]CaseRecord{rec}, 30)
		require.Len(t, daily, 1)
		assert.Equal(t, 0, daily[0].VaccinatedCount)
	})

	t.Run("zero-date records are skipped", func(t *testing.T) {
		daily := AggregateDaily([]CaseRecord{{}, caseOn(d1)}, 30)
		require.Len(t, daily, 1)
		assert.Equal(t, 1, daily[0].CaseCount)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, AggregateDaily(nil, 30))
		assert.Nil(t, AggregateDaily([]CaseRecord{}, 30))
	})

	t.Run("idempotent over the same input", func(t *testing.T) {
		cases := []CaseRecord{caseOn(d2), caseOn(d1), caseOn(d3)}
		first := AggregateDaily(cases, 30)
		second := AggregateDaily(cases, 30)
		assert.Equal(t, first, second)
	})
}
