package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	frozen := time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	daily := dailySeries(day(2026, 2, 1), make([]int, 59)...)
	for i := range daily {
		daily[i].CaseCount = 10
		daily[i].DeathCount = 1
		daily[i].ICUCount = 2
		daily[i].VaccinatedCount = 3
	}

	t.Run("full bundle", func(t *testing.T) {
		bundle, err := BuildReport(daily, DefaultReportWindows())
		require.NoError(t, err)

		assert.Equal(t, frozen, bundle.GeneratedAt)
		assert.Equal(t, day(2026, 3, 31), bundle.MaxDate)
		assert.Len(t, bundle.Daily, 59)
		assert.Len(t, bundle.DailyChart, 30)
		assert.Len(t, bundle.MonthlyChart, 12)

		require.Contains(t, bundle.Rates, "case_var_7")
		require.Contains(t, bundle.Rates, "case_var_30")
		require.Contains(t, bundle.Rates, "death_rate")
		require.Contains(t, bundle.Rates, "icu_rate")
		require.Contains(t, bundle.Rates, "vacc_rate")

		// Flat series: zero variation, fixed ratios.
		assert.Equal(t, 0.00, bundle.Rates["case_var_7"].Value)
		assert.Equal(t, 10.00, bundle.Rates["death_rate"].Value)
		assert.Equal(t, 20.00, bundle.Rates["icu_rate"].Value)
		assert.Equal(t, 30.00, bundle.Rates["vacc_rate"].Value)
	})

	t.Run("rate keys follow configured windows", func(t *testing.T) {
		w := DefaultReportWindows()
		w.CaseVarShort = 3
		w.CaseVarLong = 14

		bundle, err := BuildReport(daily, w)
		require.NoError(t, err)
		assert.Contains(t, bundle.Rates, "case_var_3")
		assert.Contains(t, bundle.Rates, "case_var_14")
	})

	t.Run("empty daily table", func(t *testing.T) {
		_, err := BuildReport(nil, DefaultReportWindows())
		require.ErrorIs(t, err, ErrEmptySeries)
	})
}
