package domain

import (
	"fmt"
	"time"
)

// ReportBundle is the complete output of one report run: the daily table,
// the named rate set, and the chart-ready series. It is the in-process
// interchange value handed to every publisher; once built it is read-only.
type ReportBundle struct {
	GeneratedAt  time.Time             `json:"generated_at"`
	MaxDate      time.Time             `json:"max_date"`
	Daily        []DailyRecord         `json:"daily"`
	Rates        map[string]RateResult `json:"rates"`
	DailyChart   []DailyPoint          `json:"daily_chart"`
	MonthlyChart []MonthlyBucket       `json:"monthly_chart"`
}

// BuildReport computes every rate and chart series over an already
// aggregated daily table. The rate map keys are stable identifiers the
// narrative-report generator addresses metrics by: case_var_<days> for each
// variation period, plus death_rate, icu_rate, and vacc_rate.
func BuildReport(daily []DailyRecord, w ReportWindows) (ReportBundle, error) {
	if len(daily) == 0 {
		return ReportBundle{}, ErrEmptySeries
	}

	rates := make(map[string]RateResult, 5)

	varShort, err := CaseVariation(daily, w.CaseVarShort)
	if err != nil {
		return ReportBundle{}, fmt.Errorf("case variation (%dd): %w", w.CaseVarShort, err)
	}
	rates[fmt.Sprintf("case_var_%d", w.CaseVarShort)] = varShort

	varLong, err := CaseVariation(daily, w.CaseVarLong)
	if err != nil {
		return ReportBundle{}, fmt.Errorf("case variation (%dd): %w", w.CaseVarLong, err)
	}
	rates[fmt.Sprintf("case_var_%d", w.CaseVarLong)] = varLong

	deathRate, err := RatioRate(daily, FieldDeaths, FieldCases, w.DeathRate)
	if err != nil {
		return ReportBundle{}, fmt.Errorf("death rate: %w", err)
	}
	rates["death_rate"] = deathRate

	icuRate, err := RatioRate(daily, FieldICU, FieldCases, w.ICURate)
	if err != nil {
		return ReportBundle{}, fmt.Errorf("icu rate: %w", err)
	}
	rates["icu_rate"] = icuRate

	vaccRate, err := RatioRate(daily, FieldVaccinated, FieldCases, w.VaccRate)
	if err != nil {
		return ReportBundle{}, fmt.Errorf("vaccination rate: %w", err)
	}
	rates["vacc_rate"] = vaccRate

	dailyChart, err := DailySeries(daily, w.ChartDaily)
	if err != nil {
		return ReportBundle{}, fmt.Errorf("daily chart: %w", err)
	}
	monthlyChart, err := MonthlySeries(daily, w.ChartMonthly)
	if err != nil {
		return ReportBundle{}, fmt.Errorf("monthly chart: %w", err)
	}

	return ReportBundle{
		GeneratedAt:  clock.Now().UTC(),
		MaxDate:      maxSeriesDate(daily),
		Daily:        daily,
		Rates:        rates,
		DailyChart:   dailyChart,
		MonthlyChart: monthlyChart,
	}, nil
}
