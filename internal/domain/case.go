package domain

import (
	"time"
)

// RawCaseRow represents one row of the SRAG snapshot as read from disk,
// before any typing. Column names follow the SIVEP-Gripe data dictionary.
type RawCaseRow struct {
	NotificationDate string `json:"DT_NOTIFIC"`
	CaseID           string `json:"NU_NOTIFIC"`
	Outcome          string `json:"EVOLUCAO"`
	ICU              string `json:"UTI"`
	FluVaccine       string `json:"VACINA"`
	CovidVaccine     string `json:"VACINA_COV"`
	Classification   string `json:"CLASSI_FIN"`
}

// Classification is the etiological final classification of a case (CLASSI_FIN).
type Classification int

const (
	ClassificationUnknown     Classification = 0
	ClassificationInfluenza   Classification = 1
	ClassificationOtherVirus  Classification = 2
	ClassificationOtherAgent  Classification = 3
	ClassificationUnspecified Classification = 4
	ClassificationCOVID       Classification = 5
)

func (c Classification) String() string {
	switch c {
	case ClassificationInfluenza:
		return "influenza"
	case ClassificationOtherVirus:
		return "other-virus"
	case ClassificationOtherAgent:
		return "other-agent"
	case ClassificationUnspecified:
		return "unspecified"
	case ClassificationCOVID:
		return "covid-19"
	default:
		return "unknown"
	}
}

// VaccineCode is the tri-state vaccination field coding (VACINA, VACINA_COV).
type VaccineCode int

const (
	VaccineUnknown VaccineCode = 0 // field absent in the source row
	VaccineYes     VaccineCode = 1
	VaccineNo      VaccineCode = 2
	VaccineIgnored VaccineCode = 9
)

// Outcome is the case evolution coding (EVOLUCAO).
type Outcome int

const (
	OutcomeUnknown    Outcome = 0
	OutcomeCure       Outcome = 1
	OutcomeDeath      Outcome = 2
	OutcomeDeathOther Outcome = 3 // death from other causes
	OutcomeIgnored    Outcome = 9
)

// CaseRecord is the typed representation of a single notified SRAG case.
// NotificationDate is normalized to midnight UTC; it is the sole grouping
// key for all aggregation and is never zero on a parsed record.
type CaseRecord struct {
	NotificationDate time.Time      `json:"notification_date"`
	CaseID           string         `json:"case_id"`
	Outcome          Outcome        `json:"outcome"`
	ICUAdmission     bool           `json:"icu_admission"`
	FluVaccine       VaccineCode    `json:"vaccine_flu"`
	CovidVaccine     VaccineCode    `json:"vaccine_covid"`
	Classification   Classification `json:"classification"`
}

// DailyRecord is one row of the derived daily table: all counts for a single
// notification date. VaccinatedCount is only meaningful for dates inside the
// trailing vaccination-label window used during aggregation; older dates
// always carry zero.
type DailyRecord struct {
	Date            time.Time `json:"date"`
	CaseCount       int       `json:"case_count"`
	DeathCount      int       `json:"death_count"`
	ICUCount        int       `json:"icu_count"`
	VaccinatedCount int       `json:"vaccinated_count"`
}

// CountField names a DailyRecord counter for ratio-rate calculations.
type CountField string

const (
	FieldCases      CountField = "cases"
	FieldDeaths     CountField = "deaths"
	FieldICU        CountField = "icu"
	FieldVaccinated CountField = "vaccinated"
)

// Count returns the named counter's value. Unrecognized fields count zero.
func (d DailyRecord) Count(f CountField) int {
	switch f {
	case FieldCases:
		return d.CaseCount
	case FieldDeaths:
		return d.DeathCount
	case FieldICU:
		return d.ICUCount
	case FieldVaccinated:
		return d.VaccinatedCount
	default:
		return 0
	}
}

// ReportWindows holds every day/month window used by a report run.
// Keeping them in one struct keeps the core reusable with arbitrary windows;
// nothing below the config layer hard-codes a literal.
type ReportWindows struct {
	CaseVarShort int // first case-variation period, days
	CaseVarLong  int // second case-variation period, days
	DeathRate    int // mortality-rate window, days
	ICURate      int // ICU-occupancy-rate window, days
	VaccRate     int // vaccination-rate window, days
	VaccLabel    int // trailing window for vaccination labeling, days
	ChartDaily   int // daily chart span, days
	ChartMonthly int // monthly chart span, months
}

// DefaultReportWindows returns the windows used by the production report.
func DefaultReportWindows() ReportWindows {
	return ReportWindows{
		CaseVarShort: 7,
		CaseVarLong:  30,
		DeathRate:    30,
		ICURate:      30,
		VaccRate:     30,
		VaccLabel:    30,
		ChartDaily:   30,
		ChartMonthly: 12,
	}
}
