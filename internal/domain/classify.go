package domain

// VaccinationLabel is the derived per-case vaccination status.
type VaccinationLabel int

const (
	LabelUnknown VaccinationLabel = iota
	LabelVaccinated
	LabelNotVaccinated
)

func (l VaccinationLabel) String() string {
	switch l {
	case LabelVaccinated:
		return "vaccinated"
	case LabelNotVaccinated:
		return "not-vaccinated"
	default:
		return "unknown"
	}
}

// Classify derives the vaccination status of a case from its final
// classification and the two vaccine code fields. Precedence:
//
//  1. Influenza cases look only at the flu vaccine code.
//  2. COVID-19 cases look only at the COVID vaccine code.
//  3. Every other classification (other virus, other agent, unspecified,
//     unknown) requires both codes to be "yes".
//
// An ignored (9) or absent code counts as not vaccinated, never as unknown.
// LabelUnknown is kept in the enum for future rule changes but is not
// produced by the current rule set, so Classify is total over its domain.
func Classify(classification Classification, flu, covid VaccineCode) VaccinationLabel {
	switch classification {
	case ClassificationInfluenza:
		if flu == VaccineYes {
			return LabelVaccinated
		}
		return LabelNotVaccinated
	case ClassificationCOVID:
		if covid == VaccineYes {
			return LabelVaccinated
		}
		return LabelNotVaccinated
	default:
		if flu == VaccineYes && covid == VaccineYes {
			return LabelVaccinated
		}
		return LabelNotVaccinated
	}
}
