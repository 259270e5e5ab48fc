package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Influenza(t *testing.T) {
	// Influenza cases depend only on the flu code; the COVID code must not matter.
	for _, covid := range []VaccineCode{VaccineUnknown, VaccineYes, VaccineNo, VaccineIgnored} {
		assert.Equal(t, LabelVaccinated, Classify(ClassificationInfluenza, VaccineYes, covid))
		assert.Equal(t, LabelNotVaccinated, Classify(ClassificationInfluenza, VaccineNo, covid))
		assert.Equal(t, LabelNotVaccinated, Classify(ClassificationInfluenza, VaccineIgnored, covid))
		assert.Equal(t, LabelNotVaccinated, Classify(ClassificationInfluenza, VaccineUnknown, covid))
	}
}

func TestClassify_COVID(t *testing.T) {
	for _, flu := range []VaccineCode{VaccineUnknown, VaccineYes, VaccineNo, VaccineIgnored} {
		assert.Equal(t, LabelVaccinated, Classify(ClassificationCOVID, flu, VaccineYes))
		assert.Equal(t, LabelNotVaccinated, Classify(ClassificationCOVID, flu, VaccineNo))
		assert.Equal(t, LabelNotVaccinated, Classify(ClassificationCOVID, flu, VaccineIgnored))
		assert.Equal(t, LabelNotVaccinated, Classify(ClassificationCOVID, flu, VaccineUnknown))
	}
}

func TestClassify_OtherClassifications(t *testing.T) {
	others := []Classification{
		ClassificationUnknown,
		ClassificationOtherVirus,
		ClassificationOtherAgent,
		ClassificationUnspecified,
	}
	codes := []VaccineCode{VaccineUnknown, VaccineYes, VaccineNo, VaccineIgnored}

	for _, cl := range others {
		for _, flu := range codes {
			for _, covid := range codes {
				want := LabelNotVaccinated
				if flu == VaccineYes && covid == VaccineYes {
					want = LabelVaccinated
				}
				got := Classify(cl, flu, covid)
				assert.Equal(t, want, got,
					"classification=%s flu=%d covid=%d", cl, flu, covid)
			}
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify(ClassificationOtherVirus, VaccineYes, VaccineIgnored)
	for range 10 {
		assert.Equal(t, first, Classify(ClassificationOtherVirus, VaccineYes, VaccineIgnored))
	}
}

func TestClassify_NeverUnknown(t *testing.T) {
	// The current rule set folds ignored/unknown codes into not-vaccinated;
	// no input combination may produce LabelUnknown.
	classifications := []Classification{
		ClassificationUnknown, ClassificationInfluenza, ClassificationOtherVirus,
		ClassificationOtherAgent, ClassificationUnspecified, ClassificationCOVID,
	}
	codes := []VaccineCode{VaccineUnknown, VaccineYes, VaccineNo, VaccineIgnored}

	for _, cl := range classifications {
		for _, flu := range codes {
			for _, covid := range codes {
				assert.NotEqual(t, LabelUnknown, Classify(cl, flu, covid))
			}
		}
	}
}
