package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMissingDate marks a row whose notification date is absent or
// unparseable. Such rows are excluded from aggregation, never counted.
var ErrMissingDate = errors.New("case row has no usable notification date")

// dateLayouts are the notification-date formats seen in SIVEP-Gripe exports.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseCaseRow converts a raw snapshot row into a typed CaseRecord.
// Numeric codes are parsed tolerantly: blank or malformed code fields map to
// the zero "unknown" value for their enum rather than failing the row. Only
// a missing notification date rejects the row, because the date is the
// aggregation key.
func ParseCaseRow(row RawCaseRow) (CaseRecord, error) {
	date, err := parseNotificationDate(row.NotificationDate)
	if err != nil {
		return CaseRecord{}, err
	}

	rec := CaseRecord{
		NotificationDate: date,
		CaseID:           strings.TrimSpace(row.CaseID),
		Outcome:          Outcome(parseCodeOrZero(row.Outcome)),
		ICUAdmission:     parseCodeOrZero(row.ICU) == 1,
		FluVaccine:       VaccineCode(parseCodeOrZero(row.FluVaccine)),
		CovidVaccine:     VaccineCode(parseCodeOrZero(row.CovidVaccine)),
		Classification:   Classification(parseCodeOrZero(row.Classification)),
	}

	if rec.CaseID == "" {
		rec.CaseID = deriveCaseID(row)
	}

	return rec, nil
}

// parseNotificationDate parses and normalizes the notification date to
// midnight UTC, so that date equality is exact across the whole pipeline.
func parseNotificationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMissingDate, s)
}

// parseCodeOrZero parses a numeric code field, returning 0 for blank or
// malformed values. Some exports carry codes as floats ("2.0"); those are
// truncated to their integer part.
func parseCodeOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// deriveCaseID produces a deterministic ID from the row's key fields for
// records that arrive without a notification number. Reprocessing the same
// snapshot yields the same IDs.
func deriveCaseID(row RawCaseRow) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		row.NotificationDate, row.Outcome, row.ICU,
		row.FluVaccine, row.CovidVaccine, row.Classification)
	hash := sha256.Sum256([]byte(input))
	return "case-" + hex.EncodeToString(hash[:8])
}
