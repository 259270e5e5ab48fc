package pipeline

import (
	"github.com/sragwatch/srag-data-etl/internal/domain"
)

// parseRows converts raw snapshot rows into typed cases. Malformed rows
// (missing notification date) are skipped with a warning; aggregation is
// best-effort over well-formed rows, never aborted by a bad one.
func (p *Pipeline) parseRows(rows []domain.RawCaseRow) []domain.CaseRecord {
	cases := make([]domain.CaseRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := domain.ParseCaseRow(row)
		if err != nil {
			p.logger.Warn("skipping malformed case row",
				"error", err,
				"row", i,
				"case_id", row.CaseID,
			)
			p.metrics.MalformedRows.Inc()
			continue
		}
		cases = append(cases, rec)
	}
	return cases
}
