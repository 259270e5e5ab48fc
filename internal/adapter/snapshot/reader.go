// Package snapshot reads SRAG case snapshots from disk.
//
// The snapshot is a delimited text export (semicolon-separated by default,
// the format SIVEP-Gripe distributes) with a header row naming the columns.
// Only the columns the pipeline consumes are extracted; extra columns are
// ignored, so full exports work unmodified.
package snapshot

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sragwatch/srag-data-etl/internal/config"
	"github.com/sragwatch/srag-data-etl/internal/domain"
)

// requiredColumns must be present in the header; DT_NOTIFIC is the
// aggregation key and the rest feed the sub-counts.
var requiredColumns = []string{"DT_NOTIFIC"}

// Reader extracts raw case rows from a snapshot file.
// It implements pipeline.Extractor.
type Reader struct {
	path      string
	separator rune
	logger    *slog.Logger
}

// NewReader creates a snapshot reader for the configured path.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	return &Reader{
		path:      cfg.SnapshotPath,
		separator: cfg.CSVSeparator,
		logger:    logger,
	}
}

// ExtractRows reads the whole snapshot into memory. Rows with fewer fields
// than the header are skipped; a missing file or header is a hard error.
func (r *Reader) ExtractRows(ctx context.Context) ([]domain.RawCaseRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = r.separator
	reader.FieldsPerRecord = -1 // ragged exports are tolerated per-row

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("snapshot is missing required column %q", col)
		}
	}

	var rows []domain.RawCaseRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read snapshot row %d: %w", len(rows)+2, err)
		}

		rows = append(rows, domain.RawCaseRow{
			NotificationDate: get(record, colIdx, "DT_NOTIFIC"),
			CaseID:           get(record, colIdx, "NU_NOTIFIC"),
			Outcome:          get(record, colIdx, "EVOLUCAO"),
			ICU:              get(record, colIdx, "UTI"),
			FluVaccine:       get(record, colIdx, "VACINA"),
			CovidVaccine:     get(record, colIdx, "VACINA_COV"),
			Classification:   get(record, colIdx, "CLASSI_FIN"),
		})
	}

	r.logger.Info("snapshot extracted", "path", r.path, "rows", len(rows))
	return rows, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
