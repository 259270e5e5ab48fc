package snapshot

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sragwatch/srag-data-etl/internal/config"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "srag.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newReader(path string, sep rune) *Reader {
	return NewReader(&config.Config{SnapshotPath: path, CSVSeparator: sep}, slog.Default())
}

func TestReader_ExtractRows(t *testing.T) {
	t.Run("semicolon snapshot with extra columns", func(t *testing.T) {
		path := writeSnapshot(t,
			"SG_UF;DT_NOTIFIC;NU_NOTIFIC;EVOLUCAO;UTI;VACINA;VACINA_COV;CLASSI_FIN\n"+
				"SP;2026-03-10;101;2;1;1;2;5\n"+
				"RJ;2026-03-11;102;1;2;;;1\n")

		rows, err := newReader(path, ';').ExtractRows(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "2026-03-10", rows[0].NotificationDate)
		assert.Equal(t, "101", rows[0].CaseID)
		assert.Equal(t, "2", rows[0].Outcome)
		assert.Equal(t, "1", rows[0].ICU)
		assert.Equal(t, "5", rows[0].Classification)
		assert.Equal(t, "", rows[1].FluVaccine)
	})

	t.Run("comma snapshot", func(t *testing.T) {
		path := writeSnapshot(t, "DT_NOTIFIC,NU_NOTIFIC\n2026-03-10,7\n")

		rows, err := newReader(path, ',').ExtractRows(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "7", rows[0].CaseID)
	})

	t.Run("short rows keep blanks for missing columns", func(t *testing.T) {
		path := writeSnapshot(t, "DT_NOTIFIC;NU_NOTIFIC;EVOLUCAO\n2026-03-10\n")

		rows, err := newReader(path, ';').ExtractRows(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "2026-03-10", rows[0].NotificationDate)
		assert.Equal(t, "", rows[0].Outcome)
	})

	t.Run("header only", func(t *testing.T) {
		path := writeSnapshot(t, "DT_NOTIFIC;NU_NOTIFIC\n")

		rows, err := newReader(path, ';').ExtractRows(context.Background())
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("missing date column", func(t *testing.T) {
		path := writeSnapshot(t, "NU_NOTIFIC;EVOLUCAO\n1;2\n")

		_, err := newReader(path, ';').ExtractRows(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DT_NOTIFIC")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newReader(filepath.Join(t.TempDir(), "nope.csv"), ';').ExtractRows(context.Background())
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeSnapshot(t, "DT_NOTIFIC\n2026-03-10\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newReader(path, ';').ExtractRows(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
