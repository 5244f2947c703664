package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCapture(t *testing.T) {
	logger, capture := NewLogger(t)

	logger.With("component", "reader").Info("Workbook loaded", "rows", 3)
	logger.Warn("Duplicate codes aggregated")
	logger.Debug("cell")

	logs := capture.Logs()
	require.Len(t, logs, 3)
	assert.Equal(t, "reader", logs[0].Attrs["component"])
	assert.Equal(t, int64(3), logs[0].Attrs["rows"])

	assert.Len(t, capture.Find(slog.LevelWarn, "Duplicate"), 1)
	assert.Empty(t, capture.Find(slog.LevelError, "Duplicate"))

	AssertLogged(t, capture, slog.LevelInfo, "Workbook loaded")
	AssertNoErrors(t, capture)
}

func TestWriteWorkbook(t *testing.T) {
	path := WriteWorkbook(t, "saga.xlsx",
		[]string{"cod", "stoc"},
		[]any{"1", 2.5},
		[]any{nil, 3},
	)

	rows := ReadSheet(t, path, "Sheet1")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"cod", "stoc"}, rows[0])
	assert.Equal(t, []string{"1", "2.5"}, rows[1])
	assert.Equal(t, []string{"", "3"}, rows[2])
}
