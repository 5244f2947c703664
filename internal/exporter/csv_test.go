package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	content = bytes.TrimPrefix(content, utf8BOM)
	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name    string
		options WriteOptions
		wantBOM bool
		want    [][]string
	}{
		{
			name: "headers and records with BOM",
			options: WriteOptions{
				Headers:   []string{"cod", "denumire"},
				Records:   [][]string{{"1", "Lapte"}, {"2", "Paine"}},
				BOMPrefix: true,
			},
			wantBOM: true,
			want:    [][]string{{"cod", "denumire"}, {"1", "Lapte"}, {"2", "Paine"}},
		},
		{
			name: "records without headers",
			options: WriteOptions{
				Records: [][]string{{"a", "b"}},
			},
			want: [][]string{{"a", "b"}},
		},
		{
			name: "special characters are quoted",
			options: WriteOptions{
				Headers: []string{"Eroare"},
				Records: [][]string{{"duplicate: ['1', '2']. "}, {"line\nbreak"}, {`quote "x"`}, {"ăîșțâ"}},
			},
			want: [][]string{{"Eroare"}, {"duplicate: ['1', '2']. "}, {"line\nbreak"}, {`quote "x"`}, {"ăîșțâ"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "out.csv")

			require.NoError(t, NewCSVWriter(nil).WriteCSV(path, tt.options))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(content, utf8BOM))
			assert.Equal(t, tt.want, readCSV(t, path))
		})
	}
}

func TestCSVWriter_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	writer := NewCSVWriter(nil)

	require.NoError(t, writer.WriteSimpleCSV(path, []string{"h"}, [][]string{{"1"}, {"2"}, {"3"}}))
	require.NoError(t, writer.WriteSimpleCSV(path, []string{"h"}, [][]string{{"9"}}))

	assert.Equal(t, [][]string{{"h"}, {"9"}}, readCSV(t, path))
}

func TestCSVWriter_ErrorScenarios(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewCSVWriter(nil).WriteSimpleCSV(filepath.Join(blocker, "out.csv"), []string{"h"}, nil)
	assert.Error(t, err)
}
