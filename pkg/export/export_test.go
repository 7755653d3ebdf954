package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Die cuts",
		Headers: []string{"ID", "Die number", "Status"},
		Rows: [][]string{
			{"1", "DC-001", "ACTIVE"},
			{"2", "DC-002"},
		},
	}
}

func TestCSVExporterPadsShortRows(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "ID,Die number,Status\n1,DC-001,ACTIVE\n2,DC-002,\n", string(out))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterProducesDocument(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "raw_materials_20240305_143000.csv", Filename("Raw materials", FormatCSV, at, ""))
	assert.Equal(t, "export_20240305_143000.pdf", Filename("", FormatPDF, at, ""))
	assert.Equal(t, "inks_20240305_143000_1a2b3c4d.csv", Filename("inks", FormatCSV, at, "1A2B3C4D"))
}
