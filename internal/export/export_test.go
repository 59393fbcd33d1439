package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/tracker"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

func sampleView() *tracker.View {
	return &tracker.View{
		Clients: []*tracker.EnrichedClient{
			{
				Client:        &client.Client{ID: 1, Name: "Acme", City: "Springfield", Status: "Active"},
				LastVisitDate: "2025-03-01",
				OpenFollowUps: 1,
			},
			{Client: &client.Client{ID: 2, Name: "Globex", Status: "Prospect"}},
		},
		Visits: []*visit.Visit{
			{ID: 5, ClientID: 1, Date: "2025-03-01", TouchType: "Call", Note: "hi", FollowUpDate: "2025-03-04", Priority: "high"},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(sampleView(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ClientsSheet, VisitsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ClientsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ClientHeaders, rows[0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "Springfield", rows[1][1])
	assert.Equal(t, "2025-03-01", rows[1][9])
	assert.Equal(t, "1", rows[1][10])
	assert.Equal(t, "Globex", rows[2][0])

	rows, err = f.GetRows(VisitsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, VisitHeaders, rows[0])
	assert.Equal(t, "2025-03-01", rows[1][0])
	assert.Equal(t, "Acme", rows[1][1])
	assert.Equal(t, "2025-03-04", rows[1][8])
	assert.Equal(t, "high", rows[1][9])
	assert.Len(t, rows[1], len(VisitHeaders))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteFile(&tracker.View{}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(VisitsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
