// Package export writes the tracker's clients and visits to an Excel workbook.
// Column headers match the import headers, so a saved sheet can be pasted
// back into an import.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/evcraddock/sales-tracker/internal/tracker"
)

// Sheet names.
const (
	ClientsSheet = "Clients"
	VisitsSheet  = "Visits"
)

// ClientHeaders are the Clients sheet columns.
var ClientHeaders = []string{
	"Name", "City", "State", "Contact", "Phone", "Email", "Segment", "Status",
	"Notes", "Last Visit", "Open Follow-ups",
}

// VisitHeaders are the Visits sheet columns.
var VisitHeaders = []string{
	"Date", "Client", "Touch Type", "Outcome", "Products", "Signal", "Note",
	"Next Action", "Follow-up Date", "Priority", "Completed",
}

// Write renders view as an .xlsx workbook to w.
func Write(view *tracker.View, w io.Writer) error {
	f, err := build(view)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteFile saves view as an .xlsx workbook at path.
func WriteFile(view *tracker.View, path string) error {
	f, err := build(view)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func build(view *tracker.View) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	// NewFile starts with Sheet1; rename it rather than leave it empty.
	if err := f.SetSheetName("Sheet1", ClientsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming clients sheet: %w", err)
	}
	if _, err := f.NewSheet(VisitsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating visits sheet: %w", err)
	}

	clientRows := make([][]interface{}, 0, len(view.Clients))
	names := make(map[int64]string, len(view.Clients))
	for _, c := range view.Clients {
		names[c.ID] = c.Name
		clientRows = append(clientRows, []interface{}{
			c.Name, c.City, c.State, c.Contact, c.Phone, c.Email, c.Segment,
			c.Status, c.Notes, c.LastVisitDate, c.OpenFollowUps,
		})
	}

	visitRows := make([][]interface{}, 0, len(view.Visits))
	for _, v := range view.Visits {
		visitRows = append(visitRows, []interface{}{
			v.Date, names[v.ClientID], v.TouchType, v.Outcome, v.Products,
			v.Signal, v.Note, v.NextAction, v.FollowUpDate, v.Priority,
			v.Completed,
		})
	}

	if err := writeSheet(f, ClientsSheet, ClientHeaders, clientRows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSheet(f, VisitsSheet, VisitHeaders, visitRows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, style int) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 15); err != nil {
		return fmt.Errorf("sizing %s columns: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
