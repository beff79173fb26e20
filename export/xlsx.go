/*
Package export writes the ledger's export projection to a spreadsheet.

PURPOSE:
  Thin writer over engine.ExportSheet. The engine owns the projection
  contract (column order, the "Absent" token); this package only renders
  it into an .xlsx workbook. Nothing here inspects ledger state.

SEE ALSO:
  - engine/export.go: the projection and its contract
*/
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Abk8406/attendance-manager/engine"
)

// SheetName is the workbook sheet holding the attendance table.
const SheetName = "Attendance"

// Filename returns the conventional export file name for a given date,
// e.g. "attendance_2026-08-28.xlsx".
func Filename(at time.Time) string {
	return "attendance_" + at.Format("2006-01-02") + ".xlsx"
}

// WriteXLSX renders the projection into an xlsx workbook on w.
func WriteXLSX(sheet engine.ExportSheet, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := writeRow(f, 1, sheet.Header); err != nil {
		return err
	}
	for i, row := range sheet.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
