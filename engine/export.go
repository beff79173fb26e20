package engine

// =============================================================================
// EXPORT PROJECTION - contract with the spreadsheet writer
// =============================================================================

// AbsentToken is the literal cell value for an absent day. Part of the
// export contract; consumers key off this exact string.
const AbsentToken = "Absent"

// ExportSheet is the tabular projection handed to the spreadsheet
// writer: one header row, one data row per employee. Column order is
// fixed: name, code, designation, one column per day, total hours,
// total pay.
type ExportSheet struct {
	Header []string
	Rows   [][]string
}

// Export builds the spreadsheet projection from the current ledger
// state. Absent days render as AbsentToken, present days as their HH:MM
// value.
func (l *Ledger) Export() (ExportSheet, error) {
	if !l.loaded {
		return ExportSheet{}, ErrNotLoaded
	}

	header := make([]string, 0, 5+len(l.cfg.Days))
	header = append(header, "Employee Name", "Emp ID", "Designation")
	header = append(header, l.cfg.Days...)
	header = append(header, "Total Working Hour", "Total Pay")

	rows := make([][]string, len(l.rows))
	for i, r := range l.rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, r.Name, r.Code, r.Designation)
		for j := range r.days {
			if r.days[j].absent {
				cells = append(cells, AbsentToken)
			} else {
				cells = append(cells, r.days[j].hours)
			}
		}
		cells = append(cells, r.totalHours.String(), r.totalPay.String())
		rows[i] = cells
	}

	return ExportSheet{Header: header, Rows: rows}, nil
}
