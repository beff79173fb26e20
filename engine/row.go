/*
row.go - One employee's attendance across the period

PURPOSE:
  A Row holds the ordered day records for one employee plus the derived
  totals. TotalHours and TotalPay are cached results of recalculate(),
  never independently mutated: any day transition invalidates them and
  the owning ledger recomputes before the change is observable.

INVARIANTS:
  TotalHours = round2(sum of parsed hours over present days)
  TotalPay   = TotalHours * hourly rate

  Rounding is half-up on the cents digit. A day value that is not
  canonical HH:MM contributes zero; recalculation never surfaces an
  error.
*/
package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EmployeeSeed is the per-employee input to Ledger.Load.
type EmployeeSeed struct {
	ID          string
	Name        string
	Code        string
	Designation string

	// HourlyRate is carried through from the roster but is NOT consulted
	// by any calculation; all pay uses the ledger's global rate. Kept to
	// mirror the source data model.
	HourlyRate decimal.Decimal

	// Attendance maps day label -> seed. Days absent from the map default
	// to present at 08:00.
	Attendance map[string]DaySeed
}

// Row is one employee's day records plus derived totals. Rows are created
// by Ledger.Load and mutated only through ledger operations.
type Row struct {
	EmployeeID  string
	Name        string
	Code        string
	Designation string
	HourlyRate  decimal.Decimal

	days       []DayRecord
	totalHours decimal.Decimal
	totalPay   decimal.Decimal
}

func newRow(seed EmployeeSeed, dayLabels []string) *Row {
	days := make([]DayRecord, len(dayLabels))
	for i, label := range dayLabels {
		days[i] = newDayRecord(seed.Attendance[label])
	}
	return &Row{
		EmployeeID:  seed.ID,
		Name:        seed.Name,
		Code:        seed.Code,
		Designation: seed.Designation,
		HourlyRate:  seed.HourlyRate,
		days:        days,
	}
}

// Days returns the number of day records in the row.
func (r *Row) Days() int { return len(r.days) }

// Day returns the record at index i. The pointer is owned by the row;
// callers outside the ledger should treat it as read-only.
func (r *Row) Day(i int) *DayRecord { return &r.days[i] }

// TotalHours returns the cached derived total, rounded to two decimals.
func (r *Row) TotalHours() decimal.Decimal { return r.totalHours }

// TotalPay returns the cached derived pay at the ledger's global rate.
func (r *Row) TotalPay() decimal.Decimal { return r.totalPay }

// recalculate recomputes both derived totals from the day records.
func (r *Row) recalculate(rate decimal.Decimal) {
	sum := decimal.Zero
	for i := range r.days {
		if r.days[i].absent {
			continue
		}
		sum = sum.Add(parseHours(r.days[i].hours))
	}
	r.totalHours = sum.Round(2)
	r.totalPay = r.totalHours.Mul(rate)
}

// parseHours converts a canonical HH:MM value to decimal hours.
// Non-canonical values contribute zero.
func parseHours(hhmm string) decimal.Decimal {
	if !IsCanonical(hhmm) {
		return decimal.Zero
	}
	parts := strings.SplitN(hhmm, ":", 2)
	hh := decimal.NewFromInt(int64(atoi(parts[0])))
	mm := decimal.NewFromInt(int64(atoi(parts[1])))
	return hh.Add(mm.Div(decimal.NewFromInt(60)))
}
