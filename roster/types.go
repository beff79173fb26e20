/*
Package roster defines the employee roster domain on top of the engine.

PURPOSE:
  The engine (engine package) is deliberately ignorant of where employees
  come from. This package owns the roster-facing types and boundaries:

  - Employee: the source data model, including the per-employee hourly
    rate field that the engine carries but does not consult
  - Source:   the asynchronous roster retrieval boundary
  - Sink:     the submit boundary accepting raw save payloads

  Implementations live in store/sqlite (production) and memory.go
  (tests/dev).

SEE ALSO:
  - engine/ledger.go: Ledger.Load consumes the seeds built here
  - store/sqlite:     SQLite-backed Source and Sink
*/
package roster

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Abk8406/attendance-manager/engine"
)

// DayAttendance is the seeded state for one day of one employee.
type DayAttendance struct {
	Hours  string `json:"hours"`
	Absent bool   `json:"absent"`
}

// Employee is the roster source data model.
type Employee struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	EmpID       string          `json:"empId"`
	Designation string          `json:"designation"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	Site        string          `json:"site,omitempty"`

	// Attendance maps day label -> seeded state. Missing days default to
	// present at 08:00 when loaded into the ledger.
	Attendance map[string]DayAttendance `json:"attendance"`
}

// Seed converts the employee into the engine's load input.
func (e Employee) Seed() engine.EmployeeSeed {
	att := make(map[string]engine.DaySeed, len(e.Attendance))
	for label, d := range e.Attendance {
		att[label] = engine.DaySeed{Hours: d.Hours, Absent: d.Absent}
	}
	return engine.EmployeeSeed{
		ID:          e.ID,
		Name:        e.Name,
		Code:        e.EmpID,
		Designation: e.Designation,
		HourlyRate:  e.HourlyRate,
		Attendance:  att,
	}
}

// Seeds converts a roster in source order.
func Seeds(employees []Employee) []engine.EmployeeSeed {
	seeds := make([]engine.EmployeeSeed, len(employees))
	for i, e := range employees {
		seeds[i] = e.Seed()
	}
	return seeds
}

// Source is the roster retrieval boundary. The call may be slow or fail;
// the engine holds no partial state while it is outstanding, and a
// failure leaves the ledger unloaded. No retries here: surfacing the
// failure is the caller's job.
type Source interface {
	Employees(ctx context.Context) ([]Employee, error)
}

// Sink is the submit boundary. It accepts the raw ledger payload and
// acknowledges; the engine's local save and snapshot capture have already
// completed and are not rolled back on a sink failure.
type Sink interface {
	SubmitAttendance(ctx context.Context, payload engine.SavePayload) error
}
