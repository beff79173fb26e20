/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the engine's internal
  model from the wire contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/Abk8406/attendance-manager/engine"
	"github.com/Abk8406/attendance-manager/roster"
)

// =============================================================================
// ROSTER
// =============================================================================

// EmployeeDTO represents a roster employee in API responses.
type EmployeeDTO struct {
	ID          string                          `json:"id"`
	Name        string                          `json:"name"`
	EmpID       string                          `json:"empId"`
	Designation string                          `json:"designation"`
	HourlyRate  decimal.Decimal                 `json:"hourlyRate"`
	Site        string                          `json:"site,omitempty"`
	Attendance  map[string]roster.DayAttendance `json:"attendance"`
}

// =============================================================================
// LEDGER STATE
// =============================================================================

// DayDTO is one day cell of the ledger.
type DayDTO struct {
	Label  string `json:"label"`
	Hours  string `json:"hours"`
	Absent bool   `json:"absent"`
}

// RowDTO is one employee's ledger row with derived totals.
type RowDTO struct {
	EmployeeID  string          `json:"id"`
	Name        string          `json:"name"`
	EmpID       string          `json:"empId"`
	Designation string          `json:"designation"`
	Days        []DayDTO        `json:"days"`
	TotalHours  decimal.Decimal `json:"totalHours"`
	TotalPay    decimal.Decimal `json:"totalPay"`
}

// LedgerDTO is the full editable table.
type LedgerDTO struct {
	Days          []string        `json:"days"`
	Rows          []RowDTO        `json:"rows"`
	GrandTotalPay decimal.Decimal `json:"grandTotalPay"`
	HourlyRate    decimal.Decimal `json:"hourlyRate"`
}

// SetHoursRequest carries a raw hours edit for one day.
type SetHoursRequest struct {
	Hours string `json:"hours"`
}

// =============================================================================
// ROLLUP
// =============================================================================

// SiteTotalsDTO is one site's (or the vendor's) aggregate figures.
type SiteTotalsDTO struct {
	Employees int             `json:"employees"`
	Hours     decimal.Decimal `json:"hours"`
	Pay       decimal.Decimal `json:"pay"`
}

// RollupDTO is the full rollup read: vendor plus every known site.
type RollupDTO struct {
	Vendor   SiteTotalsDTO            `json:"vendor"`
	Sites    map[string]SiteTotalsDTO `json:"sites"`
	Snapshot bool                     `json:"snapshot"` // false = live-derived fallback
}

// =============================================================================
// TIME PREVIEW
// =============================================================================

// TimePreviewRequest carries a raw in-progress input string.
type TimePreviewRequest struct {
	Raw string `json:"raw"`
}

// TimePreviewDTO returns both normalization phases for the input.
type TimePreviewDTO struct {
	Live      string `json:"live"`
	Committed string `json:"committed"`
}

// =============================================================================
// SAVE / SUBMIT
// =============================================================================

// SaveResponseDTO wraps the raw payload returned by a save.
type SaveResponseDTO struct {
	Saved   bool               `json:"saved"`
	Payload engine.SavePayload `json:"payload"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
