/*
ledger.go - The editable attendance table

PURPOSE:
  Ledger owns all rows for one reporting period and orchestrates
  recalculation ordering. Every mutation settles in a strict sequence:

    DayRecord transition -> owning Row recalculate -> grand total update

  before the next operation is accepted. Rollup reads (rollup.go) can
  therefore never observe a ledger mid-recalculation.

TWO-PHASE HOUR COMMITS:
  Committing a typed value back into the field it came from, inside the
  reaction to that same edit, invites re-entrant recalculation. The
  engine models the fix explicitly: ProposeHours stages the committed
  value, Settle applies every staged write at a clean boundary and runs
  exactly one recalculation pass. SetHours is the propose+settle
  convenience for callers processing one action to completion.

OWNERSHIP:
  The ledger is single-owner mutable state. It performs no locking; the
  caller (api.Handler here) serializes access, matching the engine's
  cooperative one-action-at-a-time model.

KNOWN INCONSISTENCY:
  Rows carry a per-employee HourlyRate, but every calculation uses the
  single Config.HourlyRate, reproducing the source system's behavior.

SEE ALSO:
  - day.go:    transition semantics
  - rollup.go: snapshot capture triggered by Load and Save
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config is the injected ledger configuration. Days is the ordered,
// contiguous set of day labels for the reporting period; the engine never
// computes it.
type Config struct {
	Days        []string
	HourlyRate  decimal.Decimal
	PrimarySite string
	Sites       SiteAllocation
}

// SiteAllocation is the static headcount for sites without direct
// attendance data. Read-only to the engine.
type SiteAllocation map[string]int

// =============================================================================
// LEDGER
// =============================================================================

type pendingWrite struct {
	row, day  int
	committed string
}

// Ledger is the ordered collection of attendance rows plus the derived
// grand total and the current rollup snapshot.
type Ledger struct {
	cfg    Config
	rows   []*Row
	loaded bool

	grandTotalPay decimal.Decimal
	pending       []pendingWrite
	snapshot      *RollupSnapshot
}

// NewLedger creates an empty ledger for the configured period.
func NewLedger(cfg Config) (*Ledger, error) {
	if len(cfg.Days) == 0 {
		return nil, ErrEmptyPeriod
	}
	return &Ledger{cfg: cfg}, nil
}

// Config returns the ledger configuration.
func (l *Ledger) Config() Config { return l.cfg }

// Loaded reports whether a roster has been loaded.
func (l *Ledger) Loaded() bool { return l.loaded }

// Len returns the number of rows.
func (l *Ledger) Len() int { return len(l.rows) }

// Rows returns the live rows in roster order. Callers outside the engine
// must treat them as read-only.
func (l *Ledger) Rows() []*Row { return l.rows }

// GrandTotalPay returns the derived organization-wide pay total.
func (l *Ledger) GrandTotalPay() decimal.Decimal { return l.grandTotalPay }

// Load populates the ledger from roster source data, runs one full
// recalculation pass, and captures the initial rollup snapshot. A reload
// replaces all rows and discards any staged writes.
func (l *Ledger) Load(employees []EmployeeSeed) {
	rows := make([]*Row, len(employees))
	for i, emp := range employees {
		rows[i] = newRow(emp, l.cfg.Days)
	}
	l.rows = rows
	l.pending = nil
	l.loaded = true
	l.RecalculateAll()
	l.captureSnapshot()
}

// =============================================================================
// EDIT OPERATIONS
// =============================================================================

// ProposeHours stages a committed hours value for a day without applying
// it. The write happens at the next Settle, after the current reaction
// has finished.
func (l *Ledger) ProposeHours(row, day int, raw string) error {
	if err := l.check(row, day); err != nil {
		return err
	}
	l.pending = append(l.pending, pendingWrite{row: row, day: day, committed: Commit(raw)})
	return nil
}

// Settle applies every staged write in order and runs exactly one
// recalculation pass: each touched row once, then the grand total once.
func (l *Ledger) Settle() {
	writes := l.pending
	l.pending = nil

	touched := make(map[int]bool, len(writes))
	for _, w := range writes {
		if l.rows[w.row].days[w.day].SetHours(w.committed) {
			touched[w.row] = true
		}
	}
	for i := range l.rows {
		if touched[i] {
			l.rows[i].recalculate(l.cfg.HourlyRate)
		}
	}
	l.recalculateGrandTotal()
}

// SetHours proposes and settles a single hours edit. This is the
// blur/commit path: one user action processed to completion.
func (l *Ledger) SetHours(row, day int, raw string) error {
	if err := l.ProposeHours(row, day, raw); err != nil {
		return err
	}
	l.Settle()
	return nil
}

// MarkAbsent forces a day into the absent state.
func (l *Ledger) MarkAbsent(row, day int) error {
	if err := l.check(row, day); err != nil {
		return err
	}
	if l.rows[row].days[day].MarkAbsent() {
		l.rows[row].recalculate(l.cfg.HourlyRate)
	}
	l.recalculateGrandTotal()
	return nil
}

// MarkPresent returns a day to the present state. This is the only way
// back from absent; it is never triggered implicitly.
func (l *Ledger) MarkPresent(row, day int) error {
	if err := l.check(row, day); err != nil {
		return err
	}
	if l.rows[row].days[day].MarkPresent() {
		l.rows[row].recalculate(l.cfg.HourlyRate)
	}
	l.recalculateGrandTotal()
	return nil
}

// RecalculateAll recomputes every row strictly before the grand total.
func (l *Ledger) RecalculateAll() {
	for _, r := range l.rows {
		r.recalculate(l.cfg.HourlyRate)
	}
	l.recalculateGrandTotal()
}

func (l *Ledger) recalculateGrandTotal() {
	sum := decimal.Zero
	for _, r := range l.rows {
		sum = sum.Add(r.totalPay)
	}
	l.grandTotalPay = sum
}

// AverageHoursPerEmployee returns total hours across all rows divided by
// the row count, or zero for an empty roster. Used by the rollup
// live-derive fallback.
func (l *Ledger) AverageHoursPerEmployee() decimal.Decimal {
	if len(l.rows) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, r := range l.rows {
		sum = sum.Add(r.totalHours)
	}
	return sum.Div(decimal.NewFromInt(int64(len(l.rows))))
}

func (l *Ledger) check(row, day int) error {
	if !l.loaded {
		return ErrNotLoaded
	}
	if row < 0 || row >= len(l.rows) {
		return &IndexError{Kind: "row", Index: row, Limit: len(l.rows)}
	}
	if day < 0 || day >= len(l.cfg.Days) {
		return &IndexError{Kind: "day", Index: day, Limit: len(l.cfg.Days)}
	}
	return nil
}

// =============================================================================
// SAVE - raw contents for the submit sink
// =============================================================================

// SaveRow is the raw per-employee payload, including absent days' hours.
type SaveRow struct {
	EmployeeID  string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"empId"`
	Designation string          `json:"designation"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	Days        []DayValue      `json:"attendance"`
	TotalHours  decimal.Decimal `json:"totalHours"`
	TotalPay    decimal.Decimal `json:"totalPay"`
}

// SavePayload is the full raw ledger contents returned by Save.
type SavePayload struct {
	Days          []string        `json:"days"`
	Rows          []SaveRow       `json:"rows"`
	GrandTotalPay decimal.Decimal `json:"grandTotalPay"`
}

// Save returns the full current ledger contents for the external submit
// sink and captures a fresh rollup snapshot. The local save completes
// regardless of what the sink later does with the payload.
func (l *Ledger) Save() (SavePayload, error) {
	if !l.loaded {
		return SavePayload{}, ErrNotLoaded
	}
	payload := SavePayload{
		Days:          append([]string(nil), l.cfg.Days...),
		Rows:          make([]SaveRow, len(l.rows)),
		GrandTotalPay: l.grandTotalPay,
	}
	for i, r := range l.rows {
		days := make([]DayValue, len(r.days))
		for j := range r.days {
			days[j] = r.days[j].Value()
		}
		payload.Rows[i] = SaveRow{
			EmployeeID:  r.EmployeeID,
			Name:        r.Name,
			Code:        r.Code,
			Designation: r.Designation,
			HourlyRate:  r.HourlyRate,
			Days:        days,
			TotalHours:  r.totalHours,
			TotalPay:    r.totalPay,
		}
	}
	l.captureSnapshot()
	return payload, nil
}
