/*
Package engine provides the core attendance ledger engine.

PURPOSE:
  This package contains the data model and algorithms for an editable
  attendance ledger: one reporting period, a roster of employees, and one
  attendance record per employee per day. The engine keeps "hours worked"
  and "absent" consistent with each other, derives row and grand totals,
  and freezes published rollups until an explicit save.

KEY CONCEPTS:
  - Time Normalizer (timefmt.go): keystrokes -> canonical "HH:MM"
  - DayRecord (day.go):           present/absent state machine per day
  - Row (row.go):                 one employee's days + derived totals
  - Ledger (ledger.go):           all rows + grand total + settle cycle
  - RollupSnapshot (rollup.go):   frozen vendor/site aggregates

DESIGN PRINCIPLES:
  1. Derived values: totals are always recomputed, never set by callers
  2. Precision: uses decimal.Decimal for hours and pay arithmetic
  3. Totality: malformed time input is absorbed, never raised as an error
  4. Explicit lifecycle: rollup snapshots are captured at load and save only

SEE ALSO:
  - day.go:    DayRecord transitions and the absent auto-entry rule
  - ledger.go: propose/settle two-phase hour commits
  - rollup.go: freeze-until-commit read policy
*/
package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// TIME NORMALIZER - digit-driven HH:MM formatting
// =============================================================================

// hhmmPattern is the canonical committed form: 00:00 through 23:59.
var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// DigitsOnly strips every non-digit character from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// IsCanonical reports whether s is a committed HH:MM value.
// The empty string is not canonical; it is the "no value" editing state.
func IsCanonical(s string) bool {
	return hhmmPattern.MatchString(s)
}

// LiveFormat normalizes a raw in-progress input for immediate display.
// It is applied on every keystroke: the user sees a plausible HH:MM
// rendering while the caret is still mid-edit. Trailing digits shift the
// window (typing "0930" then "5" reads as "9305"), so LiveFormat alone is
// not a stable resting point; Commit is.
func LiveFormat(raw string) string {
	return formatDigits(DigitsOnly(raw))
}

// Commit finalizes a raw input into its canonical value. Same digit
// algorithm as LiveFormat, but the result is a fixed point:
//
//	Commit(Commit(x)) == Commit(x) for all x
//
// and the result always satisfies IsCanonical or is "".
func Commit(raw string) string {
	return formatDigits(DigitsOnly(raw))
}

// formatDigits maps a digit buffer to HH:MM by digit count:
//
//	0 digits  -> ""
//	1 digit   -> 0d:00, hours clamped to 0..23
//	2 digits  -> dd:00, hours clamped to 0..23
//	3 digits  -> 0d:dd, hours clamped to 0..23, minutes to 0..59
//	4+ digits -> last four digits; any value above 2359 is pinned to
//	             23:59 outright (so "2460" is 23:59, not 23:59-per-field),
//	             otherwise hours and minutes are clamped independently
func formatDigits(digits string) string {
	switch len(digits) {
	case 0:
		return ""
	case 1:
		return pad2(clamp(atoi(digits), 0, 23)) + ":00"
	case 2:
		return pad2(clamp(atoi(digits), 0, 23)) + ":00"
	case 3:
		hh := clamp(atoi(digits[:1]), 0, 23)
		mm := clamp(atoi(digits[1:3]), 0, 59)
		return pad2(hh) + ":" + pad2(mm)
	default:
		four := digits[len(digits)-4:]
		if atoi(four) > 2359 {
			return "23:59"
		}
		hh := clamp(atoi(four[:2]), 0, 23)
		mm := clamp(atoi(four[2:]), 0, 59)
		return pad2(hh) + ":" + pad2(mm)
	}
}

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
