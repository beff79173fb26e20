/*
day.go - Attendance state for one employee on one day

PURPOSE:
  DayRecord couples "hours worked" and "absent" as a two-state machine
  instead of two reactive fields watching each other. The coupling is
  deliberately asymmetric:

    - Absent is entered implicitly: committing "00:00" or "" on a present
      day marks it absent. This is the ONLY implicit transition.
    - Present is never entered implicitly: only MarkPresent returns a
      record to the present state, restoring the 08:00 default if the
      hours were zeroed out.

  Every transition leaves Hours either canonical HH:MM or "00:00"; a
  partially typed value never survives a transition.

STATES:
  Present (absent=false)   hours count toward row totals
  Absent  (absent=true)    hours pinned at "00:00", SetHours ignored

SEE ALSO:
  - timefmt.go: Commit, the normalization applied by SetHours
  - row.go:     how day records roll up into totals
*/
package engine

// DefaultHours is the seeded value for an unspecified present day and the
// value MarkPresent restores when returning from a zeroed-out state.
const DefaultHours = "08:00"

// absentHours is the pinned value for an absent day.
const absentHours = "00:00"

// DayRecord is owned by exactly one Row and mutated only through its
// transitions. The zero value is not useful; rows build their records
// through newDayRecord.
type DayRecord struct {
	hours  string
	absent bool
}

func newDayRecord(seed DaySeed) DayRecord {
	if seed.Absent {
		return DayRecord{hours: absentHours, absent: true}
	}
	hours := seed.Hours
	if hours == "" {
		hours = DefaultHours
	}
	return DayRecord{hours: hours}
}

// Hours returns the current hours value.
func (d *DayRecord) Hours() string { return d.hours }

// Absent reports whether the day is in the absent state.
func (d *DayRecord) Absent() bool { return d.absent }

// SetHours commits raw and applies it. On a present day, a committed
// "00:00" or "" auto-transitions the record to absent. On an absent day
// the call is ignored by policy: absent hours only change through
// MarkPresent or MarkAbsent.
//
// Returns true when the record changed.
func (d *DayRecord) SetHours(raw string) bool {
	if d.absent {
		return false
	}
	committed := Commit(raw)
	if committed == "" || committed == absentHours {
		d.hours = absentHours
		d.absent = true
		return true
	}
	if committed == d.hours {
		return false
	}
	d.hours = committed
	return true
}

// MarkAbsent forces the absent state, discarding any nonzero hours.
func (d *DayRecord) MarkAbsent() bool {
	if d.absent && d.hours == absentHours {
		return false
	}
	d.hours = absentHours
	d.absent = true
	return true
}

// MarkPresent returns the record to the present state. Hours of "" or
// "00:00" are restored to the 08:00 default; anything else is kept.
func (d *DayRecord) MarkPresent() bool {
	if !d.absent && d.hours != "" && d.hours != absentHours {
		return false
	}
	d.absent = false
	if d.hours == "" || d.hours == absentHours {
		d.hours = DefaultHours
	}
	return true
}

// Value returns the record as a plain value pair for payloads.
func (d *DayRecord) Value() DayValue {
	return DayValue{Hours: d.hours, Absent: d.absent}
}

// DayValue is the serializable form of a day record.
type DayValue struct {
	Hours  string `json:"hours"`
	Absent bool   `json:"absent"`
}

// DaySeed is the source-data form of a day record used by Ledger.Load.
// An absent seed pins hours to "00:00" regardless of the seeded hours;
// a present seed with empty hours falls back to the 08:00 default.
type DaySeed struct {
	Hours  string
	Absent bool
}
