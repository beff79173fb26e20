/*
rollup.go - Frozen vendor/site aggregates

PURPOSE:
  RollupSnapshot captures vendor-level and per-site totals at two trigger
  points only: roster load and explicit save. Reads always answer from
  the snapshot when one exists, even if the ledger has unsaved edits;
  summary figures presented to a reader stay stable until the operator
  commits. Only before the first capture do reads fall back to a live
  derivation.

LIVE-DERIVE FALLBACK:
  The primary site has direct attendance data: its numbers come straight
  from the ledger. Secondary sites carry only a configured headcount;
  their hours are headcount * average hours per employee, priced at the
  global rate. Vendor totals are the elementwise sum over all sites.

SEE ALSO:
  - ledger.go: Load and Save, the only two capture triggers
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// SiteTotals is one site's (or the vendor-wide) aggregate figures.
type SiteTotals struct {
	Employees int             `json:"employees"`
	Hours     decimal.Decimal `json:"hours"`
	Pay       decimal.Decimal `json:"pay"`
}

func (t SiteTotals) add(o SiteTotals) SiteTotals {
	return SiteTotals{
		Employees: t.Employees + o.Employees,
		Hours:     t.Hours.Add(o.Hours),
		Pay:       t.Pay.Add(o.Pay),
	}
}

// RollupSnapshot is an immutable aggregate captured from the ledger.
// It is replaced wholesale by the next capture, never mutated in place.
type RollupSnapshot struct {
	TakenAt time.Time
	Vendor  SiteTotals
	Sites   map[string]SiteTotals
}

// Snapshot returns the current snapshot, or nil if none has been
// captured yet. The returned snapshot is frozen; treat it as read-only.
func (l *Ledger) Snapshot() *RollupSnapshot { return l.snapshot }

// captureSnapshot derives fresh totals from the live ledger and replaces
// the previous snapshot atomically. Called by Load and Save only.
func (l *Ledger) captureSnapshot() {
	sites := make(map[string]SiteTotals, len(l.cfg.Sites)+1)

	primary := l.livePrimaryTotals()
	sites[l.cfg.PrimarySite] = primary

	vendor := primary
	avg := l.AverageHoursPerEmployee()
	for name, headcount := range l.cfg.Sites {
		derived := l.deriveSiteTotals(headcount, avg)
		sites[name] = derived
		vendor = vendor.add(derived)
	}

	l.snapshot = &RollupSnapshot{
		TakenAt: time.Now().UTC(),
		Vendor:  vendor,
		Sites:   sites,
	}
}

// livePrimaryTotals reads the primary site directly from the ledger.
func (l *Ledger) livePrimaryTotals() SiteTotals {
	hours := decimal.Zero
	for _, r := range l.rows {
		hours = hours.Add(r.totalHours)
	}
	return SiteTotals{
		Employees: len(l.rows),
		Hours:     hours,
		Pay:       hours.Mul(l.cfg.HourlyRate),
	}
}

// deriveSiteTotals estimates a secondary site from its allocated
// headcount and the ledger-wide average hours figure.
func (l *Ledger) deriveSiteTotals(headcount int, avg decimal.Decimal) SiteTotals {
	hours := avg.Mul(decimal.NewFromInt(int64(headcount)))
	return SiteTotals{
		Employees: headcount,
		Hours:     hours,
		Pay:       hours.Mul(l.cfg.HourlyRate),
	}
}

// VendorTotals answers the vendor-wide rollup query: from the snapshot
// when one exists, otherwise live-derived on demand.
func (l *Ledger) VendorTotals() SiteTotals {
	if l.snapshot != nil {
		return l.snapshot.Vendor
	}
	vendor := l.livePrimaryTotals()
	avg := l.AverageHoursPerEmployee()
	for _, headcount := range l.cfg.Sites {
		vendor = vendor.add(l.deriveSiteTotals(headcount, avg))
	}
	return vendor
}

// SiteTotalsFor answers a single-site rollup query under the same
// snapshot-first policy. Unknown sites report zero figures.
func (l *Ledger) SiteTotalsFor(name string) SiteTotals {
	if l.snapshot != nil {
		if t, ok := l.snapshot.Sites[name]; ok {
			return t
		}
		return zeroTotals()
	}
	if name == l.cfg.PrimarySite {
		return l.livePrimaryTotals()
	}
	if headcount, ok := l.cfg.Sites[name]; ok {
		return l.deriveSiteTotals(headcount, l.AverageHoursPerEmployee())
	}
	return zeroTotals()
}

// AllSiteTotals answers the rollup query for every known site.
func (l *Ledger) AllSiteTotals() map[string]SiteTotals {
	out := make(map[string]SiteTotals, len(l.cfg.Sites)+1)
	out[l.cfg.PrimarySite] = l.SiteTotalsFor(l.cfg.PrimarySite)
	for name := range l.cfg.Sites {
		out[name] = l.SiteTotalsFor(name)
	}
	return out
}

func zeroTotals() SiteTotals {
	return SiteTotals{Hours: decimal.Zero, Pay: decimal.Zero}
}
