package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abk8406/attendance-manager/engine"
)

// =============================================================================
// LIVE-DERIVE FALLBACK (no snapshot yet)
// =============================================================================

func TestRollup_LiveFallback_BeforeFirstCapture(t *testing.T) {
	// An unloaded ledger has no snapshot; reads derive on demand.
	l, err := engine.NewLedger(testConfig())
	require.NoError(t, err)
	require.Nil(t, l.Snapshot())

	primary := l.SiteTotalsFor("LBR - S Plant")
	assert.Equal(t, 0, primary.Employees)
	assert.True(t, primary.Hours.IsZero())

	// Secondary sites report their allocated headcount with zero hours
	// (average over an empty roster is zero).
	oud := l.SiteTotalsFor("OUD Plant (LBP)")
	assert.Equal(t, 2, oud.Employees)
	assert.True(t, oud.Hours.IsZero())

	vendor := l.VendorTotals()
	assert.Equal(t, 4, vendor.Employees)
	assert.True(t, vendor.Pay.IsZero())
}

func TestRollup_UnknownSite_ZeroFigures(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"))

	got := l.SiteTotalsFor("No Such Plant")
	assert.Equal(t, 0, got.Employees)
	assert.True(t, got.Hours.IsZero())
	assert.True(t, got.Pay.IsZero())
}

// =============================================================================
// CAPTURE ALGORITHM
// =============================================================================

func TestRollup_CaptureAtLoad(t *testing.T) {
	// GIVEN: two employees, 7 days at 08:00 -> 56h each, 112h total
	// THEN: the load-time snapshot distributes the 56h average to the
	//       allocated secondary headcounts

	l := newLoadedLedger(t, seed("1", "Asha"), seed("2", "Birol"))
	snap := l.Snapshot()
	require.NotNil(t, snap)

	primary := snap.Sites["LBR - S Plant"]
	assert.Equal(t, 2, primary.Employees)
	eqDec(t, "112", primary.Hours)
	eqDec(t, "2240", primary.Pay)

	// avg = 56h; each secondary site has 2 allocated employees.
	oud := snap.Sites["OUD Plant (LBP)"]
	assert.Equal(t, 2, oud.Employees)
	eqDec(t, "112", oud.Hours)
	eqDec(t, "2240", oud.Pay)

	vendor := snap.Vendor
	assert.Equal(t, 6, vendor.Employees)
	eqDec(t, "336", vendor.Hours)
	eqDec(t, "6720", vendor.Pay)
}

// =============================================================================
// FREEZE-UNTIL-COMMIT
// =============================================================================

func TestRollup_SnapshotFrozenAcrossEdits(t *testing.T) {
	// GIVEN: a captured snapshot
	// WHEN: a day is edited and totals recalculate
	// THEN: every rollup read is unchanged until the next capture

	l := newLoadedLedger(t, seed("1", "Asha"), seed("2", "Birol"))
	before := l.VendorTotals()

	require.NoError(t, l.MarkAbsent(0, 0))
	eqDec(t, "48", l.Rows()[0].TotalHours()) // live state moved

	after := l.VendorTotals()
	assert.True(t, before.Hours.Equal(after.Hours), "snapshot read must not track live edits")
	assert.True(t, before.Pay.Equal(after.Pay))
	assert.Equal(t, before.Employees, after.Employees)

	site := l.SiteTotalsFor("LBR - S Plant")
	eqDec(t, "112", site.Hours)
}

func TestRollup_SaveCapturesFreshSnapshot(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"), seed("2", "Birol"))

	require.NoError(t, l.MarkAbsent(0, 0))
	_, err := l.Save()
	require.NoError(t, err)

	// Post-save reads reflect the edit: 112 - 8 = 104 primary hours,
	// new avg = 52, secondary sites 104 each.
	primary := l.SiteTotalsFor("LBR - S Plant")
	eqDec(t, "104", primary.Hours)

	oud := l.SiteTotalsFor("OUD Plant (LBP)")
	eqDec(t, "104", oud.Hours)

	vendor := l.VendorTotals()
	eqDec(t, "312", vendor.Hours)
	eqDec(t, "6240", vendor.Pay)
}

func TestRollup_SnapshotReplacedWholesale(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"))
	first := l.Snapshot()

	_, err := l.Save()
	require.NoError(t, err)

	second := l.Snapshot()
	assert.NotSame(t, first, second, "capture must replace, not mutate")
}

func TestRollup_AllSiteTotals_CoversConfiguredSites(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"))

	all := l.AllSiteTotals()
	require.Len(t, all, 3)
	assert.Contains(t, all, "LBR - S Plant")
	assert.Contains(t, all, "OUD Plant (LBP)")
	assert.Contains(t, all, "LSS14")
}

func TestRollup_AverageHoursPerEmployee(t *testing.T) {
	l, err := engine.NewLedger(testConfig())
	require.NoError(t, err)
	assert.True(t, l.AverageHoursPerEmployee().IsZero())

	l.Load([]engine.EmployeeSeed{seed("1", "Asha"), seed("2", "Birol")})
	require.NoError(t, l.MarkAbsent(1, 0)) // 56 + 48 = 104 over 2 rows
	assert.True(t, decimal.NewFromInt(52).Equal(l.AverageHoursPerEmployee()))
}
