package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abk8406/attendance-manager/engine"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func testConfig(days ...string) engine.Config {
	if len(days) == 0 {
		days = []string{"15", "16", "17", "18", "19", "20", "21"}
	}
	return engine.Config{
		Days:        days,
		HourlyRate:  decimal.NewFromInt(20),
		PrimarySite: "LBR - S Plant",
		Sites: engine.SiteAllocation{
			"OUD Plant (LBP)": 2,
			"LSS14":           2,
		},
	}
}

func seed(id, name string) engine.EmployeeSeed {
	return engine.EmployeeSeed{
		ID:          id,
		Name:        name,
		Code:        "E-" + id,
		Designation: "Technician",
		HourlyRate:  decimal.NewFromInt(25), // deliberately not the global rate
		Attendance:  map[string]engine.DaySeed{},
	}
}

func newLoadedLedger(t *testing.T, seeds ...engine.EmployeeSeed) *engine.Ledger {
	t.Helper()
	l, err := engine.NewLedger(testConfig())
	require.NoError(t, err)
	l.Load(seeds)
	return l
}

func eqDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		"want %s, got %s", want, got.String())
}

// =============================================================================
// LOAD
// =============================================================================

func TestLedger_NewRequiresDays(t *testing.T) {
	_, err := engine.NewLedger(engine.Config{HourlyRate: decimal.NewFromInt(20)})
	assert.ErrorIs(t, err, engine.ErrEmptyPeriod)
}

func TestLedger_Load_SeedsDefaultsAndRecalculates(t *testing.T) {
	// GIVEN: two employees, no seed data
	// WHEN: loading
	// THEN: every day is present at 08:00 and totals are derived once

	l := newLoadedLedger(t, seed("1", "Asha"), seed("2", "Birol"))

	require.Equal(t, 2, l.Len())
	row := l.Rows()[0]
	require.Equal(t, 7, row.Days())
	for i := 0; i < row.Days(); i++ {
		assert.False(t, row.Day(i).Absent())
		assert.Equal(t, "08:00", row.Day(i).Hours())
	}

	eqDec(t, "56", row.TotalHours())       // 7 days * 8h
	eqDec(t, "1120", row.TotalPay())       // 56 * 20
	eqDec(t, "2240", l.GrandTotalPay())    // 2 rows
	require.NotNil(t, l.Snapshot())        // initial capture at load
}

func TestLedger_Load_RespectsSeedData(t *testing.T) {
	emp := seed("1", "Asha")
	emp.Attendance["15"] = engine.DaySeed{Hours: "04:30"}
	emp.Attendance["16"] = engine.DaySeed{Absent: true}

	l := newLoadedLedger(t, emp)
	row := l.Rows()[0]

	assert.Equal(t, "04:30", row.Day(0).Hours())
	assert.True(t, row.Day(1).Absent())
	assert.Equal(t, "00:00", row.Day(1).Hours())
	// Remaining 5 days default to 08:00: 4.5 + 5*8 = 44.5
	eqDec(t, "44.5", row.TotalHours())
}

// =============================================================================
// EDITS AND RECALCULATION ORDER
// =============================================================================

func TestLedger_SetHours_PropagatesToTotals(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"))

	require.NoError(t, l.SetHours(0, 0, "430"))

	row := l.Rows()[0]
	assert.Equal(t, "04:30", row.Day(0).Hours())
	eqDec(t, "52.5", row.TotalHours()) // 4.5 + 6*8
	eqDec(t, "1050", row.TotalPay())
	eqDec(t, "1050", l.GrandTotalPay())
}

func TestLedger_SetHours_ZeroMarksDayAbsent(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"))

	require.NoError(t, l.SetHours(0, 2, "0000"))

	day := l.Rows()[0].Day(2)
	assert.True(t, day.Absent())
	assert.Equal(t, "00:00", day.Hours())
	eqDec(t, "48", l.Rows()[0].TotalHours())
}

func TestLedger_ProposeHours_DeferredUntilSettle(t *testing.T) {
	// GIVEN: a staged hours write
	// WHEN: Settle has not yet run
	// THEN: ledger state is unchanged; Settle then applies it in one pass

	l := newLoadedLedger(t, seed("1", "Asha"))

	require.NoError(t, l.ProposeHours(0, 0, "400"))
	assert.Equal(t, "08:00", l.Rows()[0].Day(0).Hours(), "write must wait for settle")
	eqDec(t, "56", l.Rows()[0].TotalHours())

	l.Settle()
	assert.Equal(t, "04:00", l.Rows()[0].Day(0).Hours())
	eqDec(t, "52", l.Rows()[0].TotalHours())
	eqDec(t, "1040", l.GrandTotalPay())
}

func TestLedger_Settle_AppliesStagedWritesInOrder(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"))

	// Two writes to the same field: the later proposal wins.
	require.NoError(t, l.ProposeHours(0, 0, "400"))
	require.NoError(t, l.ProposeHours(0, 0, "600"))
	l.Settle()

	assert.Equal(t, "06:00", l.Rows()[0].Day(0).Hours())
}

func TestLedger_MarkAbsentAndPresent_RoundTrip(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"))

	require.NoError(t, l.SetHours(0, 0, "0930"))
	require.NoError(t, l.MarkAbsent(0, 0))
	assert.True(t, l.Rows()[0].Day(0).Absent())
	eqDec(t, "48", l.Rows()[0].TotalHours())

	// MarkPresent after a forced absence restores the default, not the
	// overridden 09:30.
	require.NoError(t, l.MarkPresent(0, 0))
	assert.Equal(t, "08:00", l.Rows()[0].Day(0).Hours())
	eqDec(t, "56", l.Rows()[0].TotalHours())
}

func TestLedger_GrandTotal_AlwaysSumOfRowPay(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"), seed("2", "Birol"), seed("3", "Chitra"))

	require.NoError(t, l.SetHours(0, 0, "4"))
	require.NoError(t, l.MarkAbsent(1, 3))
	require.NoError(t, l.SetHours(2, 6, "1215"))

	want := decimal.Zero
	for _, r := range l.Rows() {
		want = want.Add(r.TotalPay())
	}
	assert.True(t, want.Equal(l.GrandTotalPay()))
}

func TestLedger_IndexErrors(t *testing.T) {
	l := newLoadedLedger(t, seed("1", "Asha"))

	assert.ErrorIs(t, l.SetHours(5, 0, "800"), engine.ErrRowOutOfRange)
	assert.ErrorIs(t, l.SetHours(0, 42, "800"), engine.ErrDayOutOfRange)
	assert.ErrorIs(t, l.MarkAbsent(-1, 0), engine.ErrRowOutOfRange)
}

func TestLedger_OperationsBeforeLoad(t *testing.T) {
	l, err := engine.NewLedger(testConfig())
	require.NoError(t, err)

	assert.ErrorIs(t, l.SetHours(0, 0, "800"), engine.ErrNotLoaded)
	_, err = l.Save()
	assert.ErrorIs(t, err, engine.ErrNotLoaded)
	_, err = l.Export()
	assert.ErrorIs(t, err, engine.ErrNotLoaded)
}

// =============================================================================
// ROUNDING
// =============================================================================

func TestRow_TotalHours_RoundedHalfUp(t *testing.T) {
	// 20-minute days: 1/3 hour each. Seven of them sum to 2.333...,
	// which rounds to 2.33. Pay is computed from the rounded figure.
	emp := seed("1", "Asha")
	for _, d := range testConfig().Days {
		emp.Attendance[d] = engine.DaySeed{Hours: "00:20"}
	}
	l := newLoadedLedger(t, emp)

	eqDec(t, "2.33", l.Rows()[0].TotalHours())
	eqDec(t, "46.6", l.Rows()[0].TotalPay())
}

// =============================================================================
// SAVE AND EXPORT CONTRACTS
// =============================================================================

func TestLedger_Save_ReturnsRawContents(t *testing.T) {
	emp := seed("1", "Asha")
	emp.Attendance["16"] = engine.DaySeed{Absent: true}
	l := newLoadedLedger(t, emp)

	payload, err := l.Save()
	require.NoError(t, err)

	require.Len(t, payload.Rows, 1)
	r := payload.Rows[0]
	assert.Equal(t, "Asha", r.Name)
	assert.Equal(t, "E-1", r.Code)
	require.Len(t, r.Days, 7)
	// Absent days keep their raw (pinned) hours in the payload.
	assert.True(t, r.Days[1].Absent)
	assert.Equal(t, "00:00", r.Days[1].Hours)
	assert.True(t, payload.GrandTotalPay.Equal(l.GrandTotalPay()))
}

func TestLedger_Export_ColumnOrderAndAbsentToken(t *testing.T) {
	emp := seed("1", "Asha")
	emp.Attendance["17"] = engine.DaySeed{Absent: true}
	l := newLoadedLedger(t, emp)

	sheet, err := l.Export()
	require.NoError(t, err)

	wantHeader := []string{
		"Employee Name", "Emp ID", "Designation",
		"15", "16", "17", "18", "19", "20", "21",
		"Total Working Hour", "Total Pay",
	}
	assert.Equal(t, wantHeader, sheet.Header)

	require.Len(t, sheet.Rows, 1)
	row := sheet.Rows[0]
	assert.Equal(t, "Asha", row[0])
	assert.Equal(t, "08:00", row[3])
	assert.Equal(t, "Absent", row[5]) // day "17"
	assert.Equal(t, "48", row[len(row)-2])
	assert.Equal(t, "960", row[len(row)-1])
}
