package roster

import "github.com/shopspring/decimal"

// =============================================================================
// DEMO ROSTER - seed data for an empty database
// =============================================================================

// DemoRoster returns a small realistic roster for the given day labels.
// Used by cmd/server to seed an empty store so the API is explorable out
// of the box.
func DemoRoster(days []string) []Employee {
	rate := decimal.NewFromInt(20)

	demo := []struct {
		id, name, empID, designation string
		absentDays                   []string
		shortDays                    map[string]string
	}{
		{"1", "Ravi Kumar", "LBR-1001", "Fitter", []string{pick(days, 2)}, nil},
		{"2", "Sunil Pillai", "LBR-1002", "Welder", nil, map[string]string{pick(days, 0): "04:30"}},
		{"3", "Mohammed Irfan", "LBR-1003", "Electrician", nil, nil},
		{"4", "Arun Nair", "LBR-1004", "Rigger", []string{pick(days, 5), pick(days, 6)}, nil},
	}

	employees := make([]Employee, 0, len(demo))
	for _, d := range demo {
		att := make(map[string]DayAttendance, len(days))
		for _, label := range days {
			att[label] = DayAttendance{Hours: "08:00"}
		}
		for _, label := range d.absentDays {
			att[label] = DayAttendance{Hours: "00:00", Absent: true}
		}
		for label, hours := range d.shortDays {
			att[label] = DayAttendance{Hours: hours}
		}
		employees = append(employees, Employee{
			ID:          d.id,
			Name:        d.name,
			EmpID:       d.empID,
			Designation: d.designation,
			HourlyRate:  rate,
			Attendance:  att,
		})
	}
	return employees
}

// pick returns the i-th label, clamped into range for short periods.
func pick(days []string, i int) string {
	if i >= len(days) {
		i = len(days) - 1
	}
	return days[i]
}
