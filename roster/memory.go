package roster

import (
	"context"
	"sync"

	"github.com/Abk8406/attendance-manager/engine"
)

// =============================================================================
// MEMORY SOURCE/SINK - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements Source and Sink in memory.
type Memory struct {
	mu          sync.RWMutex
	employees   []Employee
	submissions []engine.SavePayload

	// Err, when set, is returned by Employees. Lets tests exercise the
	// roster-load failure path.
	Err error
}

func NewMemory(employees ...Employee) *Memory {
	return &Memory{employees: employees}
}

func (m *Memory) Employees(_ context.Context) ([]Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]Employee, len(m.employees))
	copy(out, m.employees)
	return out, nil
}

func (m *Memory) SubmitAttendance(_ context.Context, payload engine.SavePayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, payload)
	return nil
}

// Submissions returns everything submitted so far.
func (m *Memory) Submissions() []engine.SavePayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.SavePayload, len(m.submissions))
	copy(out, m.submissions)
	return out
}
