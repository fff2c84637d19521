package adapters

import (
	"sync"

	"career-relay/internal/logging/types"
)

// CaptureAdapter keeps entries in memory. Used by tests to assert on emitted logs.
type CaptureAdapter struct {
	name    string
	mu      sync.Mutex
	entries []types.LogEntry
}

func NewCaptureAdapter(name string) *CaptureAdapter {
	return &CaptureAdapter{name: name}
}

func (a *CaptureAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, *entry)
	return nil
}

func (a *CaptureAdapter) Close() error {
	return nil
}

func (a *CaptureAdapter) Name() string {
	return a.name
}

// Entries returns a copy of everything written so far
func (a *CaptureAdapter) Entries() []types.LogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]types.LogEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// AtLevel returns the captured entries with the given level
func (a *CaptureAdapter) AtLevel(level types.LogLevel) []types.LogEntry {
	var out []types.LogEntry
	for _, e := range a.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
