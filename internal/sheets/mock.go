package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/cooccur/internal/model"
)

// RunWriter publishes an archived run somewhere outside the terminal.
type RunWriter interface {
	Write(ctx context.Context, run *model.Run) error
}

// MockWriter is a mock implementation of RunWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, run *model.Run) error
	LastRun        *model.Run
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error error
	Run   *model.Run
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the RunWriter interface.
func (m *MockWriter) Write(ctx context.Context, run *model.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastRun = run

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, run)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{Run: run, Error: err})

	return err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastRun = nil
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to return an error on every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, *model.Run) error {
		return err
	}
}
