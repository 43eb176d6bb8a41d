package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandlerDefaultsWriter(t *testing.T) {
	handler := NewInterruptHandler(nil)
	assert.NotNil(t, handler.writer)
	assert.False(t, handler.WasInterrupted())
}

func TestInterruptCancelsContext(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)
	ctx := handler.HandleInterrupts(context.Background())
	defer handler.Stop()

	handler.interrupt()
	handler.interrupt()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled")
	}
	assert.True(t, handler.WasInterrupted())
	assert.Equal(t, 1, strings.Count(output.String(), "Mining interrupted!"))
}

func TestStopWithoutInterrupt(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)
	ctx := handler.HandleInterrupts(context.Background())

	handler.Stop()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestProgressObserver(t *testing.T) {
	var out bytes.Buffer
	p := NewProgressObserver(&out)

	p.OnLevel(1, 3)
	for i := 0; i < 3; i++ {
		p.OnCandidate()
	}
	p.OnLevelDone(1, 2)

	p.OnLevel(2, 3)
	p.OnCandidate()
	p.OnLevelDone(2, 0)

	assert.Contains(t, out.String(), "level 1: 2 frequent")
	assert.Contains(t, out.String(), "level 2: 0 frequent")
	assert.Nil(t, p.bar)
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatHint("try again"), "[Hint] try again")
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatTitle("Datasets"), "Datasets")
}
