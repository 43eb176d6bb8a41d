package cli

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/schollz/progressbar/v3"
)

// progressFlushEvery batches bar updates; rendering per candidate dominates small levels.
const progressFlushEvery = 1024

// ProgressObserver renders one progress bar per mining level. It satisfies
// mining.Observer.
type ProgressObserver struct {
	writer  io.Writer
	bar     *progressbar.ProgressBar
	pending int64
	level   int
}

// NewProgressObserver writes bars to w.
func NewProgressObserver(w io.Writer) *ProgressObserver {
	return &ProgressObserver{writer: w}
}

// OnLevel starts a bar for level k sized to the candidate count.
func (p *ProgressObserver) OnLevel(k int, candidates uint64) {
	p.finish()

	total := int64(-1)
	if candidates <= math.MaxInt64 {
		total = int64(candidates)
	}

	p.level = k
	p.pending = 0
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(0),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]Level %d candidates...[reset]", k)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// OnCandidate counts one tested candidate.
func (p *ProgressObserver) OnCandidate() {
	p.pending++
	if p.pending >= progressFlushEvery {
		p.flush()
	}
}

// OnLevelDone closes the bar for level k.
func (p *ProgressObserver) OnLevelDone(k int, frequent int) {
	p.finish()
	if _, err := fmt.Fprintf(p.writer, "  level %d: %d frequent\n", k, frequent); err != nil {
		slog.Warn("Failed to write level summary", "error", err)
	}
}

func (p *ProgressObserver) flush() {
	if p.bar == nil || p.pending == 0 {
		return
	}
	if err := p.bar.Add64(p.pending); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
	p.pending = 0
}

func (p *ProgressObserver) finish() {
	if p.bar == nil {
		return
	}
	p.flush()
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	if _, err := fmt.Fprintln(p.writer); err != nil {
		slog.Warn("Failed to write newline after progress bar", "error", err)
	}
	p.bar = nil
}
