package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/cooccur/internal/dataset"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the analyst quits the picker.
var ErrCancelled = errors.New("selection cancelled")

// RunPicker shows the picker on the given terminal streams and returns the choice.
func RunPicker(ctx context.Context, datasets []dataset.Dataset, in io.Reader, out io.Writer) (Selection, error) {
	if len(datasets) == 0 {
		return Selection{}, errors.New("no datasets to choose from")
	}

	program := tea.NewProgram(NewPicker(datasets),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := program.Run()
	if err != nil {
		return Selection{}, fmt.Errorf("picker failed: %w", err)
	}

	picker, ok := final.(Picker)
	if !ok {
		return Selection{}, fmt.Errorf("unexpected picker model %T", final)
	}

	sel, done := picker.Selection()
	if !done {
		return Selection{}, ErrCancelled
	}
	return sel, nil
}
