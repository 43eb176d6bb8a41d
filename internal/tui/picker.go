package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/cooccur/internal/cli"
	"github.com/Veraticus/cooccur/internal/dataset"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Validation messages shown under the threshold prompt.
const (
	MsgNotNumeric  = "Enter numeric like 0.05 or 0.6"
	MsgOutOfBounds = "Value must be >0 and ≤1."
)

var (
	errNotNumeric  = errors.New(MsgNotNumeric)
	errOutOfBounds = errors.New(MsgOutOfBounds)
)

type stage int

const (
	stageDataset stage = iota
	stageSupport
	stageConfidence
	stageDone
)

// Selection is what the analyst picked.
type Selection struct {
	Dataset       dataset.Dataset
	MinSupport    float64
	MinConfidence float64
}

// Picker asks for a dataset, then minimum support, then minimum confidence.
type Picker struct {
	err       error
	keys      KeyMap
	datasets  []dataset.Dataset
	input     textinput.Model
	selection Selection
	cursor    int
	stage     stage
	cancelled bool
}

// NewPicker creates a picker over datasets.
func NewPicker(datasets []dataset.Dataset) Picker {
	input := textinput.New()
	input.CharLimit = 12
	input.Width = 12
	input.Prompt = ""

	return Picker{
		keys:     DefaultKeyMap(),
		datasets: datasets,
		input:    input,
		stage:    stageDataset,
	}
}

// Init implements tea.Model.
func (m Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// "q" only quits from the list; in a prompt it is just a bad character.
	if keyMsg.Type == tea.KeyCtrlC || keyMsg.Type == tea.KeyEsc ||
		(m.stage == stageDataset && key.Matches(keyMsg, m.keys.Quit)) {
		m.cancelled = true
		return m, tea.Quit
	}

	if m.stage == stageDataset {
		return m.updateDataset(keyMsg)
	}
	return m.updateThreshold(keyMsg)
}

func (m Picker) updateDataset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.datasets)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = max(len(m.datasets)-1, 0)
	case key.Matches(msg, m.keys.Select):
		if len(m.datasets) == 0 {
			return m, nil
		}
		m.selection.Dataset = m.datasets[m.cursor]
		return m.enterStage(stageSupport), textinput.Blink
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		// Digits jump straight to a numbered dataset.
		if n, err := strconv.Atoi(string(msg.Runes)); err == nil && n >= 1 && n <= len(m.datasets) {
			m.cursor = n - 1
		}
	}
	return m, nil
}

func (m Picker) updateThreshold(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.stage == stageSupport {
			m.input.Blur()
			m.stage = stageDataset
			m.err = nil
			return m, nil
		}
		return m.enterStage(stageSupport), nil
	case key.Matches(msg, m.keys.Select):
		v, err := ParseProbability(m.input.Value())
		if err != nil {
			m.err = err
			m.input.SetValue("")
			return m, nil
		}
		m.err = nil
		if m.stage == stageSupport {
			m.selection.MinSupport = v
			return m.enterStage(stageConfidence), nil
		}
		m.selection.MinConfidence = v
		m.stage = stageDone
		m.input.Blur()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Picker) enterStage(s stage) Picker {
	m.stage = s
	m.err = nil
	m.input.SetValue("")
	switch s {
	case stageSupport:
		m.input.Placeholder = "0.05"
	case stageConfidence:
		m.input.Placeholder = "0.6"
	}
	m.input.Focus()
	return m
}

// View implements tea.Model.
func (m Picker) View() string {
	if m.stage == stageDone || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Available datasets"))
	b.WriteString("\n")

	for i, d := range m.datasets {
		line := fmt.Sprintf("%d. %s", i+1, d.Name)
		if i == m.cursor {
			b.WriteString(cli.PromptStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	switch m.stage {
	case stageDataset:
		b.WriteString("\n" + cli.SubtleStyle.Render(fmt.Sprintf("Enter the number of the dataset to use (1–%d), or move and press enter.", len(m.datasets))))
	case stageSupport:
		b.WriteString("\nUsing dataset: " + cli.BoldStyle.Render(m.selection.Dataset.Name) + "\n")
		b.WriteString("Enter minimum support (0–1]: " + m.input.View())
	case stageConfidence:
		b.WriteString("\nUsing dataset: " + cli.BoldStyle.Render(m.selection.Dataset.Name) + "\n")
		b.WriteString(fmt.Sprintf("Minimum support: %v\n", m.selection.MinSupport))
		b.WriteString("Enter minimum confidence (0–1]: " + m.input.View())
	}

	if m.err != nil {
		b.WriteString("\n" + cli.ErrorStyle.Render(m.err.Error()))
	}

	help := make([]string, 0, len(m.keys.ShortHelp()))
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n\n" + cli.SubtleStyle.Render(strings.Join(help, " • ")) + "\n")

	return b.String()
}

// Selection returns the choice once the picker has finished.
func (m Picker) Selection() (Selection, bool) {
	return m.selection, m.stage == stageDone && !m.cancelled
}

// Cancelled reports whether the analyst quit the picker.
func (m Picker) Cancelled() bool {
	return m.cancelled
}

// ParseProbability accepts plain decimals like "0.05" or ".6" in (0, 1].
func ParseProbability(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !isPlainDecimal(s) {
		return 0, errNotNumeric
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotNumeric
	}
	if v <= 0 || v > 1 {
		return 0, errOutOfBounds
	}
	return v, nil
}

// isPlainDecimal accepts digits with at most one dot and at least one digit.
func isPlainDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
