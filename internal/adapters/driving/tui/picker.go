// Package tui provides the interactive workspace setup prompt,
// built on Bubbletea following the Elm architecture.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/webrig-labs/webrig-cli/internal/adapters/driving/tui/styles"
	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// InitAnswers is the outcome of a completed setup prompt.
type InitAnswers struct {
	// Name is the chosen package name.
	Name string

	// Preset is the chosen starter flavour.
	Preset domain.Preset
}

// step tracks which prompt stage is active.
type step int

const (
	stepName step = iota
	stepPreset
	stepDone
)

// Model is the setup prompt following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type Model struct {
	styles *styles.Styles

	// nameInput collects the package name.
	nameInput textinput.Model

	// nameErr holds the current name validation message.
	nameErr string

	// presets are the selectable starter flavours.
	presets []domain.Preset

	// selected is the highlighted preset index.
	selected int

	step      step
	cancelled bool
}

// NewModel creates a setup prompt with the given default name prefilled.
func NewModel(defaultName string) *Model {
	ti := textinput.New()
	ti.Placeholder = "my-app"
	ti.SetValue(defaultName)
	ti.Focus()
	ti.CharLimit = 214
	ti.Width = 40

	return &Model{
		styles:    styles.DefaultStyles(),
		nameInput: ti,
		presets:   domain.AllPresets(),
	}
}

// Init initialises the prompt.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step == stepName {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	}

	switch m.step {
	case stepName:
		return m.updateName(keyMsg)
	case stepPreset:
		return m.updatePreset(keyMsg)
	}
	return m, nil
}

// updateName handles keys while the name field is active.
func (m *Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		name := strings.TrimSpace(m.nameInput.Value())
		if err := domain.ValidateProjectName(name); err != nil {
			m.nameErr = "not a valid package name"
			return m, nil
		}
		m.nameErr = ""
		m.nameInput.Blur()
		m.step = stepPreset
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// updatePreset handles keys while the preset list is active.
func (m *Model) updatePreset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.presets)-1 {
			m.selected++
		}
	case "enter":
		m.step = stepDone
		return m, tea.Quit
	}
	return m, nil
}

// View renders the prompt.
func (m *Model) View() string {
	if m.step == stepDone || m.cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("webrig init"))
	b.WriteString("\n\n")

	switch m.step {
	case stepName:
		b.WriteString(m.styles.Normal.Render("Package name"))
		b.WriteString("\n")
		b.WriteString(m.styles.InputField.Render(m.nameInput.View()))
		b.WriteString("\n")
		if m.nameErr != "" {
			b.WriteString(m.styles.Error.Render(m.nameErr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("[Enter] Continue  [Esc] Cancel"))

	case stepPreset:
		b.WriteString(m.styles.Normal.Render("Starter preset"))
		b.WriteString("\n\n")
		for i, preset := range m.presets {
			cursor := "  "
			style := m.styles.Normal
			if i == m.selected {
				cursor = "> "
				style = m.styles.Selected
			}
			line := fmt.Sprintf("%s%s  %s",
				cursor,
				style.Render(preset.String()),
				m.styles.Muted.Render(preset.Description()),
			)
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("[j/k] Navigate  [Enter] Select  [Esc] Cancel"))
	}

	return b.String()
}

// Answers returns the collected answers.
// Only meaningful after the prompt has finished.
func (m *Model) Answers() InitAnswers {
	return InitAnswers{
		Name:   strings.TrimSpace(m.nameInput.Value()),
		Preset: m.presets[m.selected],
	}
}

// Cancelled reports whether the user aborted the prompt.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

// RunInitPrompt runs the setup prompt to completion and returns the
// collected answers. Returns ErrCancelled if the user aborts.
func RunInitPrompt(defaultName string) (InitAnswers, error) {
	model := NewModel(defaultName)

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return InitAnswers{}, fmt.Errorf("running prompt: %w", err)
	}

	m, ok := final.(*Model)
	if !ok || m.Cancelled() {
		return InitAnswers{}, ErrCancelled
	}
	return m.Answers(), nil
}
