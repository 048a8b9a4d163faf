package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

func keyPress(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestModel_CompletesWithDefaults(t *testing.T) {
	var m tea.Model = NewModel("my-app")

	m = keyPress(m, "enter") // accept name
	m = keyPress(m, "enter") // accept first preset

	model := m.(*Model)
	assert.False(t, model.Cancelled())

	answers := model.Answers()
	assert.Equal(t, "my-app", answers.Name)
	assert.Equal(t, domain.AllPresets()[0], answers.Preset)
}

func TestModel_NavigatesPresets(t *testing.T) {
	var m tea.Model = NewModel("my-app")

	m = keyPress(m, "enter")
	m = keyPress(m, "j")
	m = keyPress(m, "j")
	m = keyPress(m, "k")
	m = keyPress(m, "enter")

	answers := m.(*Model).Answers()
	assert.Equal(t, domain.AllPresets()[1], answers.Preset)
}

func TestModel_RejectsInvalidName(t *testing.T) {
	var m tea.Model = NewModel("Not A Name")

	m = keyPress(m, "enter")

	model := m.(*Model)
	assert.Equal(t, stepName, model.step)
	assert.Contains(t, model.View(), "not a valid package name")
}

func TestModel_CancelWithEscape(t *testing.T) {
	var m tea.Model = NewModel("my-app")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.True(t, next.(*Model).Cancelled())
}

func TestModel_ViewShowsPresetDescriptions(t *testing.T) {
	var m tea.Model = NewModel("my-app")
	m = keyPress(m, "enter")

	view := m.(*Model).View()
	for _, preset := range domain.AllPresets() {
		assert.Contains(t, view, preset.String())
	}
}

func TestModel_TypedNameIsCollected(t *testing.T) {
	var m tea.Model = NewModel("")

	m = keyPress(m, "demo")
	m = keyPress(m, "enter")
	m = keyPress(m, "enter")

	answers := m.(*Model).Answers()
	assert.Equal(t, "demo", answers.Name)
}
