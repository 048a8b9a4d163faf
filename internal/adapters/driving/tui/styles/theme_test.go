package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	assert.NotEmpty(t, theme.Primary)
	assert.NotEmpty(t, theme.Foreground)
	assert.NotEmpty(t, theme.Muted)
}

func TestNewStyles(t *testing.T) {
	t.Run("nil theme falls back to default", func(t *testing.T) {
		s := NewStyles(nil)
		assert.NotNil(t, s.Theme())
	})

	t.Run("keeps provided theme", func(t *testing.T) {
		theme := DefaultTheme()
		s := NewStyles(theme)
		assert.Same(t, theme, s.Theme())
	})
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	assert.NotNil(t, s)
	assert.NotNil(t, s.Theme())
}
