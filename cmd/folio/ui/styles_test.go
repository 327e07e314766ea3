package ui

import (
	"strings"
	"testing"

	"termfolio/internal/terminal"

	"github.com/stretchr/testify/assert"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("FOLIO_DARK_MODE", "0")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme when FOLIO_DARK_MODE=0")
	}

	t.Setenv("FOLIO_DARK_MODE", "")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme by default")
	}
}

func TestDetectTheme_ColorFGBG(t *testing.T) {
	t.Setenv("FOLIO_DARK_MODE", "")

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "15;default;0")
	assert.True(t, DetectTheme().IsDark)
}

func TestStyles_Tone(t *testing.T) {
	s := NewStyles(DarkTheme())
	assert.Equal(t, s.Error.GetForeground(), s.Tone(terminal.ToneError).GetForeground())
	assert.Equal(t, s.Success.GetForeground(), s.Tone(terminal.ToneSuccess).GetForeground())
	assert.Equal(t, s.Notice.GetForeground(), s.Tone(terminal.ToneNotice).GetForeground())
	assert.Equal(t, s.Body.GetForeground(), s.Tone(terminal.ToneDefault).GetForeground())
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(LightTheme())
	assert.Equal(t, 5, strings.Count(s.RenderDivider(5), "─"))
	assert.NotPanics(t, func() { s.RenderDivider(-3) })
}
