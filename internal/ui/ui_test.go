package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 40))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "äöå...", Truncate("äöåäöå", 3))
}

func TestPanel_AlignsVisibleWidth(t *testing.T) {
	SetTheme("classic")
	var buf bytes.Buffer
	Panel(&buf, []string{"a", "\033[31mred\033[0m"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "┌─────┐", lines[0])
	assert.Equal(t, "│ a   │", lines[1])
	assert.Equal(t, "└─────┘", lines[3])
}

func TestOKFail_NoColorOnBuffers(t *testing.T) {
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	assert.Equal(t, "✔ added\n✖ nope\n", buf.String())
}

func TestSetTheme_MonoIsReversible(t *testing.T) {
	SetColorForcing(true, false)
	t.Cleanup(func() {
		SetColorForcing(false, false)
		SetTheme("classic")
	})
	var buf bytes.Buffer

	SetTheme("mono")
	assert.Equal(t, "x", Cw(&buf, fgRed, "x"))

	SetTheme("classic")
	assert.Equal(t, fgRed+"x"+reset, Cw(&buf, fgRed, "x"))
}

func TestSetColorForcing_Disable(t *testing.T) {
	SetColorForcing(false, true)
	t.Cleanup(func() { SetColorForcing(false, false) })
	var buf bytes.Buffer
	assert.Equal(t, "x", Cw(&buf, fgRed, "x"))
}
