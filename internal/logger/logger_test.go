package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	assert.Equal(t, log.DebugLevel, SetLevel("debug"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Equal(t, log.InfoLevel, SetLevel("loud"))
}

func TestNewTo(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	SetLevel("info")

	var buf bytes.Buffer
	l := NewTo(&buf, "crossword")
	l.Info("generated", "placed", 12)
	l.Debug("hidden")

	assert.Contains(t, buf.String(), "crossword")
	assert.Contains(t, buf.String(), "placed=12")
	assert.NotContains(t, buf.String(), "hidden")

	Discard().Error("nothing")
}
