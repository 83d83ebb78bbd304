package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderDrain(t *testing.T) {
	rec := NewRecorder(2)
	assert.Empty(t, rec.Drain())

	rec.Notify("one", SeverityInfo)
	rec.Notify("two", SeverityWarning)
	rec.Notify("three", SeverityError)

	notes := rec.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, "two", notes[0].Message)
	assert.Equal(t, SeverityError, notes[1].Severity)
	assert.Empty(t, rec.Drain())
}

func TestMultiNotifier(t *testing.T) {
	a, b := NewRecorder(0), NewRecorder(0)
	var out bytes.Buffer
	MultiNotifier{a, b, TerminalNotifier{Out: &out}, LogNotifier{}}.Notify("saved", SeveritySuccess)

	assert.Len(t, a.Drain(), 1)
	assert.Len(t, b.Drain(), 1)
	assert.Contains(t, out.String(), "saved")
}

func TestConfirmers(t *testing.T) {
	assert.True(t, AlwaysConfirm.Confirm("?"))
	assert.False(t, NeverConfirm.Confirm("?"))

	var asked string
	c := ConfirmFunc(func(p string) bool { asked = p; return true })
	assert.True(t, c.Confirm(overwritePrompt))
	assert.Equal(t, overwritePrompt, asked)
}
