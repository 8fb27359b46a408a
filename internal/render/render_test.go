package render

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klytics/diffkit/internal/linediff"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestFull(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	require.NoError(t, Full(&buf, linediff.Diff("a\nb\nc", "a\nx\nc"), Options{}))

	want := "  a\n" +
		"- b\n" +
		"+ x\n" +
		"  c\n" +
		"\n" +
		"+1 added  -1 removed\n"
	assert.Equal(t, want, buf.String())
}

func TestFullLineNumbers(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	require.NoError(t, Full(&buf, linediff.Diff("a\nb", "a\nb\nc"), Options{LineNumbers: true}))

	want := "1 1   a\n" +
		"2 2   b\n" +
		"  3 + c\n" +
		"\n" +
		"+1 added  -0 removed\n"
	assert.Equal(t, want, buf.String())
}

func TestFullNoChanges(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	require.NoError(t, Full(&buf, linediff.Diff("same", "same"), Options{}))
	assert.Equal(t, "  same\n\nNo changes\n", buf.String())
}

func TestUnified(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	opts := Options{OldName: "old.txt", NewName: "new.txt", Context: 1}
	require.NoError(t, Unified(&buf, linediff.Diff("intro\nmiddle\nend", "intro\nnew middle\nend"), opts))

	want := "--- old.txt  (3 lines)\n" +
		"+++ new.txt  (3 lines)\n" +
		"@@ -1,3 +1,3 @@\n" +
		" intro\n" +
		"-middle\n" +
		"+new middle\n" +
		" end\n" +
		"\n" +
		"+1 added  -1 removed\n"
	assert.Equal(t, want, buf.String())
}

func TestSummary(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, linediff.Stats{Added: 2, Removed: 3}))
	assert.Equal(t, "+2 added  -3 removed\n", buf.String())

	buf.Reset()
	require.NoError(t, Summary(&buf, linediff.Stats{Unchanged: 4}))
	assert.Equal(t, "No changes\n", buf.String())
}
