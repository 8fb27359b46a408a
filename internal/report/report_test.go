package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/klytics/diffkit/internal/linediff"
)

func sampleDoc() *Document {
	return New("a.txt", "b.txt", linediff.Diff("a\nb\nc", "a\nx\nc"))
}

func TestNew(t *testing.T) {
	doc := sampleDoc()
	assert.Equal(t, linediff.Stats{Added: 1, Removed: 1, Unchanged: 2}, doc.Stats)
	assert.Len(t, doc.Entries, 4)
	assert.Empty(t, doc.Hunks)

	doc.WithHunks(0)
	require.Len(t, doc.Hunks, 1)
	assert.Equal(t, "@@ -2,1 +2,1 @@", doc.Hunks[0].Header())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleDoc()))

	var got Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "a.txt", got.Original)
	assert.Equal(t, sampleDoc().Entries, got.Entries)
	assert.Contains(t, buf.String(), "type: removed")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diff.xlsx")
	require.NoError(t, WriteXLSX(path, sampleDoc()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DiffSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Type", "Old", "New", "Line"}, rows[0])
	assert.Equal(t, []string{"unchanged", "1", "1", "a"}, rows[1])
	assert.Equal(t, []string{"removed", "2", "", "b"}, rows[2])
	assert.Equal(t, []string{"added", "", "2", "x"}, rows[3])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Added", "1"}, summary[2])
	assert.Equal(t, []string{"Removed", "1"}, summary[3])
}
