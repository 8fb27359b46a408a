package benchmarks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/klytics/diffkit/internal/batch"
	"github.com/klytics/diffkit/internal/input"
	"github.com/klytics/diffkit/internal/linediff"
	"github.com/klytics/diffkit/internal/render"
	"github.com/klytics/diffkit/internal/report"
	"github.com/klytics/diffkit/internal/unified"
)

var (
	sampleOld = filepath.Join("..", "testdata", "sample_old.txt")
	sampleNew = filepath.Join("..", "testdata", "sample_new.txt")
)

// texts builds two n-line texts where every tenth line differs.
func texts(n int) (string, string) {
	var a, b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&a, "line %d of the original text\n", i)
		if i%10 == 0 {
			fmt.Fprintf(&b, "line %d was edited\n", i)
		} else {
			fmt.Fprintf(&b, "line %d of the original text\n", i)
		}
	}
	return a.String(), b.String()
}

// --- Engine Benchmarks ---

func BenchmarkSplitLines(b *testing.B) {
	text, _ := texts(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		linediff.SplitLines(text)
	}
}

func benchmarkDiff(b *testing.B, n int) {
	original, modified := texts(n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		linediff.Diff(original, modified)
	}
}

func BenchmarkDiff100(b *testing.B)  { benchmarkDiff(b, 100) }
func BenchmarkDiff1000(b *testing.B) { benchmarkDiff(b, 1000) }
func BenchmarkDiff2000(b *testing.B) { benchmarkDiff(b, 2000) }

func BenchmarkDiffIdentical(b *testing.B) {
	text, _ := texts(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		linediff.Diff(text, text)
	}
}

func BenchmarkDiffSample(b *testing.B) {
	original, err := os.ReadFile(sampleOld)
	if os.IsNotExist(err) {
		b.Skip("sample_old.txt not found")
	}
	modified, err := os.ReadFile(sampleNew)
	if os.IsNotExist(err) {
		b.Skip("sample_new.txt not found")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		linediff.Diff(string(original), string(modified))
	}
}

// --- Output Benchmarks ---

func BenchmarkHunks(b *testing.B) {
	entries := linediff.Diff(texts(2000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		unified.Hunks(entries, unified.DefaultContext)
	}
}

func BenchmarkRenderFull(b *testing.B) {
	color.NoColor = true
	entries := linediff.Diff(texts(1000))
	opts := render.Options{LineNumbers: true}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := render.Full(io.Discard, entries, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriteXLSX(b *testing.B) {
	doc := report.New("a.txt", "b.txt", linediff.Diff(texts(500)))
	path := filepath.Join(b.TempDir(), "bench.xlsx")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := report.WriteXLSX(path, doc); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Batch Benchmarks ---

func BenchmarkBatch(b *testing.B) {
	fs := afero.NewMemMapFs()
	var pairs []batch.Pair
	for i := 0; i < 50; i++ {
		original, modified := texts(200)
		p := batch.Pair{
			Original: fmt.Sprintf("/old/%d.txt", i),
			Modified: fmt.Sprintf("/new/%d.txt", i),
		}
		afero.WriteFile(fs, p.Original, []byte(original), 0644)
		afero.WriteFile(fs, p.Modified, []byte(modified), 0644)
		pairs = append(pairs, p)
	}
	loader := &input.Loader{Fs: fs}

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := batch.Run(context.Background(), pairs, batch.Options{Loader: loader, Concurrency: workers}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
