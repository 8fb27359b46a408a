package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/diffkit/internal/output"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DIFFKIT_NO_PROGRESS", "1")
	color.NoColor = true

	root := &cobra.Command{Use: "diffkit", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().Bool("json", false, "")
	root.AddCommand(NewCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"batch"}, args...))
	err := root.Execute()
	return out.String(), err
}

func fixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	oldDir := filepath.Join(dir, "old")
	newDir := filepath.Join(dir, "new")
	writeTree(t, oldDir, map[string]string{
		"same.txt":     "a\nb",
		"changed.txt":  "a\nb",
		"sub/gone.txt": "x",
	})
	writeTree(t, newDir, map[string]string{
		"same.txt":    "a\nb",
		"changed.txt": "a\nc",
	})
	return oldDir, newDir
}

func TestBatchDirs(t *testing.T) {
	oldDir, newDir := fixture(t)

	got, err := run(t, oldDir, newDir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "M "+filepath.Join(newDir, "changed.txt")+"  (+1 -1)") {
		t.Errorf("changed pair not reported:\n%s", got)
	}
	if !strings.Contains(got, "= "+filepath.Join(newDir, "same.txt")) {
		t.Errorf("unchanged pair not reported:\n%s", got)
	}
	if !strings.Contains(got, "Compared 3 pairs. 2 changed, 1 unchanged, 0 failed.") {
		t.Errorf("unexpected summary:\n%s", got)
	}
}

func TestBatchChangedOnly(t *testing.T) {
	oldDir, newDir := fixture(t)

	got, err := run(t, oldDir, newDir, "--changed-only")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "same.txt") {
		t.Errorf("unchanged pair listed with --changed-only:\n%s", got)
	}
}

func TestBatchJSON(t *testing.T) {
	oldDir, newDir := fixture(t)

	got, err := run(t, oldDir, newDir, "--json")
	if err != nil {
		t.Fatal(err)
	}
	var result struct {
		OK   bool    `json:"ok"`
		Data summary `json:"data"`
	}
	if err := json.Unmarshal([]byte(got), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, got)
	}
	if !result.OK || result.Data.Pairs != 3 || result.Data.Changed != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestBatchManifest(t *testing.T) {
	oldDir, _ := fixture(t)
	manifest := filepath.Join(filepath.Dir(oldDir), "pairs.yaml")
	content := "pairs:\n  - original: old/changed.txt\n    modified: new/changed.txt\n"
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "--manifest", manifest, "--exit-code")
	if !errors.Is(err, output.ErrChanges) {
		t.Errorf("expected ErrChanges, got %v", err)
	}
	if !strings.Contains(got, "Compared 1 pairs.") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestBatchArgs(t *testing.T) {
	if _, err := run(t, "only-one"); err == nil {
		t.Error("expected error for a single directory")
	}
	if _, err := run(t, "a", "b", "--manifest", "m.yaml"); err == nil {
		t.Error("expected error for directories plus --manifest")
	}
}

func TestBatchFailedPair(t *testing.T) {
	oldDir, newDir := fixture(t)
	// A directory in place of a file fails to load.
	if err := os.MkdirAll(filepath.Join(newDir, "dir.txt"), 0755); err != nil {
		t.Fatal(err)
	}
	writeTree(t, oldDir, map[string]string{"dir.txt": "x"})

	_, err := run(t, oldDir, newDir)
	if output.Code(err) != output.ExitSystemError {
		t.Errorf("expected system error exit code, got %v", err)
	}
}
