// Package tests provides smoke tests that validate every diffkit command
// exists, runs, and exits with the documented status codes.
// These tests run the compiled binary. They are integration tests.
package tests

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var (
	sampleOld = filepath.Join("..", "testdata", "sample_old.txt")
	sampleNew = filepath.Join("..", "testdata", "sample_new.txt")
)

// diffkitBin returns the path to the compiled diffkit binary.
func diffkitBin(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(filename), "..")
	bin := filepath.Join(root, "bin", "diffkit")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	if _, err := os.Stat(bin); os.IsNotExist(err) {
		t.Skipf("diffkit binary not found at %s, build it with 'go build -o bin/diffkit .'", bin)
	}
	return bin
}

// run executes diffkit with args and returns stdout, stderr, and exit code.
func run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(diffkitBin(t), args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "DIFFKIT_NO_PROGRESS=1", "NO_COLOR=1")
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
	}
	return stdout.String(), stderr.String(), code
}

// TestAllCommandsExist validates that every command appears in --help.
func TestAllCommandsExist(t *testing.T) {
	commands := []string{"diff", "batch", "watch", "shell", "config", "completion", "version"}

	stdout, _, code := run(t, "", "--help")
	if code != 0 {
		t.Fatalf("diffkit --help exited with code %d", code)
	}
	for _, cmd := range commands {
		if !strings.Contains(stdout, cmd) {
			t.Errorf("command %q not found in diffkit --help output", cmd)
		}
	}
}

// TestDiffSample validates the counts for the bundled fixture pair.
func TestDiffSample(t *testing.T) {
	stdout, _, code := run(t, "", "diff", sampleOld, sampleNew, "--format", "stats")
	if code != 0 {
		t.Fatalf("diffkit diff exited with code %d", code)
	}
	if strings.TrimSpace(stdout) != "2 added, 2 removed, 38 unchanged" {
		t.Errorf("unexpected stats: %s", stdout)
	}
}

// TestDiffIdentical validates diff with identical files.
func TestDiffIdentical(t *testing.T) {
	stdout, _, code := run(t, "", "diff", sampleOld, sampleOld, "--exit-code")
	if code != 0 {
		t.Fatalf("identical files should exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "No changes") {
		t.Errorf("identical diff should report no changes, got: %s", stdout)
	}
}

// TestDiffExitCode validates --exit-code on differing files.
func TestDiffExitCode(t *testing.T) {
	_, stderr, code := run(t, "", "diff", sampleOld, sampleNew, "--exit-code")
	if code != 1 {
		t.Errorf("differing files should exit 1, got %d", code)
	}
	if stderr != "" {
		t.Errorf("--exit-code should not print an error, got: %s", stderr)
	}
}

// TestDiffStdin validates reading one side from stdin.
func TestDiffStdin(t *testing.T) {
	data, err := os.ReadFile(sampleOld)
	if err != nil {
		t.Fatal(err)
	}
	stdout, _, code := run(t, string(data), "diff", "-", sampleOld, "-f", "stats")
	if code != 0 {
		t.Fatalf("diffkit diff - exited with code %d", code)
	}
	if !strings.HasPrefix(stdout, "0 added, 0 removed") {
		t.Errorf("unexpected stats: %s", stdout)
	}
}

// TestDiffJSON validates JSON output structure.
func TestDiffJSON(t *testing.T) {
	stdout, _, code := run(t, "", "diff", sampleOld, sampleNew, "--json")
	if code != 0 {
		t.Fatal("diffkit diff --json should exit 0")
	}
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("--json output is not valid JSON: %v\nOutput: %s", err, stdout)
	}
	if result["ok"] != true {
		t.Errorf("expected ok=true, got %v", result["ok"])
	}
}

// TestDiffMissingFile validates the user error exit code.
func TestDiffMissingFile(t *testing.T) {
	_, stderr, code := run(t, "", "diff", sampleOld, "does-not-exist.txt")
	if code != 1 {
		t.Errorf("missing file should exit 1, got %d", code)
	}
	if !strings.HasPrefix(stderr, "Error: ") {
		t.Errorf("stderr should carry the error, got: %s", stderr)
	}
}

// TestDiffXLSX validates the Excel export.
func TestDiffXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "diff.xlsx")
	_, _, code := run(t, "", "diff", sampleOld, sampleNew, "--xlsx", out, "-f", "stats")
	if code != 0 {
		t.Fatalf("diffkit diff --xlsx exited with code %d", code)
	}
	if _, err := os.Stat(out); os.IsNotExist(err) {
		t.Fatal("workbook was not created")
	}
}

// TestBatchDirs validates directory batch mode.
func TestBatchDirs(t *testing.T) {
	tmp := t.TempDir()
	for _, side := range []string{"old", "new"} {
		if err := os.MkdirAll(filepath.Join(tmp, side), 0755); err != nil {
			t.Fatal(err)
		}
	}
	os.WriteFile(filepath.Join(tmp, "old", "a.txt"), []byte("x\ny"), 0644)
	os.WriteFile(filepath.Join(tmp, "new", "a.txt"), []byte("x\nz"), 0644)

	stdout, _, code := run(t, "", "batch", filepath.Join(tmp, "old"), filepath.Join(tmp, "new"))
	if code != 0 {
		t.Fatalf("diffkit batch exited with code %d", code)
	}
	if !strings.Contains(stdout, "1 changed") {
		t.Errorf("unexpected batch output: %s", stdout)
	}
}

// TestConfigPath validates config path uses the home directory.
func TestConfigPath(t *testing.T) {
	stdout, _, code := run(t, "", "config", "path")
	if code != 0 {
		t.Fatal("diffkit config path should exit 0")
	}
	if !strings.Contains(stdout, ".diffkit") {
		t.Errorf("unexpected config path: %s", stdout)
	}
}

// TestShellEval validates a one-shot shell command.
func TestShellEval(t *testing.T) {
	stdout, _, code := run(t, "", "shell", "--eval", "version")
	if code != 0 {
		t.Fatal("diffkit shell --eval should exit 0")
	}
	if !strings.Contains(stdout, "diffkit") {
		t.Errorf("unexpected shell output: %s", stdout)
	}
}

// TestVersionOutput validates version command format.
func TestVersionOutput(t *testing.T) {
	stdout, _, code := run(t, "", "version")
	if code != 0 {
		t.Fatal("diffkit version should exit 0")
	}
	if !strings.HasPrefix(stdout, "diffkit ") {
		t.Errorf("version output should start with 'diffkit', got: %s", stdout)
	}
}

// TestCompletionBash validates completion generation.
func TestCompletionBash(t *testing.T) {
	stdout, _, code := run(t, "", "completion", "bash")
	if code != 0 {
		t.Fatal("diffkit completion bash should exit 0")
	}
	if !strings.Contains(stdout, "diffkit") {
		t.Error("bash completion should mention diffkit")
	}
}
