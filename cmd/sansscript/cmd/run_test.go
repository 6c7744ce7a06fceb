package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), runErr
}

func TestRunExecutesFileAndPrintsThroughMudrayati(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.ss")
	if err := os.WriteFile(path, []byte(`mudrayati("namaste")`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "\"namaste\"") {
		t.Errorf("expected printed output to contain the string repr, got %q", output)
	}
}

func TestRunVerboseFlagPrintsResultRepr(t *testing.T) {
	oldEval, oldVerbose := evalExpr, verbose
	defer func() { evalExpr, verbose = oldEval, oldVerbose }()
	evalExpr = "2 + 3"
	verbose = true

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	if err != nil {
		t.Fatalf("runScript failed: %v", err)
	}
	if !strings.Contains(output, "5") {
		t.Errorf("expected verbose output to contain 5, got %q", output)
	}
}

func TestRunWithoutFileOrEvalReturnsError(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = ""

	if err := runScript(runCmd, nil); err == nil {
		t.Error("expected an error when neither a file nor -e is given")
	}
}

func TestRunSyntaxErrorReturnsError(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = "charah = 5"

	_, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	if err == nil {
		t.Error("expected an execution error for invalid syntax")
	}
}

func TestRunTransliteratesDevanagariSource(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = "यदि सत्य: 1 उत: 2"

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, nil)
	})
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, output)
	}
}

// TestRunSnapshotsListAndStringOutput pins the printed repr of a small
// program against a golden snapshot, the way the teacher's fixture harness
// snapshots interpreter output.
func TestRunSnapshotsListAndStringOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.ss")
	src := `charah names = ["rama", "sita"]
mudrayati(names)
mudrayati("namaste, " + names / 0)`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, output)
	}
	snaps.MatchSnapshot(t, output)
}
