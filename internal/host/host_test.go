package host

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestReadLineTrimsTrailingNewline(t *testing.T) {
	h := NewNative(strings.NewReader("hello\nworld\n"), &bytes.Buffer{})

	line, err := h.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "hello" {
		t.Errorf("ReadLine() = %q, want %q", line, "hello")
	}

	line, err = h.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "world" {
		t.Errorf("ReadLine() = %q, want %q", line, "world")
	}
}

func TestReadLineAtEOFWithNoTrailingNewline(t *testing.T) {
	h := NewNative(strings.NewReader("last"), &bytes.Buffer{})
	line, err := h.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "last" {
		t.Errorf("ReadLine() = %q, want %q", line, "last")
	}
}

func TestWriteAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	h := NewNative(strings.NewReader(""), &buf)
	h.Write("hello")
	if buf.String() != "hello\n" {
		t.Errorf("Write output = %q, want %q", buf.String(), "hello\n")
	}
}

func TestClearEmitsAnsiSequence(t *testing.T) {
	var buf bytes.Buffer
	h := NewNative(strings.NewReader(""), &buf)
	h.Clear()
	if buf.String() != "\x1b[2J\x1b[H" {
		t.Errorf("Clear output = %q", buf.String())
	}
}

func TestReadFileReturnsContent(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/script.ss"
	if err := os.WriteFile(path, []byte("charah x = 1"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	h := NewNative(strings.NewReader(""), &bytes.Buffer{})
	content, err := h.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "charah x = 1" {
		t.Errorf("ReadFile() = %q", content)
	}
}

func TestReadFileMissingReturnsError(t *testing.T) {
	h := NewNative(strings.NewReader(""), &bytes.Buffer{})
	if _, err := h.ReadFile("/nonexistent/path.ss"); err == nil {
		t.Fatal("expected an error reading a missing file")
	}
}

func TestReadFileFallsBackToSearchPaths(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/lib.ss", []byte("charah shared = 1"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	h := NewNative(strings.NewReader(""), &bytes.Buffer{})
	h.SetSearchPaths([]string{dir})

	content, err := h.ReadFile("lib.ss")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "charah shared = 1" {
		t.Errorf("ReadFile() = %q", content)
	}
}

func TestReadFileSearchPathsDoNotShadowADirectMatch(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/script.ss"
	if err := os.WriteFile(path, []byte("charah x = 1"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	h := NewNative(strings.NewReader(""), &bytes.Buffer{})
	h.SetSearchPaths([]string{t.TempDir()})

	content, err := h.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "charah x = 1" {
		t.Errorf("ReadFile() = %q", content)
	}
}
