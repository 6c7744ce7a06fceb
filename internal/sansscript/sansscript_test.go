package sansscript

import (
	"strings"
	"testing"
)

// fakeHost is a minimal interp.Host recording what built-ins write to it,
// mirroring internal/interp and internal/builtins's own test doubles.
type fakeHost struct {
	written []string
	inputs  []string
	files   map[string]string
}

func (h *fakeHost) ReadLine() (string, error) {
	if len(h.inputs) == 0 {
		return "", nil
	}
	line := h.inputs[0]
	h.inputs = h.inputs[1:]
	return line, nil
}

func (h *fakeHost) Write(s string) { h.written = append(h.written, s) }
func (h *fakeHost) Clear()         {}

func (h *fakeHost) ReadFile(path string) (string, error) {
	content, ok := h.files[path]
	if !ok {
		return "", errNotFound{path}
	}
	return content, nil
}

type errNotFound struct{ path string }

func (e errNotFound) Error() string { return "no such file: " + e.path }

func TestRunEvaluatesTransliteratedDevanagariSource(t *testing.T) {
	rt := New(&fakeHost{})
	// यदि -> yadi, सत्य -> satya, उत -> uta: the transliteration pre-pass
	// must run before lexing for this Devanagari if/else expression to
	// parse at all.
	val, err := rt.Run("<test>", "यदि सत्य: 1 उत: 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val.String() != "1" {
		t.Errorf("Run() = %v, want 1", val.String())
	}
}

func TestRunResolvesADiacriticBuiltinFromGenuineDevanagariSource(t *testing.T) {
	rt := New(&fakeHost{})
	// परिमाणम् -> parimANam, the diacritic spelling of the `len` built-in
	// (parimanam); a program actually written in Devanagari can only call
	// its own built-ins if this diacritic name is bound, not just the
	// plain ASCII alias.
	val, err := rt.Run("<test>", "परिमाणम्([1, 2, 3])")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val.String() != "3" {
		t.Errorf("Run() = %v, want 3", val.String())
	}
}

func TestRunPassesAsciiSourceThroughUnchanged(t *testing.T) {
	rt := New(&fakeHost{})
	val, err := rt.Run("<test>", "2 + 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val.String() != "5" {
		t.Errorf("Run() = %v, want 5", val.String())
	}
}

func TestRunPersistsGlobalStateAcrossCalls(t *testing.T) {
	rt := New(&fakeHost{})
	if _, err := rt.Run("<test>", "charah x = 41"); err != nil {
		t.Fatalf("unexpected error defining x: %v", err)
	}
	val, err := rt.Run("<test>", "x + 1")
	if err != nil {
		t.Fatalf("unexpected error reading x: %v", err)
	}
	if val.String() != "42" {
		t.Errorf("Run() = %v, want 42", val.String())
	}
}

func TestRunSyntaxErrorDoesNotPanic(t *testing.T) {
	rt := New(&fakeHost{})
	if _, err := rt.Run("<test>", "charah = 5"); err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestRunPrintWritesThroughTheHost(t *testing.T) {
	h := &fakeHost{}
	rt := New(h)
	if _, err := rt.Run("<test>", `mudrayati("hello")`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.written) != 1 || h.written[0] != "\"hello\"" {
		t.Errorf(`host.written = %v, want ["hello"]`, h.written)
	}
}

func TestRunJSONRoundTrip(t *testing.T) {
	rt := New(&fakeHost{})
	val, err := rt.Run("<test>", `json_of(yantravat([1, 2, 3]))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val.String() != "[1, 2, 3]" {
		t.Errorf("round-tripped list = %v, want [1, 2, 3]", val.String())
	}
}

func TestRunJSONParsesObjectIntoPairList(t *testing.T) {
	rt := New(&fakeHost{})
	val, err := rt.Run("<test>", `json_of("{\"a\": 1}")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(val.String(), "\"a\"") {
		t.Errorf("decoded object = %v, want it to contain key \"a\"", val.String())
	}
}

func TestRunDhavayatiLoadsAFileAgainstTheSharedEnvironment(t *testing.T) {
	h := &fakeHost{files: map[string]string{"lib.ss": "charah shared = 99"}}
	rt := New(h)
	if _, err := rt.Run("<test>", `dhavayati("lib.ss")`); err != nil {
		t.Fatalf("unexpected error running dhavayati: %v", err)
	}
	val, err := rt.Run("<test>", "shared")
	if err != nil {
		t.Fatalf("unexpected error reading shared: %v", err)
	}
	if val.String() != "99" {
		t.Errorf("shared = %v, want 99", val.String())
	}
}

func TestNewNativeWiresARealHost(t *testing.T) {
	rt := NewNative()
	if rt.Interpreter() == nil {
		t.Fatal("expected a non-nil Interpreter")
	}
	if rt.Interpreter().Host == nil {
		t.Fatal("expected NewNative to wire a real Host")
	}
}
