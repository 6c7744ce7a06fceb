package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected Default() for a missing file, got %+v", cfg)
	}
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sansscript.yaml")
	content := "prompt: \"ss> \"\nprefer_diacritic: true\ninclude_paths:\n  - ./lib\n  - ./vendor\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "ss> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "ss> ")
	}
	if !cfg.PreferDiacritic {
		t.Error("expected PreferDiacritic to be true")
	}
	if len(cfg.IncludePaths) != 2 || cfg.IncludePaths[0] != "./lib" {
		t.Errorf("IncludePaths = %v", cfg.IncludePaths)
	}
}

func TestLoadFallsBackToDefaultPromptWhenOmitted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sansscript.yaml")
	if err := os.WriteFile(path, []byte("prefer_diacritic: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "sansscript> " {
		t.Errorf("expected the default prompt when unset, got %q", cfg.Prompt)
	}
}
