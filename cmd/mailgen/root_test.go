package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mailgen/internal/config"
)

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "email.txt")
	if err := os.WriteFile(p, []byte("from file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := readInput(nil, p, nil); err != nil || got != "from file" {
		t.Fatalf("file: %q %v", got, err)
	}
	if got, _ := readInput(strings.NewReader("stdin"), "", []string{"a", "b"}); got != "a b" {
		t.Fatalf("args: %q", got)
	}
	if got, _ := readInput(strings.NewReader("stdin"), "-", []string{"ignored"}); got != "stdin" {
		t.Fatalf("stdin: %q", got)
	}
	if _, err := readInput(nil, "", nil); err == nil {
		t.Fatalf("expected error without input")
	}
	if _, err := readInput(nil, filepath.Join(dir, "missing"), nil); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewAdapter(t *testing.T) {
	cfg := config.Defaults().Model
	for _, b := range []string{"hf", "llama-server", "openai", "llama"} {
		cfg.Backend = b
		if a, err := newAdapter(cfg, zerolog.Nop()); err != nil || a == nil {
			t.Fatalf("%s: %v", b, err)
		}
	}
	cfg.Backend = "bogus"
	if _, err := newAdapter(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if seconds(3) != 3*time.Second {
		t.Fatalf("seconds")
	}
}

func TestOneShot_ValidationBeforeLoad(t *testing.T) {
	t.Setenv("MAILGEN_MODEL_CACHE_DIR", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"reply", "too", "short"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "input too short") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRoot_BadConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected config error")
	}
}
