package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Server.Addr != "0.0.0.0:5001" || cfg.Model.ID != "google/flan-t5-base" || cfg.Model.Backend != "hf" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "server:\n  addr: :9999\nmodel:\n  backend: llama\n  id: flan.gguf\n  cache_dir: /tmp/mc\n  device: cpu\nlog:\n  level: info\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Server.Addr != ":9999" || cfg.Model.Backend != "llama" || cfg.Model.ID != "flan.gguf" || cfg.Model.CacheDir != "/tmp/mc" || cfg.Model.Device != "cpu" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	// untouched sections keep their defaults
	if cfg.Model.RequestTimeoutSeconds != 300 || cfg.Log.Format != "json" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"server":{"addr":":7070"},"model":{"backend":"llama-server","base_url":"http://127.0.0.1:8081","id":"m2"}}`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Server.Addr != ":7070" || cfg.Model.Backend != "llama-server" || cfg.Model.BaseURL != "http://127.0.0.1:8081" || cfg.Model.ID != "m2" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "[server]\naddr=\":8081\"\n[model]\nbackend=\"openai\"\nid=\"m3\"\nbase_url=\"http://x/v1\"\n[reply]\nprompt_template=\"Reply to: {{.Email}}\"\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Server.Addr != ":8081" || cfg.Model.Backend != "openai" || cfg.Model.ID != "m3" || cfg.Reply.PromptTemplate != "Reply to: {{.Email}}" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MAILGEN_SERVER_ADDR", ":6000")
	t.Setenv("MAILGEN_MODEL_DEVICE", "cuda")
	t.Setenv("MAILGEN_SERVER_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("MAILGEN_MODEL_MAX_WAIT_SECONDS", "7")
	t.Setenv("MAILGEN_MODEL_SOURCE_TOKEN", "hf_x")
	cfg, err := Load("")
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Server.Addr != ":6000" || cfg.Model.Device != "cuda" || cfg.Model.MaxWaitSeconds != 7 || cfg.Model.SourceToken != "hf_x" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors origins=%v", cfg.Server.CORSOrigins)
	}
}

func TestLoadErrors(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil { t.Fatalf("expected unsupported extension error") }
}
