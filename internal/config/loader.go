package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
type Config struct {
	Server  ServerConfig `json:"server" yaml:"server" toml:"server" envPrefix:"SERVER_"`
	Log     LogConfig    `json:"log" yaml:"log" toml:"log" envPrefix:"LOG_"`
	Model   ModelConfig  `json:"model" yaml:"model" toml:"model" envPrefix:"MODEL_"`
	Reply   PromptConfig `json:"reply" yaml:"reply" toml:"reply" envPrefix:"REPLY_"`
	Summary PromptConfig `json:"summary" yaml:"summary" toml:"summary" envPrefix:"SUMMARY_"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr                string   `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	CORSOrigins         []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"CORS_ORIGINS"`
	MaxBodyBytes        int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	ReadTimeoutSeconds  int      `json:"read_timeout_seconds" yaml:"read_timeout_seconds" toml:"read_timeout_seconds" env:"READ_TIMEOUT_SECONDS"`
	WriteTimeoutSeconds int      `json:"write_timeout_seconds" yaml:"write_timeout_seconds" toml:"write_timeout_seconds" env:"WRITE_TIMEOUT_SECONDS"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level" env:"LEVEL"`
	Format string `json:"format" yaml:"format" toml:"format" env:"FORMAT"`
}

// ModelConfig selects the inference backend and the pretrained model it serves.
type ModelConfig struct {
	// Backend is one of hf, llama-server, openai, llama.
	Backend  string `json:"backend" yaml:"backend" toml:"backend" env:"BACKEND"`
	ID       string `json:"id" yaml:"id" toml:"id" env:"ID"`
	CacheDir string `json:"cache_dir" yaml:"cache_dir" toml:"cache_dir" env:"CACHE_DIR"`
	// Device is auto, cpu or cuda.
	Device  string `json:"device" yaml:"device" toml:"device" env:"DEVICE"`
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url" env:"BASE_URL"`
	APIKey  string `json:"api_key" yaml:"api_key" toml:"api_key" env:"API_KEY"`
	// Source is where the llama backend fetches weights missing from CacheDir
	// (http(s):// or s3://bucket/key).
	Source string `json:"source" yaml:"source" toml:"source" env:"SOURCE"`
	// SourceToken authenticates https Source downloads. APIKey is never sent there.
	SourceToken           string `json:"source_token" yaml:"source_token" toml:"source_token" env:"SOURCE_TOKEN"`
	S3Endpoint            string `json:"s3_endpoint" yaml:"s3_endpoint" toml:"s3_endpoint" env:"S3_ENDPOINT"`
	S3AccessKey           string `json:"s3_access_key" yaml:"s3_access_key" toml:"s3_access_key" env:"S3_ACCESS_KEY"`
	S3SecretKey           string `json:"s3_secret_key" yaml:"s3_secret_key" toml:"s3_secret_key" env:"S3_SECRET_KEY"`
	S3UseSSL              bool   `json:"s3_use_ssl" yaml:"s3_use_ssl" toml:"s3_use_ssl" env:"S3_USE_SSL"`
	Tokenizer             string `json:"tokenizer" yaml:"tokenizer" toml:"tokenizer" env:"TOKENIZER"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds" toml:"request_timeout_seconds" env:"REQUEST_TIMEOUT_SECONDS"`
	ConnectTimeoutSeconds int    `json:"connect_timeout_seconds" yaml:"connect_timeout_seconds" toml:"connect_timeout_seconds" env:"CONNECT_TIMEOUT_SECONDS"`
	// MaxWaitSeconds bounds how long a request waits for the model; 0 waits indefinitely.
	MaxWaitSeconds int `json:"max_wait_seconds" yaml:"max_wait_seconds" toml:"max_wait_seconds" env:"MAX_WAIT_SECONDS"`
	CtxSize        int `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size" env:"CTX_SIZE"`
	Threads        int `json:"threads" yaml:"threads" toml:"threads" env:"THREADS"`
	GPULayers      int `json:"gpu_layers" yaml:"gpu_layers" toml:"gpu_layers" env:"GPU_LAYERS"`
}

// PromptConfig overrides a task prompt. Empty means the built-in template.
type PromptConfig struct {
	PromptTemplate string `json:"prompt_template" yaml:"prompt_template" toml:"prompt_template" env:"PROMPT_TEMPLATE"`
}

// EnvPrefix namespaces all environment overrides.
const EnvPrefix = "MAILGEN_"

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:                "0.0.0.0:5001",
			CORSOrigins:         []string{"*"},
			MaxBodyBytes:        1 << 20,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 0,
		},
		Log: LogConfig{Level: "debug", Format: "json"},
		Model: ModelConfig{
			Backend:               "hf",
			ID:                    "google/flan-t5-base",
			CacheDir:              "./model_cache",
			Device:                "auto",
			BaseURL:               "https://api-inference.huggingface.co",
			Tokenizer:             "cl100k_base",
			RequestTimeoutSeconds: 300,
			ConnectTimeoutSeconds: 10,
			CtxSize:               2048,
			Threads:               4,
		},
	}
}

// Load builds a Config from defaults, an optional file and MAILGEN_* environment variables.
// Supported file extensions: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("env overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr cannot be empty")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes cannot be negative")
	}
	switch c.Model.Backend {
	case "hf", "llama-server", "openai", "llama":
	default:
		return fmt.Errorf("model.backend %q is not one of hf|llama-server|openai|llama", c.Model.Backend)
	}
	switch c.Model.Device {
	case "auto", "cpu", "cuda":
	default:
		return fmt.Errorf("model.device %q is not one of auto|cpu|cuda", c.Model.Device)
	}
	if strings.TrimSpace(c.Model.ID) == "" {
		return errors.New("model.id cannot be empty")
	}
	if c.Model.Backend != "llama" && strings.TrimSpace(c.Model.BaseURL) == "" {
		return errors.New("model.base_url cannot be empty for remote backends")
	}
	if c.Model.MaxWaitSeconds < 0 || c.Model.RequestTimeoutSeconds < 0 || c.Model.ConnectTimeoutSeconds < 0 {
		return errors.New("model timeouts cannot be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json|console", c.Log.Format)
	}
	return nil
}
