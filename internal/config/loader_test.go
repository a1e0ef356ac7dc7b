package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-poe-key")

	cfg, err := loadConfig(writeConfigFile(t, "{}\n"))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Sampler.Model != "Claude-3-Opus" {
		t.Errorf("Sampler.Model = %s, want Claude-3-Opus", cfg.Sampler.Model)
	}
	if cfg.Sampler.SleepPeriodically {
		t.Error("Sampler.SleepPeriodically = true, want false by default")
	}
	if cfg.Sampler.APIKey != "test-poe-key" {
		t.Errorf("Sampler.APIKey = %s, want value from env", cfg.Sampler.APIKey)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %s, want json", cfg.Logging.Format)
	}
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-poe-key")

	path := writeConfigFile(t, `
server:
  port: 9090
sampler:
  model: GPT-4
  sleep_periodically: true
  timeout_seconds: 30
logging:
  level: debug
  format: text
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Sampler.Model != "GPT-4" {
		t.Errorf("Sampler.Model = %s, want GPT-4", cfg.Sampler.Model)
	}
	if !cfg.Sampler.SleepPeriodically {
		t.Error("Sampler.SleepPeriodically = false, want true")
	}
	if cfg.Sampler.TimeoutSeconds != 30 {
		t.Errorf("Sampler.TimeoutSeconds = %d, want 30", cfg.Sampler.TimeoutSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
}

func TestLoadConfig_MissingCredential(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := loadConfig(writeConfigFile(t, "{}\n"))
	if err == nil {
		t.Fatal("loadConfig() expected error for missing credential, got nil")
	}

	if !IsValidationError(err) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	vErr := err.(*ValidationError)
	if !vErr.HasError(EnvAPIKey) {
		t.Errorf("validation errors %v do not mention %s", vErr.Errors, EnvAPIKey)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-poe-key")

	_, err := loadConfig(writeConfigFile(t, "server: [not: a: mapping\n"))
	if err == nil {
		t.Fatal("loadConfig() expected error for malformed file, got nil")
	}
	if !IsConfigError(err) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
}

func TestLoadConfig_CredentialNeverFromFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	// An api_key in YAML must be ignored; only the env var counts.
	path := writeConfigFile(t, `
sampler:
  api_key: sneaky-file-key
`)

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("loadConfig() expected error, got nil: file-based credential was accepted")
	}
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
		field  string
	}{
		{
			name:   "bad port",
			mutate: func(c *Configuration) { c.Server.Port = 0 },
			field:  "server.port",
		},
		{
			name:   "missing model",
			mutate: func(c *Configuration) { c.Sampler.Model = "" },
			field:  "sampler.model",
		},
		{
			name:   "negative timeout",
			mutate: func(c *Configuration) { c.Sampler.TimeoutSeconds = -1 },
			field:  "sampler.timeout_seconds",
		},
		{
			name:   "zero timeout",
			mutate: func(c *Configuration) { c.Sampler.TimeoutSeconds = 0 },
			field:  "sampler.timeout_seconds",
		},
		{
			name:   "bad log level",
			mutate: func(c *Configuration) { c.Logging.Level = "verbose" },
			field:  "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Configuration{
				Server:  ServerConfig{Host: "0.0.0.0", Port: 8080},
				Sampler: SamplerConfig{Model: "GPT-4", APIKey: "k", TimeoutSeconds: 60},
				Logging: LoggingConfig{Level: "info", Format: "json"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			vErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if !vErr.HasError(tt.field) {
				t.Errorf("validation errors %v do not mention %s", vErr.Errors, tt.field)
			}
		})
	}
}
