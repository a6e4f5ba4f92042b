package config

import (
	"testing"
	"time"
)

func baseConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:         "gemini",
			Model:            "gemini-2.0-flash",
			Timeout:          60 * time.Second,
			APIKey:           "global-key",
			MaxRetries:       3,
			Temperature:      0.3,
			UseSystemPrompts: true,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8000",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      1024 * 1024,
		},
		Storage: StorageConfig{
			DatabasePath: "shortlistai.db",
			UploadDir:    "uploads",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no api key is still valid", func(c *Config) { c.AI.APIKey = "" }, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"missing database path", func(c *Config) { c.Storage.DatabasePath = "" }, true},
		{"missing upload dir", func(c *Config) { c.Storage.UploadDir = "" }, true},
		{"zero max file size", func(c *Config) { c.App.MaxFileSize = 0 }, true},
		{"bad default format", func(c *Config) { c.App.DefaultFormat = "xml" }, true},
		{"negative ai timeout", func(c *Config) { c.AI.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr bool
	}{
		{"disabled", TLSConfig{Mode: "disabled"}, false},
		{"invalid mode", TLSConfig{Mode: "sometimes"}, true},
		{"server with files", TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem"}, false},
		{"server with content", TLSConfig{Mode: "server", CertContent: "CERT", KeyContent: "KEY"}, false},
		{"server missing key", TLSConfig{Mode: "server", CertFile: "cert.pem"}, true},
		{"server file and content", TLSConfig{Mode: "server", CertFile: "cert.pem", CertContent: "CERT", KeyFile: "key.pem"}, true},
		{"mutual with ca", TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem", CAFile: "ca.pem"}, false},
		{"mutual missing ca", TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem"}, true},
		{"mutual bad auth policy", TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem", CAFile: "ca.pem", ClientAuthPolicy: "maybe"}, true},
		{"bad min version", TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem", MinVersion: "1.1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Server.TLS = tt.tls
			err := cfg.ValidateTLSConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTLSConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetAnalyzeConfigFallbacks(t *testing.T) {
	cfg := baseConfig()
	got := cfg.GetAnalyzeConfig()

	if got.Provider != "gemini" {
		t.Errorf("Provider = %q, want global fallback", got.Provider)
	}
	if got.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q, want global fallback", got.Model)
	}
	if got.APIKey != "global-key" {
		t.Errorf("APIKey = %q, want global fallback", got.APIKey)
	}
	if got.Timeout == nil || *got.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want global fallback", got.Timeout)
	}
	if got.Temperature == nil || *got.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want global fallback", got.Temperature)
	}
	if got.UseSystemPrompts == nil || !*got.UseSystemPrompts {
		t.Errorf("UseSystemPrompts = %v, want global fallback true", got.UseSystemPrompts)
	}
}

func TestGetClassifyConfigOverrides(t *testing.T) {
	cfg := baseConfig()
	classifyTimeout := 30 * time.Second
	classifyTemp := float32(0)
	classifyRetries := 1
	cfg.AI.Classify = OperationAIConfig{
		Model:       "gemini-2.0-flash-lite",
		Timeout:     &classifyTimeout,
		Temperature: &classifyTemp,
		MaxRetries:  &classifyRetries,
	}

	got := cfg.GetClassifyConfig()
	if got.Model != "gemini-2.0-flash-lite" {
		t.Errorf("Model = %q, want operation override", got.Model)
	}
	if *got.Timeout != classifyTimeout {
		t.Errorf("Timeout = %v, want operation override", *got.Timeout)
	}
	if *got.Temperature != 0 {
		t.Errorf("Temperature = %v, want operation override 0", *got.Temperature)
	}
	if *got.MaxRetries != 1 {
		t.Errorf("MaxRetries = %v, want operation override 1", *got.MaxRetries)
	}
	if got.APIKey != "global-key" {
		t.Errorf("APIKey = %q, want global fallback", got.APIKey)
	}
}

func TestGetClassifyConfigPromptFallback(t *testing.T) {
	cfg := baseConfig()
	cfg.AI.CustomPrompts.SystemPrompts.ClassifyJD = "global classify prompt"

	got := cfg.GetClassifyConfig()
	if got.CustomPrompts.SystemPrompts.ClassifyJD != "global classify prompt" {
		t.Errorf("ClassifyJD prompt = %q, want global fallback", got.CustomPrompts.SystemPrompts.ClassifyJD)
	}
}
