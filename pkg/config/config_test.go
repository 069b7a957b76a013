package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func chtmp(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(orig) })
	_ = os.Chdir(tmp)
}

func TestLoadDefaults(t *testing.T) {
	chtmp(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Groq.Model != defaultGroqModel {
		t.Errorf("Groq.Model = %q, want %q", cfg.Groq.Model, defaultGroqModel)
	}
	if cfg.Groq.Temperature != defaultTemperature {
		t.Errorf("Groq.Temperature = %v, want %v", cfg.Groq.Temperature, defaultTemperature)
	}
	if cfg.Groq.MaxTokens != defaultMaxTokens {
		t.Errorf("Groq.MaxTokens = %d, want %d", cfg.Groq.MaxTokens, defaultMaxTokens)
	}
	if cfg.Image.Model != defaultImageModel {
		t.Errorf("Image.Model = %q, want %q", cfg.Image.Model, defaultImageModel)
	}
	if cfg.Image.Style != defaultImageStyle {
		t.Errorf("Image.Style = %q, want %q", cfg.Image.Style, defaultImageStyle)
	}
	if cfg.Image.Steps != defaultImageSteps {
		t.Errorf("Image.Steps = %d, want %d", cfg.Image.Steps, defaultImageSteps)
	}
	if cfg.Server.Port != defaultPort {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, defaultPort)
	}
}

func TestLoadFromYAML(t *testing.T) {
	chtmp(t)

	yaml := `
groq:
  model: test-model
  temperature: 0.5
image:
  style: watercolor
  steps: 10
output:
  dir: ./boards
`
	_ = os.WriteFile("config.yaml", []byte(yaml), 0644)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Groq.Model != "test-model" {
		t.Errorf("Groq.Model = %q, want test-model", cfg.Groq.Model)
	}
	if cfg.Groq.Temperature != 0.5 {
		t.Errorf("Groq.Temperature = %v, want 0.5", cfg.Groq.Temperature)
	}
	if cfg.Image.Style != "watercolor" {
		t.Errorf("Image.Style = %q, want watercolor", cfg.Image.Style)
	}
	if cfg.Image.Steps != 10 {
		t.Errorf("Image.Steps = %d, want 10", cfg.Image.Steps)
	}
	if cfg.Output.Dir != "./boards" {
		t.Errorf("Output.Dir = %q, want ./boards", cfg.Output.Dir)
	}
	if cfg.Groq.MaxTokens != defaultMaxTokens {
		t.Errorf("Groq.MaxTokens = %d, want default %d", cfg.Groq.MaxTokens, defaultMaxTokens)
	}
}

func TestLoadFromEnv(t *testing.T) {
	chtmp(t)

	t.Setenv("GROQ_API_KEY", "test-groq")
	t.Setenv("HF_TOKEN", "test-hf")
	t.Setenv("GCS_BUCKET", "test-bucket")
	t.Setenv("PORT", "9000")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.GroqAPIKey != "test-groq" {
		t.Errorf("GroqAPIKey = %q, want test-groq", cfg.GroqAPIKey)
	}
	if cfg.HFToken != "test-hf" {
		t.Errorf("HFToken = %q, want test-hf", cfg.HFToken)
	}
	if cfg.GCSBucket != "test-bucket" {
		t.Errorf("GCSBucket = %q, want test-bucket", cfg.GCSBucket)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("Server.Port = %q, want 9000", cfg.Server.Port)
	}
}

func TestRequireCredentials(t *testing.T) {
	tests := []struct {
		name    string
		groq    string
		hf      string
		wantErr bool
	}{
		{name: "bothSet", groq: "g", hf: "h", wantErr: false},
		{name: "missingGroq", groq: "", hf: "h", wantErr: true},
		{name: "missingHF", groq: "g", hf: "", wantErr: true},
		{name: "missingBoth", groq: "", hf: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{GroqAPIKey: tt.groq, HFToken: tt.hf}
			err := cfg.RequireCredentials()
			if (err != nil) != tt.wantErr {
				t.Errorf("RequireCredentials() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	chtmp(t)

	wd, _ := os.Getwd()
	_ = os.WriteFile(filepath.Join(wd, ".env"), []byte("HF_TOKEN=from-dotenv\n"), 0644)
	t.Setenv("HF_TOKEN", "")
	_ = os.Unsetenv("HF_TOKEN")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HFToken != "from-dotenv" {
		t.Errorf("HFToken = %q, want from-dotenv", cfg.HFToken)
	}
}
