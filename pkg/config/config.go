package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "config.yaml"
	defaultGroqModel  = "llama-3.3-70b-versatile"
	defaultMaxTokens  = 1200
	defaultImageModel = "stabilityai/stable-diffusion-xl-base-1.0"
	defaultImageStyle = "cartoon"
	defaultImageSteps = 25
	defaultOutputDir  = "./output"
	defaultPort       = "8000"

	defaultTemperature = 0.7

	// DefaultTone is applied when an API request omits the tone.
	DefaultTone = "нейтральный"
)

// Tones are the tone choices offered by the interactive surface.
var Tones = []string{
	"юмористический",
	"трогательный",
	"образовательный",
	"динамичный",
	DefaultTone,
}

type Config struct {
	GroqAPIKey string
	HFToken    string
	GCSBucket  string
	GCPProject string

	Groq   GroqConfig   `yaml:"groq"`
	Image  ImageConfig  `yaml:"image"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
}

type GroqConfig struct {
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type ImageConfig struct {
	Model string `yaml:"model"`
	Style string `yaml:"style"`
	Steps int    `yaml:"steps"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// Load reads .env, the process environment, an optional config.yaml, and
// applies defaults. When a credential is absent from the environment and a
// *_SECRET variable names a Secret Manager version, the value is fetched
// from there; resolution failures degrade to a warning so the API surface
// can still start and report missing credentials in its health check.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		HFToken:    os.Getenv("HF_TOKEN"),
		GCSBucket:  os.Getenv("GCS_BUCKET"),
		GCPProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	resolveSecrets(ctx, cfg)
	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	return cfg, nil
}

// RequireCredentials is the startup gate for the interactive surface, which
// refuses to run without both provider credentials.
func (c *Config) RequireCredentials() error {
	switch {
	case c.GroqAPIKey == "" && c.HFToken == "":
		return errors.New("GROQ_API_KEY and HF_TOKEN are not set, check your .env file")
	case c.GroqAPIKey == "":
		return errors.New("GROQ_API_KEY is not set, check your .env file")
	case c.HFToken == "":
		return errors.New("HF_TOKEN is not set, check your .env file")
	}
	return nil
}

func resolveSecrets(ctx context.Context, cfg *Config) {
	secrets := []struct {
		target *string
		envVar string
	}{
		{&cfg.GroqAPIKey, "GROQ_API_KEY_SECRET"},
		{&cfg.HFToken, "HF_TOKEN_SECRET"},
	}

	for _, s := range secrets {
		name := os.Getenv(s.envVar)
		if *s.target != "" || name == "" {
			continue
		}
		value, err := accessSecret(ctx, name)
		if err != nil {
			slog.Warn("Failed to resolve secret", "secret", name, "error", err)
			continue
		}
		*s.target = value
	}
}

func accessSecret(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("access secret version: %w", err)
	}

	return string(resp.GetPayload().GetData()), nil
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Debug("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = defaultGroqModel
	}
	if cfg.Groq.Temperature == 0 {
		cfg.Groq.Temperature = defaultTemperature
	}
	if cfg.Groq.MaxTokens == 0 {
		cfg.Groq.MaxTokens = defaultMaxTokens
	}
	if cfg.Image.Model == "" {
		cfg.Image.Model = defaultImageModel
	}
	if cfg.Image.Style == "" {
		cfg.Image.Style = defaultImageStyle
	}
	if cfg.Image.Steps == 0 {
		cfg.Image.Steps = defaultImageSteps
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}
}
