package app

import (
	"context"

	"storyboardgen/internal/imagegen"
	"storyboardgen/internal/llm"
	"storyboardgen/internal/storage"
	"storyboardgen/pkg/config"
	"storyboardgen/pkg/prompts"
)

// BuildService wires the configured providers together. Providers whose
// credentials are absent are left nil; callers decide how to degrade.
func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	var llmClient llm.Client
	if cfg.GroqAPIKey != "" {
		llmClient, err = llm.NewGroqClient(cfg.GroqAPIKey, p, llm.GroqOptions{
			Model:       cfg.Groq.Model,
			Temperature: cfg.Groq.Temperature,
			MaxTokens:   cfg.Groq.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
	}

	var imageGen imagegen.Generator
	if cfg.HFToken != "" {
		imageGen = imagegen.NewHFClient(cfg.HFToken, p, imagegen.HFOptions{
			Model: cfg.Image.Model,
			Steps: cfg.Image.Steps,
		})
	}

	localStorage := storage.NewLocalStorage(cfg.Output.Dir)
	if err := localStorage.EnsureDirectories(); err != nil {
		return nil, err
	}

	var publisher storage.Publisher
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSStorage(ctx, cfg.GCSBucket, "storyboards")
		if err != nil {
			return nil, err
		}
		publisher = gcs
	}

	return NewService(ServiceOptions{
		Config:    cfg,
		LLM:       llmClient,
		Images:    imageGen,
		Storage:   localStorage,
		Publisher: publisher,
	}), nil
}
