package app

import (
	"storyboardgen/internal/imagegen"
	"storyboardgen/internal/llm"
	"storyboardgen/internal/storage"
	"storyboardgen/pkg/config"
)

type Service struct {
	cfg       *config.Config
	llm       llm.Client
	images    imagegen.Generator
	storage   *storage.LocalStorage
	publisher storage.Publisher
}

type ServiceOptions struct {
	Config    *config.Config
	LLM       llm.Client
	Images    imagegen.Generator
	Storage   *storage.LocalStorage
	Publisher storage.Publisher
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		cfg:       opts.Config,
		llm:       opts.LLM,
		images:    opts.Images,
		storage:   opts.Storage,
		publisher: opts.Publisher,
	}
}

func (s *Service) Config() *config.Config {
	return s.cfg
}

func (s *Service) LLM() llm.Client {
	return s.llm
}

func (s *Service) Images() imagegen.Generator {
	return s.images
}

func (s *Service) Storage() *storage.LocalStorage {
	return s.storage
}

func (s *Service) Publisher() storage.Publisher {
	return s.publisher
}
