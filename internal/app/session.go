package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"storyboardgen/internal/imagegen"
	"storyboardgen/internal/storyboard"
)

const imageParallelism = 2

// Session holds one in-progress storyboard: the current script and one
// image per scene. The board is replaced atomically on regeneration, so
// a reader never observes a script from one run paired with images from
// another.
type Session struct {
	service *Service

	mu     sync.Mutex
	script *storyboard.Script
	images [][]byte
}

// GenerateStatus reports how much of a generation ran degraded. A
// degraded run still yields a complete board.
type GenerateStatus struct {
	ScriptFallback bool
	ScriptErr      error
	ImageFailures  int
}

func NewSession(service *Service) *Session {
	return &Session{service: service}
}

// Generate produces a complete board for the idea and installs it as the
// current one. Script failures of any kind degrade to the fallback
// script; per-scene image failures degrade to the placeholder image. The
// previous board, if any, is discarded wholesale.
func (s *Session) Generate(ctx context.Context, idea, tone string) (GenerateStatus, error) {
	var status GenerateStatus

	script, err := s.service.LLM().GenerateScript(ctx, idea, tone)
	if err != nil {
		slog.Warn("Script generation failed, using fallback", "error", err)
		script = storyboard.Fallback(idea, tone, err)
		status.ScriptErr = err
	}
	if storyboard.IsFallback(script) {
		status.ScriptFallback = true
	}

	images, failures := s.generateImages(ctx, script)
	status.ImageFailures = failures

	s.mu.Lock()
	s.script = script
	s.images = images
	s.mu.Unlock()

	return status, nil
}

// RegenerateImage regenerates the image for one scene (0-based index)
// and swaps it into the current board. The other scenes are untouched.
func (s *Session) RegenerateImage(ctx context.Context, index int) error {
	s.mu.Lock()
	if s.script == nil || index < 0 || index >= len(s.script.Scenes) {
		s.mu.Unlock()
		return fmt.Errorf("no scene at index %d", index)
	}
	description := s.script.Scenes[index].VisualDescription
	s.mu.Unlock()

	img, err := s.generateSceneImage(ctx, index, description)

	s.mu.Lock()
	if index < len(s.images) {
		s.images[index] = img
	}
	s.mu.Unlock()

	return err
}

// Snapshot returns copies of the current board, or nil if nothing has
// been generated yet.
func (s *Session) Snapshot() (*storyboard.Script, [][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.script == nil {
		return nil, nil
	}

	script := *s.script
	script.Scenes = append([]storyboard.Scene(nil), s.script.Scenes...)
	images := make([][]byte, len(s.images))
	for i, img := range s.images {
		images[i] = append([]byte(nil), img...)
	}
	return &script, images
}

func (s *Session) generateImages(ctx context.Context, script *storyboard.Script) ([][]byte, int) {
	images := make([][]byte, len(script.Scenes))

	type result struct {
		index int
		data  []byte
		err   error
	}

	results := make(chan result, len(script.Scenes))

	semaphore := make(chan struct{}, imageParallelism)

	for i, scene := range script.Scenes {
		go func(index int, description string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			slog.Info("Generating scene image", "scene", index+1, "total", len(script.Scenes))
			data, err := s.generateSceneImage(ctx, index, description)
			results <- result{index: index, data: data, err: err}
		}(i, scene.VisualDescription)
	}

	failures := 0
	for range script.Scenes {
		r := <-results
		images[r.index] = r.data
		if r.err != nil {
			failures++
		}
	}

	return images, failures
}

// generateSceneImage always returns a usable PNG: the generated image on
// success, the placeholder otherwise. The error reports what went wrong.
func (s *Session) generateSceneImage(ctx context.Context, index int, description string) ([]byte, error) {
	gen := s.service.Images()
	if gen == nil {
		return imagegen.Placeholder(), fmt.Errorf("image generator not configured")
	}

	data, err := gen.Generate(ctx, description, s.service.Config().Image.Style)
	if err != nil {
		slog.Warn("Image generation failed, using placeholder", "scene", index+1, "error", err)
		return imagegen.Placeholder(), err
	}
	return data, nil
}
