package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"storyboardgen/internal/storyboard"
)

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// LocalStorage writes exported storyboards (script.json plus one PNG per
// scene) into per-board directories under the output dir. Export is an
// output artifact for the user; nothing is ever read back.
type LocalStorage struct {
	outputDir string
}

func NewLocalStorage(outputDir string) *LocalStorage {
	return &LocalStorage{outputDir: outputDir}
}

func (s *LocalStorage) EnsureDirectories() error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// SaveStoryboard writes the script and its images into a fresh directory
// named after the timestamp and title, and returns that directory.
func (s *LocalStorage) SaveStoryboard(script *storyboard.Script, images [][]byte) (string, error) {
	dir := filepath.Join(s.outputDir, boardDirName(script.Title, time.Now()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create board directory: %w", err)
	}

	data, err := json.MarshalIndent(script, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal script: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "script.json"), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write script: %w", err)
	}

	for i, img := range images {
		if err := s.SaveSceneImage(dir, i+1, img); err != nil {
			return "", err
		}
	}

	return dir, nil
}

// SaveSceneImage overwrites a single scene's image in an existing board
// directory. sceneNum is 1-based.
func (s *LocalStorage) SaveSceneImage(dir string, sceneNum int, img []byte) error {
	path := filepath.Join(dir, SceneImageName(sceneNum))
	if err := os.WriteFile(path, img, 0644); err != nil {
		return fmt.Errorf("failed to write scene image %d: %w", sceneNum, err)
	}
	return nil
}

// SceneImageName returns the file name for a 1-based scene number.
func SceneImageName(sceneNum int) string {
	return fmt.Sprintf("scene_%d.png", sceneNum)
}

func boardDirName(title string, now time.Time) string {
	sanitized := sanitizeForPath(title)
	if sanitized == "" {
		sanitized = "untitled"
	}
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	return fmt.Sprintf("%s_%s", now.Format("20060102_150405"), sanitized)
}

func sanitizeForPath(s string) string {
	s = strings.ToLower(s)
	s = sanitizeRegex.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
