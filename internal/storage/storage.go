package storage

import "context"

// Artifact is one file of an exported storyboard.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Publisher copies an exported storyboard to a remote destination.
type Publisher interface {
	Publish(ctx context.Context, boardID string, artifacts []Artifact) error
}

// BoardArtifacts assembles the upload set for a saved storyboard: the
// script JSON followed by one PNG per scene.
func BoardArtifacts(scriptJSON []byte, images [][]byte) []Artifact {
	artifacts := make([]Artifact, 0, len(images)+1)
	artifacts = append(artifacts, Artifact{
		Name:        "script.json",
		ContentType: "application/json",
		Data:        scriptJSON,
	})
	for i, img := range images {
		artifacts = append(artifacts, Artifact{
			Name:        SceneImageName(i + 1),
			ContentType: "image/png",
			Data:        img,
		})
	}
	return artifacts
}
