package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

const defaultScriptTemplate = `You are a professional short-video scriptwriter.
Create a 30-second video script for: "{{.Idea}}".
Tone: {{.Tone}}.
Output ONLY a valid JSON object - no markdown, no code fences, no text before or after.
Use this exact structure:
{
  "title": "string",
  "scenes": [
    {
      "scene_num": 1,
      "visual_description": "detailed visual: characters, setting, action, mood",
      "voiceover": "short narrator line",
      "dialogue": "character line or empty string"
    }
  ]
}
Use exactly {{.SceneCount}} scenes. Be vivid and specific. Do not add explanations.`

const defaultImageTemplate = `{{.Description}}, {{.Style}} style, bright colors, clean background, 16:9 aspect ratio, high quality`

type Prompts struct {
	Script ScriptPrompts `yaml:"script"`
	Image  ImagePrompts  `yaml:"image"`
}

type ScriptPrompts struct {
	Storyboard string `yaml:"storyboard"`
}

type ImagePrompts struct {
	Scene string `yaml:"scene"`
}

type ScriptParams struct {
	Idea       string
	Tone       string
	SceneCount int
}

type ImageParams struct {
	Description string
	Style       string
}

// Default returns the built-in templates.
func Default() *Prompts {
	return &Prompts{
		Script: ScriptPrompts{Storyboard: defaultScriptTemplate},
		Image:  ImagePrompts{Scene: defaultImageTemplate},
	}
}

// Load reads prompts.yaml from the working directory when present, filling
// any template left unset with the built-in default.
func Load() (*Prompts, error) {
	return LoadFrom(defaultPromptsPath)
}

func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	if p.Script.Storyboard == "" {
		p.Script.Storyboard = defaultScriptTemplate
	}
	if p.Image.Scene == "" {
		p.Image.Scene = defaultImageTemplate
	}

	return &p, nil
}

// RenderScript builds the model instruction for a storyboard request. Idea
// and tone are sanitized before interpolation.
func (p *Prompts) RenderScript(params ScriptParams) (string, error) {
	params.Idea = Sanitize(params.Idea)
	params.Tone = Sanitize(params.Tone)
	return render(p.Script.Storyboard, params)
}

// RenderImage composes the full text-to-image prompt for one scene.
func (p *Prompts) RenderImage(params ImageParams) (string, error) {
	return render(p.Image.Scene, params)
}

// Sanitize replaces double quotes with single quotes and newlines with
// spaces so interpolated values stay on one line inside the template.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
