package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	p, err := LoadFrom(filepath.Join(t.TempDir(), "prompts.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if p.Script.Storyboard != defaultScriptTemplate {
		t.Error("Script.Storyboard should fall back to the default template")
	}
	if p.Image.Scene != defaultImageTemplate {
		t.Error("Image.Scene should fall back to the default template")
	}
}

func TestLoadFromOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := `
script:
  storyboard: "Write a script about {{.Idea}} in a {{.Tone}} tone with {{.SceneCount}} scenes"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if !strings.Contains(p.Script.Storyboard, "Write a script about") {
		t.Errorf("Script.Storyboard = %q, want override", p.Script.Storyboard)
	}
	if p.Image.Scene != defaultImageTemplate {
		t.Error("Image.Scene should keep the default when not overridden")
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("script: [not: a: mapping"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestRenderScript(t *testing.T) {
	p := Default()

	result, err := p.RenderScript(ScriptParams{
		Idea:       "a cat spa day",
		Tone:       "humorous",
		SceneCount: 5,
	})
	if err != nil {
		t.Fatalf("RenderScript() error: %v", err)
	}

	for _, want := range []string{
		`"a cat spa day"`,
		"Tone: humorous.",
		"Use exactly 5 scenes.",
		"scene_num",
		"visual_description",
		"voiceover",
		"dialogue",
		"ONLY a valid JSON object",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("RenderScript() missing %q in:\n%s", want, result)
		}
	}
}

func TestRenderScriptSanitizesInputs(t *testing.T) {
	p := Default()

	result, err := p.RenderScript(ScriptParams{
		Idea:       "a \"quoted\"\nmultiline idea",
		Tone:       "dead\npan",
		SceneCount: 5,
	})
	if err != nil {
		t.Fatalf("RenderScript() error: %v", err)
	}

	if !strings.Contains(result, "a 'quoted' multiline idea") {
		t.Errorf("idea not sanitized in:\n%s", result)
	}
	if !strings.Contains(result, "Tone: dead pan.") {
		t.Errorf("tone not sanitized in:\n%s", result)
	}
}

func TestRenderImage(t *testing.T) {
	p := Default()

	result, err := p.RenderImage(ImageParams{
		Description: "a cat on a massage table",
		Style:       "cartoon",
	})
	if err != nil {
		t.Fatalf("RenderImage() error: %v", err)
	}

	want := "a cat on a massage table, cartoon style, bright colors, clean background, 16:9 aspect ratio, high quality"
	if result != want {
		t.Errorf("RenderImage() = %q, want %q", result, want)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello world", want: "hello world"},
		{name: "doubleQuotes", input: `say "hi"`, want: "say 'hi'"},
		{name: "newlines", input: "line1\nline2", want: "line1 line2"},
		{name: "carriageReturns", input: "line1\r\nline2\rline3", want: "line1 line2 line3"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderInvalidTemplate(t *testing.T) {
	p := &Prompts{Script: ScriptPrompts{Storyboard: "{{.Broken"}}

	if _, err := p.RenderScript(ScriptParams{Idea: "x", Tone: "y", SceneCount: 5}); err == nil {
		t.Error("expected error for invalid template")
	}
}
