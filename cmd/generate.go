package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"storyboardgen/internal/app"
	"storyboardgen/internal/storage"
	"storyboardgen/internal/storyboard"
	"storyboardgen/pkg/config"
)

var (
	generateIdea string
	generateTone string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a storyboard interactively",
	Long: `Generate a five-scene storyboard from a video idea. Prompts for the
idea and tone unless flags are given, then offers per-scene image
regeneration. Each board is written to the output directory as it is
generated so the images can be opened alongside the script.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateIdea, "idea", "i", "", "Video idea")
	generateCmd.Flags().StringVarP(&generateTone, "tone", "t", "", "Tone of the script")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	service, err := app.BuildService(ctx, cfg)
	if err != nil {
		return err
	}

	idea, tone := generateIdea, generateTone
	if idea == "" || tone == "" {
		idea, tone, err = promptIdea(idea, tone)
		if err != nil {
			return err
		}
	}

	session := app.NewSession(service)
	boardDir, err := generateBoard(ctx, session, service, idea, tone)
	if err != nil {
		return err
	}

	for {
		renderBoard(session, boardDir)

		action, err := promptAction(session)
		if err != nil {
			return err
		}

		switch {
		case action == actionRegenerateAll:
			boardDir, err = generateBoard(ctx, session, service, idea, tone)
			if err != nil {
				return err
			}
		case strings.HasPrefix(action, actionScenePrefix):
			var index int
			if _, err := fmt.Sscanf(action, actionScenePrefix+"%d", &index); err != nil {
				return fmt.Errorf("unexpected action %q", action)
			}
			regenerateScene(ctx, session, service, boardDir, index)
		case action == actionDone:
			if err := publishBoard(ctx, service, session, boardDir); err != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ Publishing failed: %v", err)))
			}
			fmt.Println(successStyle.Render("✓ Storyboard saved to " + boardDir))
			return nil
		}
	}
}

func promptIdea(idea, tone string) (string, string, error) {
	if tone == "" {
		tone = config.DefaultTone
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Video idea").
				Description("One or two sentences describing the video").
				Value(&idea).
				Validate(required("Video idea")),
			huh.NewSelect[string]().
				Title("Tone").
				Options(huh.NewOptions(config.Tones...)...).
				Value(&tone),
		),
	)

	if err := form.Run(); err != nil {
		return "", "", err
	}

	return strings.TrimSpace(idea), tone, nil
}

// generateBoard produces a fresh board and writes it to a new directory
// under the output dir.
func generateBoard(ctx context.Context, session *app.Session, service *app.Service, idea, tone string) (string, error) {
	var status app.GenerateStatus
	err := runWithSpinner("Generating storyboard", func() error {
		var genErr error
		status, genErr = session.Generate(ctx, idea, tone)
		return genErr
	})
	if err != nil {
		return "", err
	}

	if status.ScriptErr != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ Script generation degraded: %v", status.ScriptErr)))
	}
	if status.ImageFailures > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ %d scene image(s) replaced with placeholders", status.ImageFailures)))
	}

	script, images := session.Snapshot()
	dir, err := service.Storage().SaveStoryboard(script, images)
	if err != nil {
		return "", fmt.Errorf("save storyboard: %w", err)
	}

	return dir, nil
}

// regenerateScene replaces one scene's image in the session and on disk.
// A failed regeneration degrades to the placeholder and the loop goes on.
func regenerateScene(ctx context.Context, session *app.Session, service *app.Service, boardDir string, index int) {
	err := runWithSpinner(fmt.Sprintf("Regenerating scene %d image", index+1), func() error {
		return session.RegenerateImage(ctx, index)
	})
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ Scene %d image degraded to placeholder: %v", index+1, err)))
	}

	_, images := session.Snapshot()
	if saveErr := service.Storage().SaveSceneImage(boardDir, index+1, images[index]); saveErr != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ Could not update %s: %v", storage.SceneImageName(index+1), saveErr)))
	}
}

func publishBoard(ctx context.Context, service *app.Service, session *app.Session, boardDir string) error {
	publisher := service.Publisher()
	if publisher == nil {
		return nil
	}

	script, images := session.Snapshot()
	scriptJSON, err := json.MarshalIndent(script, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}

	return runWithSpinner("Publishing storyboard", func() error {
		return publisher.Publish(ctx, filepath.Base(boardDir), storage.BoardArtifacts(scriptJSON, images))
	})
}

func renderBoard(session *app.Session, boardDir string) {
	script, _ := session.Snapshot()
	if script == nil {
		return
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("🎬 " + script.Title))
	if storyboard.IsFallback(script) {
		fmt.Println(warnStyle.Render("This is a placeholder storyboard; the generated script could not be used."))
	}

	for _, scene := range script.Scenes {
		fmt.Println(infoStyle.Render(fmt.Sprintf("Scene %d", scene.SceneNum)))
		fmt.Printf("  Visual:    %s\n", scene.VisualDescription)
		if scene.Voiceover != "" {
			fmt.Printf("  Voiceover: %s\n", scene.Voiceover)
		}
		if scene.Dialogue != "" {
			fmt.Printf("  Dialogue:  %s\n", scene.Dialogue)
		}
		fmt.Printf("  Image:     %s%c%s\n", boardDir, os.PathSeparator, storage.SceneImageName(scene.SceneNum))
		fmt.Println()
	}
}

const (
	actionRegenerateAll = "regenerate-all"
	actionScenePrefix   = "scene-"
	actionDone          = "done"
)

func promptAction(session *app.Session) (string, error) {
	script, _ := session.Snapshot()

	options := make([]huh.Option[string], 0, len(script.Scenes)+2)
	for i := range script.Scenes {
		options = append(options, huh.NewOption(
			fmt.Sprintf("Regenerate scene %d image", i+1),
			fmt.Sprintf("%s%d", actionScenePrefix, i),
		))
	}
	options = append(options,
		huh.NewOption("Regenerate entire storyboard", actionRegenerateAll),
		huh.NewOption("Done", actionDone),
	)

	var action string
	err := huh.NewSelect[string]().
		Title("What next?").
		Options(options...).
		Value(&action).
		Run()
	return action, err
}
