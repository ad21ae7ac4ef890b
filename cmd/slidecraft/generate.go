package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/ports"
	"github.com/slidecraft/slidecraft/internal/domain/services"
)

var (
	// Generate command flags
	outputPath    string
	modelName     string
	templateName  string
	noLiveContext bool
)

// generateCmd runs the pipeline once and writes a deck file
var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate a slide deck from a topic prompt",
	Long: `Generate a PowerPoint deck for a topic described in natural language.
Mention a slide count in the prompt to control the deck length.

Example:
  slidecraft generate "Create a 5-slide presentation about renewable energy"
  slidecraft generate "8-slide market analysis: EV industry" -o analysis.pptx`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: a temporary .pptx file)")
	generateCmd.Flags().StringVarP(&modelName, "model", "m", "", "Model name or id (overrides config)")
	generateCmd.Flags().StringVarP(&templateName, "template", "t", "", "Template file or label (overrides config)")
	generateCmd.Flags().BoolVar(&noLiveContext, "no-live-context", false, "Skip web-search enrichment")
	generateCmd.Flags().String("templates-dir", "", "Templates directory (overrides config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApplication(ctx, cmd, collectFlags(cmd))
	if err != nil {
		return err
	}

	useLive := app.config.Search.Enabled && !noLiveContext

	notify := ports.ProgressFunc(func(event entities.ProgressEvent) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", event.Message)
	})

	deck, err := app.deckSvc.Generate(ctx, uuid.New().String(), args[0], services.DeckOptions{
		Model:          modelName,
		Template:       templateName,
		UseLiveContext: useLive,
		OutputPath:     outputPath,
	}, notify)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated %d slides for %q\n\n", len(deck.Slides), deck.Request.Topic)
	for i, slide := range deck.Slides {
		fmt.Fprintf(out, "Slide %d: %s\n", i+1, slide.Title)
		for _, bullet := range slide.Bullets {
			fmt.Fprintf(out, "  - %s\n", bullet)
		}
		if i < len(deck.Slides)-1 {
			fmt.Fprintln(out, strings.Repeat("-", 40))
		}
	}
	fmt.Fprintf(out, "\nSaved to %s\n", deck.Path)

	return nil
}
