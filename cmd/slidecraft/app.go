package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	httpserver "github.com/slidecraft/slidecraft/internal/adapters/primary/http"
	configadapter "github.com/slidecraft/slidecraft/internal/adapters/secondary/config"
	"github.com/slidecraft/slidecraft/internal/adapters/secondary/duckduckgo"
	"github.com/slidecraft/slidecraft/internal/adapters/secondary/openrouter"
	"github.com/slidecraft/slidecraft/internal/adapters/secondary/pptx"
	"github.com/slidecraft/slidecraft/internal/adapters/secondary/templates"
	"github.com/slidecraft/slidecraft/internal/domain/entities"
	"github.com/slidecraft/slidecraft/internal/domain/services"
)

// application bundles the wired pipeline for the CLI commands
type application struct {
	config  *entities.Config
	deckSvc *services.DeckService
	server  *httpserver.Server
}

// newApplication loads configuration and wires the pipeline
func newApplication(ctx context.Context, cmd *cobra.Command, flags map[string]interface{}) (*application, error) {
	loader := configadapter.NewTOMLLoader()
	merger := configadapter.NewConfigMerger()
	configSvc := services.NewConfigService(loader, merger)

	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	cfg, err := configSvc.LoadConfig(ctx, workingDir, flags)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	catalog, err := configadapter.LoadModelCatalog(cfg.Generator.CatalogPath)
	if err != nil {
		return nil, err
	}

	if cfg.Generator.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set OPENROUTER_API_KEY")
	}

	templateRepo := templates.NewRepository(cfg.Templates.GetDirectory())
	searcher := duckduckgo.NewSearcher(nil)
	generator := openrouter.NewGenerator(cfg.Generator)
	renderer := pptx.NewRenderer()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	deckSvc := services.NewDeckService(
		searcher,
		generator,
		renderer,
		templateRepo,
		catalog,
		services.DeckDefaults{
			Model:    cfg.Generator.DefaultModel,
			Template: cfg.Templates.Default,
		},
		cfg.Search,
		logger,
	)

	return &application{
		config:  cfg,
		deckSvc: deckSvc,
		server:  httpserver.NewServer(deckSvc, templateRepo, &cfg.Server, &cfg.Logging),
	}, nil
}

// collectFlags gathers CLI flag overrides for the config merger
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	if cmd.Flags().Changed("port") {
		if port, err := cmd.Flags().GetInt("port"); err == nil {
			flags["port"] = port
		}
	}
	if cmd.Flags().Changed("host") {
		if host, err := cmd.Flags().GetString("host"); err == nil {
			flags["host"] = host
		}
	}
	if cmd.Flags().Changed("model") {
		if model, err := cmd.Flags().GetString("model"); err == nil {
			flags["model"] = model
		}
	}
	if cmd.Flags().Changed("templates-dir") {
		if dir, err := cmd.Flags().GetString("templates-dir"); err == nil {
			flags["templates-dir"] = dir
		}
	}
	if cmd.Flags().Changed("no-live-context") {
		if noLive, err := cmd.Flags().GetBool("no-live-context"); err == nil {
			flags["no-live-context"] = noLive
		}
	}

	return flags
}
