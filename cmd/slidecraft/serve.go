package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Serve command flags
	port int
	host string
)

// serveCmd starts the local web UI
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the slide generator web UI",
	Long: `Start a local HTTP server with a form-based UI for generating decks:
pick a model and a template, toggle live web context, and download the
generated .pptx file.

Example:
  slidecraft serve
  slidecraft serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().String("templates-dir", "", "Templates directory (overrides config)")
	serveCmd.Flags().String("model", "", "Default model (overrides config)")
	serveCmd.Flags().Bool("no-live-context", false, "Disable web-search enrichment by default")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApplication(ctx, cmd, collectFlags(cmd))
	if err != nil {
		return err
	}

	serverCfg := app.config.Server
	if err := app.server.Start(ctx, serverCfg.Port, serverCfg.Host); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "slidecraft listening on http://%s:%d\n", serverCfg.Host, serverCfg.Port)

	// Block until the command context is cancelled (interrupt)
	<-ctx.Done()

	return app.server.Stop(context.WithoutCancel(ctx))
}
