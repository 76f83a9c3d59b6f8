// =============================================================================
// POS to IIF Converter - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which runs the HTTP upload surface:
// POST a POS export to /convert and receive the IIF document as a download.
//
// COMMAND USAGE:
//   pos2iif serve [--listen :8080]
//
// =============================================================================

package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/retailops/pos-iif-converter/internal/config"
	"github.com/retailops/pos-iif-converter/internal/converter"
	"github.com/retailops/pos-iif-converter/internal/server"
)

// listenAddr overrides the configured listen address when set.
var listenAddr string

// serveCmd represents the 'serve' command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload/convert/download service",
	Long: `The serve command starts an HTTP server exposing the converter:

  GET  /health   - liveness probe
  POST /convert  - multipart upload (field "file"), returns the IIF document
                   as an attachment named qb_sales_import.iif

Each request is a stateless, independent conversion.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(
		&listenAddr,
		"listen",
		"",
		"Listen address (overrides the configured server.listen_addr)",
	)
}

// runServe loads the configuration and blocks serving HTTP.
func runServe() error {
	logger := converter.NewLogger(verbose)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}

	srv := server.New(cfg, logger)

	logger.Info("listening on %s", cfg.Server.ListenAddr)
	if err := http.ListenAndServe(cfg.Server.ListenAddr, srv.Router()); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
