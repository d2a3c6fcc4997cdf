package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP picker and API",
	Long:  "Serves the symptom picker page and JSON API, and reloads the taxonomy when TAXONOMY_DIR changes.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.HTTPAddr = serveAddr
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		a.Stop()
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "⚡ medreport serving at %s\n", a.WebServer.URL())

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-cmd.Context().Done():
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\n⚡ shutting down...")
	return a.Stop()
}
