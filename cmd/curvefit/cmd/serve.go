package cmd

import (
	"os/signal"
	"syscall"

	"github.com/drakos74/curvefit/internal/server"
	"github.com/spf13/cobra"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Exposes fitting over http",
	Long: `Starts an http server with the routes:

  POST /api/fit   json encoded job, responds with the result
  GET  /data      liveness
  GET  /metrics   prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer("curvefit", addr).Add(server.Live(), server.Fit())
	if verbose {
		srv = srv.Debug()
	}
	return srv.Run(ctx)
}
