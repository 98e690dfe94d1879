package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/shoring/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive browser front end",
	Long: `Serve a browser page for editing the spacings, member style and view.
Every change regenerates the model and re-renders the image.

Routes:
  GET  /                        parameter form and rendered model
  GET  /render/model.png|svg    projected model image
  GET  /render/wireframe.png    3D wireframe image
  GET  /api/model               model as JSON (query parameters)
  POST /api/model               model as JSON (JSON body)

Examples:
  shoring serve
  shoring serve --addr 127.0.0.1:9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default SHORING_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s := cfg
	if serveAddr != "" {
		s.Addr = serveAddr
	}

	fmt.Printf("Shoring viewer on http://%s\n", displayAddr(s.Addr))
	return server.New(s, logger).ListenAndServe(ctx)
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
