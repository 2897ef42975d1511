// Package serve implements the HTTP server command.
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/internal/api"
	"fjacquet/statement-parser/internal/container"
)

const shutdownTimeout = 10 * time.Second

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parse, process and convert operations over HTTP",
	Long: `Start an HTTP server exposing:

  GET  /api/health
  POST /api/parse     multipart field "file" holding a PDF
  POST /api/process   JSON array of raw transactions
  POST /api/convert   multipart PDF, ?format=csv for CSV output`,
	Args: cobra.NoArgs,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (default from server.address)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	addr := address
	if addr == "" {
		addr = c.GetConfig().Server.Address
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, NewServer(c), addr)
}

// NewServer builds the API server from the container's components.
func NewServer(c *container.Container) *api.Server {
	return api.NewServer(
		c.GetParser(),
		c.GetProcessor(),
		c.GetCSVWriter(),
		c.GetLogger(),
		api.Options{BodyLimitMB: c.GetConfig().Server.BodyLimitMB},
	)
}

// Run serves until ctx is cancelled, then shuts the server down.
func Run(ctx context.Context, s *api.Server, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := s.Shutdown(shutdownTimeout); err != nil {
			return err
		}
		return <-errCh
	}
}
