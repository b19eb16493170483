// Command drip-mcp serves the Drip tools over MCP on stdin/stdout.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	drip "github.com/GravityKit/drip-mcp-server"
	"github.com/GravityKit/drip-mcp-server/logger"
	"github.com/GravityKit/drip-mcp-server/server"
	"github.com/GravityKit/drip-mcp-server/tools"
)

func main() {
	// stdout carries the protocol; logs go to stderr.
	zl := zerolog.New(os.Stderr).With().Timestamp().Str("service", server.Name).Logger()

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		zl.Fatal().Err(err).Msg("invalid configuration")
	}
	zl = zl.Level(cfg.logLevel)
	log := logger.NewZerolog(zl)

	opts := append(cfg.clientOptions(), drip.WithLogger(log))
	client, err := drip.NewClient(cfg.apiKey, cfg.accountId, opts...)
	if err != nil {
		zl.Fatal().Err(err).Msg("cannot create Drip client")
	}

	srv, err := server.New(tools.NewDispatcher(client, log), server.WithLogger(log))
	if err != nil {
		zl.Fatal().Err(err).Msg("cannot build tool server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, srv, &mcp.StdioTransport{}, zl); err != nil {
		zl.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// run serves until the client disconnects or ctx is cancelled.
func run(ctx context.Context, srv *server.Server, transport mcp.Transport, zl zerolog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	served := make(chan struct{})
	g.Go(func() error {
		defer close(served)
		return srv.Run(gctx, transport)
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			zl.Info().Msg("shutting down")
		case <-served:
			zl.Info().Msg("client disconnected")
		}
		return nil
	})

	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
