package cmd

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/recording"
	"github.com/sarchlab/pagesim/server"
)

type serveOptions struct {
	addr string
	open bool
}

func newServeCmd(a *app) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation over HTTP.",
		Long: "`serve` accepts POST /simulate with a JSON body " +
			`{"reference": [...], "frames": n} and answers with the faults ` +
			"and hits of every policy.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "",
		"address to listen on, server.address from the config by default")
	cmd.Flags().BoolVar(&opts.open, "open", false,
		"open the API in a web browser")

	return cmd
}

func serve(ctx context.Context, a *app, opts *serveOptions) error {
	addr := opts.addr
	if addr == "" {
		addr = a.cfg.Server.Address
	}

	s := server.NewServer().
		WithAllowedOrigins(a.cfg.Server.AllowedOrigins).
		WithMaxReferenceLength(a.cfg.Server.MaxReferenceLength).
		WithVerbose(a.cfg.Log.Verbose)

	if a.cfg.Recording.Enabled {
		dataRecorder := recording.New(a.cfg.Recording.Path)
		defer dataRecorder.Close()

		s.WithRecorder(dataRecorder)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	if opts.open {
		port := listener.Addr().(*net.TCPAddr).Port
		url := fmt.Sprintf("http://localhost:%d/api/policies", port)

		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open %s: %v\n", url, err)
		}
	}

	err = s.Serve(ctx, listener)
	if err != nil {
		log.Printf("serve: %v", err)
	}

	return err
}
