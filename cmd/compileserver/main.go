// Command compileserver starts the HTTP compile service: submit a
// compile request and poll for its result rather than linking the
// compiler in process.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kegliz/nacompile/internal/app"
	"github.com/kegliz/nacompile/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	var (
		addr       int
		logLevel   string
		configPath string
	)

	root := &cobra.Command{
		Use:   "compileserver",
		Short: "HTTP service wrapping the compile pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(addr, configPath, cmd.Flags())
		},
	}
	root.Flags().IntVar(&addr, "addr", 8080, "port to listen on")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	root.Flags().StringVar(&configPath, "config", "", "path to a config file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(addr int, configPath string, flags *pflag.FlagSet) error {
	cfg, err := config.New(configPath, flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: version})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr, false)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
