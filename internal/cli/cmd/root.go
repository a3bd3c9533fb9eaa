// Package cmd provides Cobra CLI commands for dtabridge.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/dtabridge/internal/bootstrap"
	"github.com/bnema/dtabridge/internal/cli"
	"github.com/bnema/dtabridge/internal/domain/build"
	"github.com/bnema/dtabridge/internal/logging"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "dtabridge [browser arguments]",
		Short: "Native messaging host for interactive downloads",
		Long: `dtabridge is the native messaging host of the download extension.

The browser starts it with the extension origin (Chromium) or the manifest
path and extension id (Firefox) as arguments, then talks to it over
stdin/stdout with length-prefixed JSON messages. Without a subcommand it
serves that protocol, so it can be registered directly in the host manifest.

Logs go to stderr and to the log directory; stdout is reserved for frames.`,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
		RunE: runServe,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the native messaging protocol on stdin/stdout",
	Args:  cobra.ArbitraryArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, args []string) error {
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.FromContext(ctx)
	log.Info().
		Stringer("version", app.BuildInfo).
		Strs("args", args).
		Str("config", app.ConfigFile).
		Msg("starting native messaging host")

	app.WatchConfig()

	return bootstrap.RunHost(ctx, bootstrap.HostInput{
		Config: app.Config,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	})
}
