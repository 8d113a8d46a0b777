// File: cmd/scpsync/root.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"scpsync/internal/flags"
	"scpsync/internal/service"
	"scpsync/internal/transport/registry"
)

// Some paths failed; they have already been reported
var errSyncFailed = errors.New("sync failed")

type rootFlags struct {
	verbose    bool
	remove     bool
	brutal     bool
	get        bool
	configPath string
	transport  string
}

func (f rootFlags) options() service.Options {
	return service.Options{
		Verbose:    f.verbose,
		Brutal:     f.remove || f.brutal,
		Get:        f.get,
		ConfigPath: f.configPath,
		Transport:  f.transport,
	}
}

func newRootCmd(app *appContainer) *cobra.Command {
	cmdFlags := rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "scpsync [flags] [path...]",
		Short: "scpsync mirrors changed local files and directories to a remote host.",
		Long: `Synchronizes single filesystem changes to a remote host over ssh/scp.

Each path is matched to the nearest .scpsync file found walking up from it.
That file names the remote host and the remote directory mirroring the local
project root, e.g. { "remote_path": "/srv/app", "host": "example.com" }.

Files are uploaded, directories are created, and paths that no longer exist
locally are deleted remotely only with --brutal. Paths are read from stdin,
one per line, when none are given.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmdFlags.verbose {
				app.LogLevel.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdFlags.transport != "" && !registry.IsSupported(cmdFlags.transport) {
				return errors.New("unsupported transport: " + cmdFlags.transport + ". Supported transports are: " + strings.Join(registry.GetSupportedTransports(), ", "))
			}

			paths, err := pathSource(args, app.Stdin, isInteractive(app.Stdin))
			if err != nil {
				_ = cmd.Usage()
				return err
			}

			defer app.TransportFactory.Close()

			summary, err := app.SyncService.SyncAll(cmd.Context(), paths, cmdFlags.options())
			switch {
			case errors.Is(err, service.ErrDownloadUnsupported), errors.Is(err, context.Canceled):
				return err
			case err != nil, summary.Failed > 0:
				// Per-path errors, fatal ones included, were reported as they happened
				return errSyncFailed
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cmdFlags.verbose, flags.Verbose, flags.VerboseShort, false, "Print every remote operation and debug logs")
	rootCmd.Flags().BoolVarP(&cmdFlags.remove, flags.Delete, flags.DeleteShort, false, "Delete remote entries whose local path no longer exists")
	rootCmd.Flags().BoolVarP(&cmdFlags.brutal, flags.Brutal, flags.BrutalShort, false, "Alias of --delete")
	rootCmd.Flags().BoolVarP(&cmdFlags.get, flags.Get, flags.GetShort, false, "Download from the remote host instead (not supported)")
	rootCmd.Flags().StringVarP(&cmdFlags.configPath, flags.Config, flags.ConfigShort, "", "Use this project file instead of searching for .scpsync")
	rootCmd.Flags().StringVarP(&cmdFlags.transport, flags.Transport, flags.TransportShort, "", "Transport to use ("+strings.Join(registry.GetSupportedTransports(), " or ")+")")

	rootCmd.AddCommand(newConfigCmd(app))
	return rootCmd
}

// Runs the CLI and returns the process exit code
func Execute(app *appContainer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(app)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errSyncFailed) {
			app.Status.Error("%v", err)
		}
		return 1
	}
	return 0
}
