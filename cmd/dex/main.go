// Command dex downloads a file, transparently extracts recognized
// archives, and resolves GitHub release URLs to the asset matching the
// current platform.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dex-dev/dex/internal/buildinfo"
	"github.com/dex-dev/dex/internal/config"
	"github.com/dex-dev/dex/internal/errmsg"
	"github.com/dex-dev/dex/internal/log"
)

var (
	flagOutput    string
	flagNoExtract bool
	flagKeep      bool
	flagPlatform  string
	flagArch      string
	flagQuiet     bool
	flagVerbose   bool
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "dex <url>",
	Short: "Download and extract in one step",
	Long: `dex downloads a URL and, when the file is a recognized archive,
extracts it into the output directory in the same step.

GitHub repository and release URLs are resolved through the GitHub API
to the release asset that best matches your platform:

  dex https://github.com/BurntSushi/ripgrep
  dex https://github.com/cli/cli/releases/tag/v2.40.0
  dex https://example.com/tool-v1.2.3-linux-amd64.tar.gz

Plain URLs are downloaded directly. Files that are not archives are
saved as-is.`,
	Version:       buildinfo.Version(),
	Args:          usageArgs(cobra.ExactArgs(1)),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		applyConfigFile(cmd)
		return run(cmd.Context(), args[0])
	},
}

// usageArgs tags argument validation failures so they map to the usage
// exit code instead of the general one.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", ".", "output directory")
	rootCmd.Flags().BoolVar(&flagNoExtract, "no-extract", false, "save the file without extracting")
	rootCmd.Flags().BoolVarP(&flagKeep, "keep", "k", false, "keep the archive after extraction")
	rootCmd.Flags().StringVar(&flagPlatform, "platform", "", "override the target OS for asset matching (e.g. linux, macos, windows)")
	rootCmd.Flags().StringVar(&flagArch, "arch", "", "override the target architecture for asset matching (e.g. amd64, arm64)")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress and informational output")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug output")
}

// applyConfigFile fills in defaults from the optional config file for
// flags the user did not set explicitly. Flags always win.
func applyConfigFile(cmd *cobra.Command) {
	cfg, err := config.Load()
	if err != nil {
		log.Default().Warn("ignoring config file", "error", err)
		return
	}
	if !cmd.Flags().Changed("output") && cfg.OutputDir != "" {
		flagOutput = cfg.OutputDir
	}
	if !cmd.Flags().Changed("keep") && cfg.Keep {
		flagKeep = true
	}
}

// setupLogging wires the global logger to stderr at the level the flags
// ask for. Quiet wins over verbose and debug.
func setupLogging() {
	if flagQuiet {
		log.SetDefault(log.NewNoop())
		return
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	if flagDebug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	log.SetDefault(log.New(handler))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errmsg.Format(err))
		os.Exit(exitCodeFor(err))
	}
}
