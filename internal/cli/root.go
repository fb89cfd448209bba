// Package cli provides the command-line interface for coverpost.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/tinoreading/coverpost/internal/config"
	"github.com/tinoreading/coverpost/internal/logging"
	"github.com/tinoreading/coverpost/internal/version"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string
}

// NewRootCmd builds the command tree. Each call returns independent commands
// and flag state.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "coverpost",
		Short: "Turn book covers into social-media posts",
		Long: `coverpost composites a book cover onto a gradient canvas sized for
social media, with a soft shadow, rounded corners and a watermark.

Examples:
  # Render a square post next to the cover
  coverpost render cover.jpg

  # Render every configured ratio into ./posts
  coverpost render --all --dir posts cover.jpg

  # Print the mean colour used for the gradient
  coverpost sample cover.jpg`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
	root.SetVersionTemplate(version.String() + "\n")

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "JSON config file (default: built-in settings)")

	root.AddCommand(
		newRenderCmd(opts),
		newSampleCmd(opts),
		newRatiosCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, the --config file and the environment.
func (o *globalOptions) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	return cfg.ApplyEnv(os.LookupEnv)
}

func (o *globalOptions) logger(w io.Writer, name string) hclog.Logger {
	return logging.NewWithOutput(name, w, o.verbose, o.quiet)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
