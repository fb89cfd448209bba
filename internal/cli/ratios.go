package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRatiosCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ratios",
		Short: "List the configured ratio presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LABEL\tSIZE\tCOVER WIDTH")
			for _, p := range cfg.Presets {
				fmt.Fprintf(tw, "%s\t%dx%d\t%.0f%%\n", p.Ratio.Label, p.Ratio.W, p.Ratio.H, p.Policy.CoverWidthFraction*100)
			}
			return tw.Flush()
		},
	}
}
