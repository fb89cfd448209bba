package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	imagepkg "github.com/tinoreading/coverpost/internal/image"
)

const (
	ansiBgPrefix = "\033[48;2;"
	ansiReset    = "\033[0m"
	swatchWidth  = 8
)

type sampleOptions struct {
	json    bool
	preview bool
}

func newSampleCmd(g *globalOptions) *cobra.Command {
	o := &sampleOptions{}
	cmd := &cobra.Command{
		Use:   "sample <image>",
		Short: "Print the mean colour of an image",
		Long: `Print the mean colour of an image as #rrggbb.

This is the colour render uses for the gradient's second stop when
--background is auto. A colour swatch is shown when stdout is a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, g, o, args[0])
		},
	}
	cmd.Flags().BoolVar(&o.json, "json", false, "print the colour as JSON")
	cmd.Flags().BoolVar(&o.preview, "preview", true, "show a colour swatch when stdout is a terminal")
	return cmd
}

func runSample(cmd *cobra.Command, g *globalOptions, o *sampleOptions, imagePath string) error {
	log := g.logger(cmd.ErrOrStderr(), "sample")
	img, err := imagepkg.LoadFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	b := img.Bounds()
	log.Debug("image loaded", "width", b.Dx(), "height", b.Dy())

	col, err := imagepkg.Sample(img)
	if err != nil {
		return fmt.Errorf("failed to sample colour: %w", err)
	}

	out := cmd.OutOrStdout()
	if o.json {
		return json.NewEncoder(out).Encode(map[string]any{
			"color": col.Hex(),
			"rgb":   []int{int(col.R), int(col.G), int(col.B)},
		})
	}
	if o.preview && isTerminal(out) {
		fmt.Fprintf(out, "%s %s\n", swatch(col), col.Hex())
		return nil
	}
	fmt.Fprintln(out, col.Hex())
	return nil
}

// swatch renders c as a truecolour block.
func swatch(c imagepkg.Color) string {
	return fmt.Sprintf("%s%d;%d;%dm", ansiBgPrefix, c.R, c.G, c.B) + strings.Repeat(" ", swatchWidth) + ansiReset
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
