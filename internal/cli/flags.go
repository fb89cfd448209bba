package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	imagepkg "github.com/tinoreading/coverpost/internal/image"
)

// ratioFlag collects preset labels from repeated or comma-separated --ratio
// flags. Labels are checked against the config once it is loaded.
type ratioFlag struct {
	labels []string
}

var _ pflag.Value = (*ratioFlag)(nil)

func (f *ratioFlag) String() string { return strings.Join(f.labels, ",") }

func (f *ratioFlag) Set(v string) error {
	for _, l := range strings.Split(v, ",") {
		l = strings.TrimSpace(l)
		if l == "" {
			return errors.Errorf("empty ratio label in %q", v)
		}
		f.labels = append(f.labels, l)
	}
	return nil
}

func (f *ratioFlag) Type() string { return "ratio" }

// formatFlag is an output format validated at parse time.
type formatFlag struct {
	format imagepkg.Format
}

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return string(f.format) }

func (f *formatFlag) Set(v string) error {
	format, err := imagepkg.ParseFormat(v)
	if err != nil {
		return err
	}
	f.format = format
	return nil
}

func (f *formatFlag) Type() string { return "format" }
