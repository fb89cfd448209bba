package imagepkg

import (
	"fmt"

	"github.com/pkg/errors"
)

// RatioSpec names an output size.
type RatioSpec struct {
	Label string `json:"label"`
	W     int    `json:"w"`
	H     int    `json:"h"`
}

func (r RatioSpec) String() string {
	return fmt.Sprintf("%s (%dx%d)", r.Label, r.W, r.H)
}

// Validate fails with ErrInvalidRatio unless both sides are positive.
func (r RatioSpec) Validate() error {
	if r.W <= 0 || r.H <= 0 {
		return errors.Wrapf(ErrInvalidRatio, "%q is %dx%d", r.Label, r.W, r.H)
	}
	return nil
}
