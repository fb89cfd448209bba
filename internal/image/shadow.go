package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// shadowImage renders the blurred silhouette of r. The returned point is
// where the image's top-left corner lands on the canvas.
func shadowImage(r Rect, s Shadow) (*image.NRGBA, image.Point) {
	box := r.Bounds()
	pad := int(math.Ceil(s.Blur * 1.5))
	img := imaging.New(box.Dx()+2*pad, box.Dy()+2*pad, color.NRGBA{})

	// The silhouette is opaque; the shadow colour's alpha is applied when
	// compositing so the blur keeps its full range.
	solid := color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 0xff}
	inner := image.Rect(pad, pad, pad+box.Dx(), pad+box.Dy())
	draw.Draw(img, inner, image.NewUniform(solid), image.Point{}, draw.Src)
	if s.Blur > 0 {
		img = imaging.Blur(img, s.Blur/2)
	}

	origin := image.Pt(
		box.Min.X+int(math.Round(s.OffsetX))-pad,
		box.Min.Y+int(math.Round(s.OffsetY))-pad,
	)
	return img, origin
}
