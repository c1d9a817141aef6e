package fill

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/polyfill/internal/raster"
)

// TransparentToken is the display token always bound to raster.Transparent.
const TransparentToken = "transparent"

// Palette maps canvas indices to caller-supplied display tokens.
// It marshals to JSON as {"0": "transparent", "1": fill, "2": boundary}.
type Palette map[raster.Index]string

// NewPalette binds the fill and boundary tokens for one request.
func NewPalette(fillColor, boundaryColor string) Palette {
	return Palette{
		raster.Transparent: TransparentToken,
		raster.Fill:        fillColor,
		raster.Boundary:    boundaryColor,
	}
}

// Colors converts the palette into a color.Palette indexed like the canvas.
// Tokens that are not hex colours fall back to fallback; the transparent
// token becomes color.Transparent.
func (p Palette) Colors(fallback color.Color) color.Palette {
	res := make(color.Palette, raster.NumIndices)
	for i := range res {
		tok := p[raster.Index(i)]
		if raster.Index(i) == raster.Transparent || tok == TransparentToken {
			res[i] = color.Transparent
			continue
		}
		c, err := colorful.Hex(tok)
		if err != nil {
			res[i] = fallback
			continue
		}
		res[i] = c
	}
	return res
}

// ValidColor reports whether tok is a #rrggbb (or #rgb) hex colour.
func ValidColor(tok string) bool {
	if len(tok) != 4 && len(tok) != 7 {
		return false
	}
	_, err := colorful.Hex(tok)
	return err == nil
}
