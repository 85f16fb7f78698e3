// Package colour provides palette filtering and Base16 slot assignment.
package colour

import (
	"fmt"
	"image/color"
	"math"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// HexSeparated returns the hex components joined by the given separator,
// without a leading hash. Base16 shell themes use "/" (e.g., "1a/2b/3c").
func (rgb RGB) HexSeparated(separator string) string {
	if separator == "" {
		return fmt.Sprintf("%02x%02x%02x", rgb.R, rgb.G, rgb.B)
	}
	return fmt.Sprintf("%02x%s%02x%s%02x", rgb.R, separator, rgb.G, separator, rgb.B)
}

// Brightness returns the channel sum of the colour, in [0, 765].
func (rgb RGB) Brightness() int {
	return int(rgb.R) + int(rgb.G) + int(rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// RGBToColor converts an RGB value to a color.Color (RGBA).
func RGBToColor(rgb RGB) color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// maxColourDistance is the Euclidean distance between black and white,
// the largest possible distance in RGB space.
var maxColourDistance = math.Sqrt(3 * 255 * 255)

// Similarity returns the normalised similarity between two colours as a
// value in [0, 1], where 1 means identical. It is one minus the Euclidean
// distance between the colours divided by the black-to-white distance.
func Similarity(c1, c2 RGB) float64 {
	dr := float64(c1.R) - float64(c2.R)
	dg := float64(c1.G) - float64(c2.G)
	db := float64(c1.B) - float64(c2.B)
	return 1 - math.Sqrt(dr*dr+dg*dg+db*db)/maxColourDistance
}
