package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for truecolor terminal output.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns a solid ANSI-coloured block for a colour, width characters
// wide.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// FormatSlotSwatch formats one assignment entry as a swatch followed by the
// slot name and hex code, for palette previews.
func FormatSlotSwatch(slot Slot, c RGB, width int) string {
	return fmt.Sprintf("%s  %-8s %s", Swatch(c, width), slot, c.Hex())
}

// ColourString wraps text in a truecolor foreground escape for the given
// colour.
func ColourString(c RGB, text string) string {
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
	return fg + text + ansiReset
}
