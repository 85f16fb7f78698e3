// Themerator - A Base16 theme generator for shell and vim
//
// Themerator extracts a distinct colour palette from an image, assigns it
// to Base16 slots, and renders theme files for terminal and editor use.
package main

import (
	"github.com/jmylchreest/themerator/internal/cli"
)

func main() {
	cli.Execute()
}
