package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPreviewCmd represents the preview command.
func newPreviewCmd() *cobra.Command {
	opts := &paletteOptions{}

	cmd := &cobra.Command{
		Use:   "preview <image>",
		Short: "Preview the palette an image would produce",
		Long: `Run the palette pipeline and print the slot assignment without
writing any theme files.

Each Base16 slot is shown with its colour; when stdout is a terminal the
colours render as ANSI swatches.

Examples:
  # Preview with auto-detected tone
  themerator preview wallpaper.jpg

  # Preview a light theme
  themerator preview --tone light wallpaper.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], opts)
		},
	}

	registerPaletteFlags(cmd, opts)

	return cmd
}

// runPreview executes the preview command.
func runPreview(cmd *cobra.Command, imagePath string, opts *paletteOptions) error {
	logger := newLogger(cmd)

	assignment, tone, err := buildAssignment(cmd, imagePath, opts, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "tone: %s\n", tone)
	printAssignment(cmd, assignment)

	return nil
}
