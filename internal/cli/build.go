package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/themerator/internal/colour"
	"github.com/jmylchreest/themerator/internal/image"
	"github.com/jmylchreest/themerator/internal/theme"
)

// paletteOptions are the flags shared by every command that runs the
// palette pipeline.
type paletteOptions struct {
	tone               string
	intensity          int
	candidates         int
	dominantBackground bool
}

// registerPaletteFlags attaches the shared pipeline flags to a command.
func registerPaletteFlags(cmd *cobra.Command, opts *paletteOptions) {
	cmd.Flags().StringVarP(&opts.tone, "tone", "t", "auto", "theme tone (auto, dark, light)")
	cmd.Flags().IntVarP(&opts.intensity, "intensity", "i", 100, "theme intensity as a percentage (1-100)")
	cmd.Flags().IntVarP(&opts.candidates, "candidates", "c", colour.DefaultCandidateCount, "number of candidate colours to quantize (1-256)")
	cmd.Flags().BoolVar(&opts.dominantBackground, "dominant-background", false, "use the image's dominant colour as the theme background")
}

// buildOptions holds the flags specific to the build command.
type buildOptions struct {
	paletteOptions
	shell    bool
	vim      bool
	shellDir string
	vimDir   string
	dryRun   bool
	preview  bool
}

// newBuildCmd represents the build command.
func newBuildCmd() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build <image> <name>",
		Short: "Build Base16 theme files from an image",
		Long: `Build Base16 theme files for shell and vim from an image.

The image is quantized to a candidate colour set, filtered down to a
palette of sixteen mutually distinct colours, and each colour is assigned
to a Base16 slot. The resulting theme is written into your base16-shell
and base16-vim directories.

If the image cannot supply sixteen distinct colours the theme is still
built with as few as eight, reusing colours across slots; below eight the
build fails.

Examples:
  # Build a theme named "sunset" with auto-detected tone
  themerator build wallpaper.jpg sunset

  # Force a dark theme at reduced intensity
  themerator build --tone dark --intensity 80 wallpaper.png sunset

  # Use the image's dominant colour as the background
  themerator build --dominant-background wallpaper.jpg sunset

  # Pick a random image from a wallpaper directory
  themerator build ~/Pictures/wallpapers sunset

  # Preview without writing any files
  themerator build --preview --dry-run wallpaper.jpg sunset`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], args[1], opts)
		},
	}

	registerPaletteFlags(cmd, &opts.paletteOptions)
	cmd.Flags().BoolVar(&opts.shell, "shell", true, "write a base16-shell theme")
	cmd.Flags().BoolVar(&opts.vim, "vim", true, "write a base16-vim theme")
	cmd.Flags().StringVar(&opts.shellDir, "shell-dir", theme.DefaultShellDir, "base16-shell directory")
	cmd.Flags().StringVar(&opts.vimDir, "vim-dir", theme.DefaultVimDir, "base16-vim directory")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "render without writing files")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show the palette in the terminal")

	return cmd
}

// runBuild executes the build command.
func runBuild(cmd *cobra.Command, imagePath, name string, opts *buildOptions) error {
	logger := newLogger(cmd)

	assignment, tone, err := buildAssignment(cmd, imagePath, &opts.paletteOptions, logger)
	if err != nil {
		return err
	}

	if opts.preview {
		printAssignment(cmd, assignment)
	}

	written, err := theme.Save(name, assignment, theme.SaveOptions{
		Shell:    opts.shell,
		Vim:      opts.vim,
		ShellDir: opts.shellDir,
		VimDir:   opts.vimDir,
		DryRun:   opts.dryRun,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	verb := "Wrote"
	if opts.dryRun {
		verb = "Would write"
	}
	success := color.New(color.FgGreen)
	for _, path := range written {
		success.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, path)
	}
	logger.Debug("theme build complete", "name", theme.CanonicalName(name), "tone", tone)

	return nil
}

// buildAssignment runs the shared palette pipeline: load the image,
// quantize it to candidates, bound them by brightness, filter for
// distinctness and assign slots.
func buildAssignment(cmd *cobra.Command, imagePath string, opts *paletteOptions, logger hclog.Logger) (colour.PaletteAssignment, colour.Tone, error) {
	if err := image.ValidatePath(imagePath); err != nil {
		return nil, 0, fmt.Errorf("invalid image path: %w", err)
	}

	resolved, err := image.ResolvePath(imagePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve image path: %w", err)
	}
	if resolved != imagePath {
		logger.Info("selected image from directory", "path", resolved)
	}

	img, err := image.NewSmartLoader().Load(resolved)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "path", resolved, "width", bounds.Dx(), "height", bounds.Dy())

	candidates, err := colour.NewKMeansQuantizer().Quantize(img, opts.candidates)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to quantize image: %w", err)
	}
	logger.Debug("quantized image", "candidates", len(candidates))

	tone, explicit, err := colour.ParseTone(opts.tone)
	if err != nil {
		return nil, 0, err
	}
	auto := !explicit
	if auto {
		tone = colour.ToneFor(candidates[0])
		logger.Debug("detected tone from dominant colour", "tone", tone, "dominant", candidates[0].Hex())
	}

	bounded := colour.BoundByIntensity(candidates, tone, auto, opts.intensity)
	logger.Debug("bounded candidates by brightness", "before", len(candidates), "after", len(bounded))

	result, err := colour.Filter(bounded, tone, colour.FilterOptions{
		DominantAnchor: opts.dominantBackground,
		Logger:         logger,
	})
	if err != nil {
		if errors.Is(err, colour.ErrInsufficientColours) {
			return nil, 0, fmt.Errorf("image cannot supply a usable palette: %w", err)
		}
		return nil, 0, fmt.Errorf("failed to filter palette: %w", err)
	}
	// Tight brightness bounds can empty the candidate set before the
	// filter ever sees it; that is the same user-facing condition as an
	// image without enough distinct colours.
	if len(result.Colours) == 0 {
		return nil, 0, fmt.Errorf("image cannot supply a usable palette: %w", colour.ErrInsufficientColours)
	}
	if result.Degraded {
		warnf(cmd, "only %d distinct colours found; some slots will share colours\n", len(result.Colours))
	}

	assignment, err := colour.Assign(result.Colours, tone, colour.AssignOptions{
		DominantBackground: opts.dominantBackground,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to assign palette: %w", err)
	}

	return assignment, tone, nil
}

// printAssignment writes one line per catalog slot, with an ANSI swatch
// when stdout is a terminal.
func printAssignment(cmd *cobra.Command, assignment colour.PaletteAssignment) {
	out := cmd.OutOrStdout()

	coloured := false
	if f, ok := out.(*os.File); ok {
		coloured = term.IsTerminal(int(f.Fd()))
	}

	for _, slot := range colour.Slots() {
		c := assignment[slot]
		if coloured {
			fmt.Fprintln(out, colour.FormatSlotSwatch(slot, c, 8))
		} else {
			fmt.Fprintf(out, "%-8s %s\n", slot, c.Hex())
		}
	}
}

var warnColour = color.New(color.FgYellow)

// warnf prints a user-facing warning to stderr.
func warnf(cmd *cobra.Command, format string, args ...any) {
	warnColour.Fprintf(cmd.ErrOrStderr(), "warning: "+format, args...)
}
