// Package theme renders palette assignments into Base16 theme files for
// shell and vim.
package theme

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/themerator/internal/colour"
)

//go:embed templates/shell.txt templates/vim.txt
var templateFS embed.FS

// Format identifies a theme output format.
type Format string

const (
	// FormatShell targets base16-shell scripts.
	FormatShell Format = "shell"

	// FormatVim targets base16-vim colour schemes.
	FormatVim Format = "vim"
)

// Default locations for the base16-shell and base16-vim checkouts the
// rendered files are installed into.
const (
	DefaultShellDir = "~/.config/base16-shell"
	DefaultVimDir   = "~/.config/nvim/plugged/base16-vim"
)

// CanonicalName strips a leading "base16-" prefix so theme names do not
// double it; the rendered filenames add the prefix back.
func CanonicalName(name string) string {
	return strings.TrimPrefix(name, "base16-")
}

// template returns the embedded template text for a format.
func template(format Format) (string, error) {
	var path string
	switch format {
	case FormatShell:
		path = "templates/shell.txt"
	case FormatVim:
		path = "templates/vim.txt"
	default:
		return "", fmt.Errorf("unknown theme format: %q", format)
	}
	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template: %w", err)
	}
	return string(data), nil
}

// Render substitutes the theme name and every catalog slot's colour tokens
// into the template for the given format. Templates carry tokens of the
// form __color00__ and __hashed_color00__; shell themes take
// slash-separated hex components, vim plain hex plus a hashed form.
func Render(format Format, name string, assignment colour.PaletteAssignment) (string, error) {
	text, err := template(format)
	if err != nil {
		return "", err
	}

	text = strings.ReplaceAll(text, "__theme_name__", CanonicalName(name))

	for _, slot := range colour.Slots() {
		c, ok := assignment[slot]
		if !ok {
			return "", fmt.Errorf("assignment is missing slot %s", slot)
		}

		hashed := fmt.Sprintf("__hashed_%s__", slot)
		plain := fmt.Sprintf("__%s__", slot)

		switch format {
		case FormatShell:
			text = strings.ReplaceAll(text, plain, c.HexSeparated("/"))
		case FormatVim:
			text = strings.ReplaceAll(text, hashed, c.Hex())
			text = strings.ReplaceAll(text, plain, c.HexSeparated(""))
		}
	}

	// Leftover tokens mean the template references slots outside the
	// catalog; better to fail than to ship a broken theme file.
	if strings.Contains(text, "__color") || strings.Contains(text, "__hashed_color") {
		return "", fmt.Errorf("%s template contains unresolved colour tokens", format)
	}

	return text, nil
}

// SaveOptions configures where rendered themes are written.
type SaveOptions struct {
	// Shell and Vim select which formats to write. At least one must be
	// enabled.
	Shell bool
	Vim   bool

	// ShellDir and VimDir override the default base16-shell / base16-vim
	// directories. Leading "~" is expanded.
	ShellDir string
	VimDir   string

	// DryRun renders without writing and logs the would-be paths.
	DryRun bool

	Logger hclog.Logger
}

// Save renders the assignment into the enabled formats and writes the
// theme files. It returns the paths written (or, under DryRun, the paths
// that would have been written).
func Save(name string, assignment colour.PaletteAssignment, opts SaveOptions) ([]string, error) {
	if !opts.Shell && !opts.Vim {
		return nil, fmt.Errorf("no output format selected: enable shell or vim")
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	type target struct {
		format Format
		dir    string
		subdir string
		suffix string
	}

	targets := make([]target, 0, 2)
	if opts.Shell {
		dir := opts.ShellDir
		if dir == "" {
			dir = DefaultShellDir
		}
		targets = append(targets, target{format: FormatShell, dir: dir, subdir: "scripts", suffix: ".sh"})
	}
	if opts.Vim {
		dir := opts.VimDir
		if dir == "" {
			dir = DefaultVimDir
		}
		targets = append(targets, target{format: FormatVim, dir: dir, subdir: "colors", suffix: ".vim"})
	}

	written := make([]string, 0, len(targets))
	for _, tgt := range targets {
		content, err := Render(tgt.format, name, assignment)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s theme: %w", tgt.format, err)
		}

		dir, err := expandHome(tgt.dir)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, tgt.subdir, fmt.Sprintf("base16-%s%s", CanonicalName(name), tgt.suffix))

		if opts.DryRun {
			logger.Info("dry run: would write theme file", "format", tgt.format, "path", path)
			written = append(written, path)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create theme directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s theme: %w", tgt.format, err)
		}

		logger.Debug("wrote theme file", "format", tgt.format, "path", path)
		written = append(written, path)
	}

	return written, nil
}

// expandHome expands a leading "~" to the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
