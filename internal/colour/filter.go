package colour

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultTargetCount is the number of distinct colours a Base16 theme
	// wants from an image.
	DefaultTargetCount = 16

	// MinPaletteSize is the hard floor: below this no usable theme can be
	// built and filtering fails.
	MinPaletteSize = 8

	// DefaultMaxIterations bounds the similarity-threshold search.
	DefaultMaxIterations = 50
)

// ErrInsufficientColours is returned when fewer than MinPaletteSize
// mutually distinct candidates exist even at the loosest similarity
// threshold. Retrying with the same input is deterministic and will not
// help.
var ErrInsufficientColours = errors.New("insufficient distinct colours")

// FilterOptions configures the distinctness filter.
type FilterOptions struct {
	// TargetCount is the palette size to converge on. Zero means
	// DefaultTargetCount.
	TargetCount int

	// MaxIterations caps the threshold search. Zero means
	// DefaultMaxIterations.
	MaxIterations int

	// DominantAnchor pins the first input candidate (the most dominant
	// colour in the source image) as the filter anchor, instead of the
	// brightness-sorted extreme. The anchor is always retained and becomes
	// the theme background.
	DominantAnchor bool

	// Logger receives a warning when the palette is degraded. Nil means no
	// logging.
	Logger hclog.Logger
}

// FilterResult holds the filtered palette. The anchor colour is always the
// first element.
type FilterResult struct {
	Colours []RGB

	// Degraded reports that fewer than TargetCount distinct colours were
	// found. The theme can still be built; slot assignment will reuse
	// colours for the slots the palette cannot cover.
	Degraded bool
}

// Filter reduces an arbitrary-size candidate set to a palette of
// TargetCount colours that are as mutually distinct as possible.
//
// "Distinctness" is not linearly related to count, so there is no closed
// form mapping a similarity threshold to a retained count. Instead the
// threshold is binary-searched: too few survivors means the threshold is
// too strict, too many means too loose. An exact hit returns immediately;
// otherwise the closest feasible set seen across all iterations is kept.
//
// An empty candidate set yields an empty result without error.
func Filter(candidates []RGB, tone Tone, opts FilterOptions) (FilterResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	target := opts.TargetCount
	if target <= 0 {
		target = DefaultTargetCount
	}
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	if len(candidates) == 0 {
		return FilterResult{}, nil
	}

	working := make([]RGB, 0, len(candidates))
	if opts.DominantAnchor {
		// The dominant colour leads regardless of brightness; only the
		// remainder is sorted.
		working = append(working, candidates[0])
		rest := append([]RGB(nil), candidates[1:]...)
		sortByBrightness(rest, tone)
		working = append(working, rest...)
	} else {
		working = append(working, candidates...)
		sortByBrightness(working, tone)
	}

	left, right := 0.0, 1.0
	var best []RGB

	for i := 0; i < maxIterations; i++ {
		middle := (left + right) / 2
		kept := filterBySimilarity(working, middle)
		n := len(kept)

		switch {
		case n < target:
			left = middle
		case n > target:
			right = middle
		default:
			return FilterResult{Colours: kept}, nil
		}

		if betterCandidate(len(best), n, target) {
			best = kept
		}
	}

	n := len(best)
	if n < MinPaletteSize {
		return FilterResult{}, fmt.Errorf("%w: found %d, need at least %d",
			ErrInsufficientColours, n, MinPaletteSize)
	}

	degraded := n < target
	if degraded {
		logger.Warn("could not reach target palette size", "found", n, "target", target)
	} else if n > target {
		logger.Debug("kept more colours than target", "found", n, "target", target)
	}
	return FilterResult{Colours: best, Degraded: degraded}, nil
}

// betterCandidate reports whether a set of size n is a better fallback than
// the current best of size have. Closer to target wins; on a tie the larger
// set wins, since assignment can always consume surplus colours but has to
// reuse when short.
func betterCandidate(have, n, target int) bool {
	if have == 0 {
		return true
	}
	dHave := abs(have - target)
	dN := abs(n - target)
	if dN != dHave {
		return dN < dHave
	}
	return n > have
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// sortByBrightness orders colours by channel sum, ascending for dark
// themes and descending for light, so the colour most extreme toward the
// desired tone leads and becomes the anchor.
func sortByBrightness(colours []RGB, tone Tone) {
	sort.SliceStable(colours, func(i, j int) bool {
		if tone == ToneDark {
			return colours[i].Brightness() < colours[j].Brightness()
		}
		return colours[i].Brightness() > colours[j].Brightness()
	})
}

// filterBySimilarity keeps the anchor (first) colour unconditionally, then
// walks the remaining candidates in order, discarding any that are more
// similar than threshold to an already-kept colour, or whose brightness
// sits too close to the anchor's. The second rule uses a stricter bound
// (threshold to the fourth power) so near-background colours cannot crowd
// the palette even when they are not similar by Euclidean distance.
func filterBySimilarity(colours []RGB, threshold float64) []RGB {
	if len(colours) == 0 {
		return nil
	}

	anchor := colours[0]
	chosen := []RGB{anchor}
	anchorThreshold := math.Pow(threshold, 4)

	for _, candidate := range colours[1:] {
		if tooSimilar(candidate, chosen, threshold) {
			continue
		}
		if brightnessProximity(candidate, anchor) > anchorThreshold {
			continue
		}
		chosen = append(chosen, candidate)
	}

	return chosen
}

// tooSimilar reports whether a candidate exceeds the similarity threshold
// against any already-chosen colour.
func tooSimilar(candidate RGB, chosen []RGB, threshold float64) bool {
	for _, choice := range chosen {
		if Similarity(candidate, choice) > threshold {
			return true
		}
	}
	return false
}

// brightnessProximity returns how close two colours are in overall
// brightness, as a value in [0, 1] where 1 means identical channel sums.
func brightnessProximity(c, anchor RGB) float64 {
	diff := math.Abs(float64(c.Brightness() - anchor.Brightness()))
	return 1 - diff/(3*255)
}
