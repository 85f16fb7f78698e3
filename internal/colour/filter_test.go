package colour

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

// rampPalette returns count distinct colours with strictly increasing
// brightness, darkest first.
func rampPalette(count int) []RGB {
	colours := make([]RGB, count)
	for i := range colours {
		colours[i] = RGB{R: uint8(i * 16), G: uint8(i * 8), B: uint8(i * 4)}
	}
	return colours
}

// scenarioColours is a set of exactly eight pairwise-distinct colours
// spread across brightness and hue: near-black, near-white, and the six
// accent hues.
func scenarioColours() []RGB {
	return []RGB{
		{R: 10, G: 10, B: 10},
		{R: 250, G: 250, B: 250},
		{R: 200, G: 30, B: 30},
		{R: 30, G: 200, B: 30},
		{R: 30, G: 30, B: 200},
		{R: 200, G: 200, B: 30},
		{R: 200, G: 30, B: 200},
		{R: 30, G: 200, B: 200},
	}
}

func contains(colours []RGB, c RGB) bool {
	for _, have := range colours {
		if have == c {
			return true
		}
	}
	return false
}

func TestFilterExactTarget(t *testing.T) {
	candidates := rampPalette(16)

	result, err := Filter(candidates, ToneDark, FilterOptions{})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if len(result.Colours) != 16 {
		t.Fatalf("got %d colours, want 16", len(result.Colours))
	}
	if result.Degraded {
		t.Error("palette reported degraded with a full candidate set")
	}

	// Dark tone: the darkest candidate anchors the palette.
	if result.Colours[0] != (RGB{}) {
		t.Errorf("anchor = %v, want black", result.Colours[0])
	}

	// Every returned colour came from the input.
	for _, c := range result.Colours {
		if !contains(candidates, c) {
			t.Errorf("colour %v not present in input", c)
		}
	}
}

func TestFilterLightTone(t *testing.T) {
	result, err := Filter(rampPalette(16), ToneLight, FilterOptions{})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if len(result.Colours) != 16 {
		t.Fatalf("got %d colours, want 16", len(result.Colours))
	}

	// Light tone: the brightest candidate anchors the palette.
	want := RGB{R: 240, G: 120, B: 60}
	if result.Colours[0] != want {
		t.Errorf("anchor = %v, want %v", result.Colours[0], want)
	}
}

func TestFilterEmptyInput(t *testing.T) {
	result, err := Filter(nil, ToneDark, FilterOptions{})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if len(result.Colours) != 0 {
		t.Errorf("got %d colours, want 0", len(result.Colours))
	}
}

func TestFilterInsufficientColours(t *testing.T) {
	// Eight identical triples hold exactly one distinct colour.
	identical := make([]RGB, 8)

	_, err := Filter(identical, ToneDark, FilterOptions{})
	if !errors.Is(err, ErrInsufficientColours) {
		t.Fatalf("error = %v, want ErrInsufficientColours", err)
	}
}

func TestFilterDegradedPalette(t *testing.T) {
	tests := []struct {
		name       string
		candidates []RGB
		want       int
	}{
		{name: "eight distinct", candidates: scenarioColours(), want: 8},
		{
			name: "ten distinct",
			candidates: append(scenarioColours(),
				RGB{R: 120, G: 120, B: 120},
				RGB{R: 80, G: 40, B: 160},
			),
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Filter(tt.candidates, ToneDark, FilterOptions{})
			if err != nil {
				t.Fatalf("Filter() error: %v", err)
			}
			if len(result.Colours) != tt.want {
				t.Fatalf("got %d colours, want %d", len(result.Colours), tt.want)
			}
			if !result.Degraded {
				t.Error("expected a degraded palette")
			}
			for _, c := range tt.candidates {
				if !contains(result.Colours, c) {
					t.Errorf("distinct colour %v was dropped", c)
				}
			}
		})
	}
}

func TestFilterDominantAnchor(t *testing.T) {
	// The most dominant colour leads the candidate list but is far from
	// the darkest: it must still anchor the palette.
	dominant := RGB{R: 240, G: 120, B: 60}
	candidates := append([]RGB{dominant}, rampPalette(15)...)

	result, err := Filter(candidates, ToneDark, FilterOptions{DominantAnchor: true})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if len(result.Colours) != 16 {
		t.Fatalf("got %d colours, want 16", len(result.Colours))
	}
	if result.Colours[0] != dominant {
		t.Errorf("anchor = %v, want dominant colour %v", result.Colours[0], dominant)
	}
}

func TestFilterDeterminism(t *testing.T) {
	candidates := append(scenarioColours(), RGB{R: 120, G: 120, B: 120})

	first, err := Filter(candidates, ToneDark, FilterOptions{})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	second, err := Filter(candidates, ToneDark, FilterOptions{})
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}

	if len(first.Colours) != len(second.Colours) {
		t.Fatalf("runs disagree on size: %d vs %d", len(first.Colours), len(second.Colours))
	}
	for i := range first.Colours {
		if first.Colours[i] != second.Colours[i] {
			t.Errorf("position %d differs: %v vs %v", i, first.Colours[i], second.Colours[i])
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	candidates := scenarioColours()
	original := append([]RGB(nil), candidates...)

	if _, err := Filter(candidates, ToneDark, FilterOptions{}); err != nil {
		t.Fatalf("Filter() error: %v", err)
	}

	for i := range candidates {
		if candidates[i] != original[i] {
			t.Fatalf("input mutated at %d: %v vs %v", i, candidates[i], original[i])
		}
	}
}

// clusterPalette returns a black anchor plus seventeen colours spaced one
// unit apart. The threshold search can keep either ten or all eighteen of
// them but never exactly sixteen, so the filter finishes above target.
func clusterPalette() []RGB {
	colours := []RGB{{}}
	for i := 0; i < 17; i++ {
		colours = append(colours, RGB{R: uint8(230 + i), G: 230, B: 230})
	}
	return colours
}

func TestFilterWarnsOnlyWhenDegraded(t *testing.T) {
	newLogger := func(buf *bytes.Buffer) hclog.Logger {
		return hclog.New(&hclog.LoggerOptions{Output: buf, Level: hclog.Info})
	}

	t.Run("undershoot warns", func(t *testing.T) {
		var buf bytes.Buffer
		result, err := Filter(scenarioColours(), ToneDark, FilterOptions{Logger: newLogger(&buf)})
		if err != nil {
			t.Fatalf("Filter() error: %v", err)
		}
		if !result.Degraded {
			t.Fatal("expected a degraded palette")
		}
		if !strings.Contains(buf.String(), "could not reach target palette size") {
			t.Errorf("missing degraded warning in log output:\n%s", buf.String())
		}
	})

	t.Run("overshoot does not warn", func(t *testing.T) {
		var buf bytes.Buffer
		result, err := Filter(clusterPalette(), ToneDark, FilterOptions{Logger: newLogger(&buf)})
		if err != nil {
			t.Fatalf("Filter() error: %v", err)
		}
		if len(result.Colours) <= 16 {
			t.Fatalf("got %d colours, want more than 16", len(result.Colours))
		}
		if result.Degraded {
			t.Error("palette above target reported degraded")
		}
		if strings.Contains(buf.String(), "could not reach target palette size") {
			t.Errorf("unexpected degraded warning in log output:\n%s", buf.String())
		}
	})
}

func TestFilterBySimilarity(t *testing.T) {
	colours := []RGB{
		{R: 10, G: 10, B: 10},
		{R: 11, G: 10, B: 10}, // near-duplicate of the anchor
		{R: 250, G: 250, B: 250},
	}

	// A moderate threshold drops the near-duplicate but keeps the
	// distinct colour.
	kept := filterBySimilarity(colours, 0.9)
	if len(kept) != 2 {
		t.Fatalf("got %d colours, want 2: %v", len(kept), kept)
	}
	if kept[0] != colours[0] || kept[1] != colours[2] {
		t.Errorf("kept = %v", kept)
	}

	if kept := filterBySimilarity(nil, 0.5); kept != nil {
		t.Errorf("empty input: got %v, want nil", kept)
	}
}
