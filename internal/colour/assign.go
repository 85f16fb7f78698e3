package colour

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Slot names a Base16 colour slot. The catalog covers color00-color08 and
// color15-color21, the sixteen slots consumed by extended Base16 theme
// formats.
type Slot string

// Named slots with semantic roles. The remaining slots are referred to by
// their literal names.
const (
	SlotBackground Slot = "color00"
	SlotForeground Slot = "color07"
)

// ErrIncompleteAssignment indicates slot assignment could not cover the
// full catalog. With the shipped reuse policy this is an internal
// consistency failure, not a data-dependent condition.
var ErrIncompleteAssignment = errors.New("incomplete slot assignment")

// PaletteAssignment maps every catalog slot to a colour. It is complete by
// construction: Assign either covers the whole catalog or fails.
type PaletteAssignment map[Slot]RGB

// Slots returns the full slot catalog in numeric order, for deterministic
// rendering and preview output.
func Slots() []Slot {
	return []Slot{
		"color00", "color01", "color02", "color03", "color04", "color05",
		"color06", "color07", "color08", "color15", "color16", "color17",
		"color18", "color19", "color20", "color21",
	}
}

// slotMetric pairs a slot with the metric used to rank candidates for it.
type slotMetric struct {
	slot   Slot
	metric Metric
}

// assignmentOrder returns the per-tone slot priority order. Background and
// foreground come first, then the six accent hues, then the extended slots,
// all ranked by the brightness metric matching the tone.
func assignmentOrder(tone Tone) []slotMetric {
	toward, away := MetricDark, MetricLight
	if tone == ToneLight {
		toward, away = away, toward
	}

	return []slotMetric{
		{SlotBackground, toward},
		{SlotForeground, away},
		{"color01", MetricRed},
		{"color02", MetricGreen},
		{"color04", MetricBlue},
		{"color03", MetricYellow},
		{"color05", MetricMagenta},
		{"color06", MetricCyan},
		{"color18", toward},
		{"color19", toward},
		{"color20", toward},
		{"color21", toward},
		{"color15", toward},
		{"color16", toward},
		{"color17", toward},
		{"color08", toward},
	}
}

// accentSlots are the six hue slots, in priority order. Reuse rules pick
// from these once the palette runs out.
var accentSlots = []Slot{"color01", "color02", "color03", "color04", "color05", "color06"}

// reuseRule describes where a slot's colour comes from once the working
// palette is exhausted: either a verbatim copy of another slot, or the
// best-by-metric pick among a set of already-assigned slots. Reused
// colours are not consumed, so they may appear in several slots.
type reuseRule struct {
	copyOf Slot
	among  []Slot
	metric Metric
}

// reusePolicy covers every slot that can be reached with an exhausted
// palette. color00 always consumes the first colour, so it needs no rule;
// every other slot has one, which keeps assignment total for any palette
// of at least one colour.
var reusePolicy = map[Slot]reuseRule{
	SlotForeground: {copyOf: SlotBackground},
	"color01":      {copyOf: SlotForeground},
	"color02":      {copyOf: SlotForeground},
	"color03":      {copyOf: SlotForeground},
	"color04":      {copyOf: SlotForeground},
	"color05":      {copyOf: SlotForeground},
	"color06":      {copyOf: SlotForeground},
	"color08":      {among: accentSlots, metric: MetricDark},
	"color18":      {among: accentSlots, metric: MetricLight},
	"color19":      {copyOf: "color04"},
	"color20":      {copyOf: SlotForeground},
	"color21":      {copyOf: SlotBackground},
	"color15":      {copyOf: "color01"},
	"color16":      {copyOf: "color06"},
	"color17":      {copyOf: "color02"},
}

// AssignOptions configures slot assignment.
type AssignOptions struct {
	// DominantBackground assigns the first palette colour to the
	// background slot verbatim, bypassing the brightness metric. Used
	// together with FilterOptions.DominantAnchor.
	DominantBackground bool
}

// Assign maps a filtered palette onto the Base16 slot catalog.
//
// Slots are filled in priority order: the remaining palette is stable-sorted
// by the slot's metric and the highest-scoring colour is consumed. Once the
// palette is exhausted the reuse policy supplies colours from slots already
// assigned. Given an identical ordered palette and tone the result is
// identical across runs; every tie is broken by stable sort order.
func Assign(palette []RGB, tone Tone, opts AssignOptions) (PaletteAssignment, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrIncompleteAssignment)
	}

	working := append([]RGB(nil), palette...)
	order := assignmentOrder(tone)
	assignment := make(PaletteAssignment, len(order))

	for _, sm := range order {
		if opts.DominantBackground && sm.slot == SlotBackground {
			assignment[sm.slot] = working[0]
			working = working[1:]
			continue
		}

		if len(working) > 0 {
			sortByMetric(working, sm.metric)
			assignment[sm.slot] = working[len(working)-1]
			working = working[:len(working)-1]
			continue
		}

		rule, ok := reusePolicy[sm.slot]
		if !ok {
			return nil, fmt.Errorf("%w: no reuse rule for %s", ErrIncompleteAssignment, sm.slot)
		}
		reused, err := rule.resolve(assignment)
		if err != nil {
			return nil, err
		}
		assignment[sm.slot] = reused
	}

	return assignment, nil
}

// sortByMetric stable-sorts colours ascending by metric score, so the best
// candidate for the slot sits last and can be popped.
func sortByMetric(colours []RGB, metric Metric) {
	sort.SliceStable(colours, func(i, j int) bool {
		return metric.score(colours[i]) < metric.score(colours[j])
	})
}

// resolve produces the reused colour for a rule from the slots assigned so
// far. Copy rules take their source verbatim; metric rules pick the
// highest-scoring colour among the named slots, walking them in order so
// ties resolve to the earliest slot.
func (r reuseRule) resolve(assignment PaletteAssignment) (RGB, error) {
	if r.copyOf != "" {
		c, ok := assignment[r.copyOf]
		if !ok {
			return RGB{}, fmt.Errorf("%w: reuse source %s not yet assigned", ErrIncompleteAssignment, r.copyOf)
		}
		return c, nil
	}

	var best RGB
	bestScore := math.MinInt
	found := false
	for _, slot := range r.among {
		c, ok := assignment[slot]
		if !ok {
			return RGB{}, fmt.Errorf("%w: reuse source %s not yet assigned", ErrIncompleteAssignment, slot)
		}
		if score := r.metric.score(c); !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	if !found {
		return RGB{}, fmt.Errorf("%w: empty reuse rule", ErrIncompleteAssignment)
	}
	return best, nil
}
