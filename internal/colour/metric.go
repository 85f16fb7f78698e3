package colour

import (
	"errors"
	"fmt"
)

// Metric identifies a scoring rule used to rank palette colours for a
// slot. The set is closed: each metric maps to a pure scoring function, and
// higher scores are better.
type Metric int

const (
	// MetricDark favours colours with the smallest channel sum.
	MetricDark Metric = iota

	// MetricLight favours colours with the largest channel sum.
	MetricLight

	// MetricRed through MetricYellow favour colours whose target channels
	// dominate the remaining ones. Composite hues use two channels:
	// cyan=green+blue, magenta=red+blue, yellow=red+green.
	MetricRed
	MetricGreen
	MetricBlue
	MetricCyan
	MetricMagenta
	MetricYellow
)

// Channel identifies one of the three RGB channels for prominence scoring.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

// ErrInvalidHue is returned when prominence scoring is requested for a
// channel outside red, green and blue. This is a programmer error: the slot
// catalog is validated at package init, so it cannot arise on a data path.
var ErrInvalidHue = errors.New("invalid hue selection")

// metricChannels maps each hue metric to its desired channels.
var metricChannels = map[Metric][]Channel{
	MetricRed:     {ChannelRed},
	MetricGreen:   {ChannelGreen},
	MetricBlue:    {ChannelBlue},
	MetricCyan:    {ChannelGreen, ChannelBlue},
	MetricMagenta: {ChannelRed, ChannelBlue},
	MetricYellow:  {ChannelRed, ChannelGreen},
}

// Prominence scores a colour by how strongly the desired channels dominate
// the others: the minimum difference between any desired and any undesired
// channel. A colour where both target channels clear every non-target
// channel scores high; a colour dominated by an unwanted channel scores
// negative.
func Prominence(c RGB, desired []Channel) (int, error) {
	if len(desired) == 0 {
		return 0, fmt.Errorf("%w: no channels selected", ErrInvalidHue)
	}
	var want [3]bool
	for _, ch := range desired {
		if ch < ChannelRed || ch > ChannelBlue {
			return 0, fmt.Errorf("%w: channel %d", ErrInvalidHue, ch)
		}
		want[ch] = true
	}
	if want[ChannelRed] && want[ChannelGreen] && want[ChannelBlue] {
		return 0, fmt.Errorf("%w: no undesired channel to compare against", ErrInvalidHue)
	}
	return prominence(c, want), nil
}

// prominence is the unchecked scoring core; want has at least one desired
// and one undesired channel.
func prominence(c RGB, want [3]bool) int {
	channels := [3]int{int(c.R), int(c.G), int(c.B)}

	lowest := 0
	first := true
	for d, isWanted := range want {
		if !isWanted {
			continue
		}
		for u, alsoWanted := range want {
			if alsoWanted {
				continue
			}
			diff := channels[d] - channels[u]
			if first || diff < lowest {
				lowest = diff
				first = false
			}
		}
	}
	return lowest
}

// score returns the metric's value for a colour. The assigner always takes
// the maximum-scoring remaining colour for each slot.
func (m Metric) score(c RGB) int {
	switch m {
	case MetricDark:
		return -c.Brightness()
	case MetricLight:
		return c.Brightness()
	default:
		var want [3]bool
		for _, ch := range metricChannels[m] {
			want[ch] = true
		}
		return prominence(c, want)
	}
}

// String returns the metric name.
func (m Metric) String() string {
	switch m {
	case MetricDark:
		return "dark"
	case MetricLight:
		return "light"
	case MetricRed:
		return "red"
	case MetricGreen:
		return "green"
	case MetricBlue:
		return "blue"
	case MetricCyan:
		return "cyan"
	case MetricMagenta:
		return "magenta"
	case MetricYellow:
		return "yellow"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

func init() {
	// The hue metrics and the reuse policy are static tables; verify they
	// agree with the channel catalog before anything can score with them.
	for metric, channels := range metricChannels {
		if _, err := Prominence(RGB{}, channels); err != nil {
			panic(fmt.Sprintf("colour: bad channel set for metric %s: %v", metric, err))
		}
	}
	for slot, rule := range reusePolicy {
		if rule.copyOf == "" && len(rule.among) == 0 {
			panic(fmt.Sprintf("colour: empty reuse rule for slot %s", slot))
		}
	}
}
