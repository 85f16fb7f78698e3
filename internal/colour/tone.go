package colour

import "fmt"

// Tone describes whether a theme's background should be dark or light.
// It drives both the filter sort direction and the slot assignment order.
type Tone int

const (
	// ToneDark selects a dark background with light foreground text.
	ToneDark Tone = iota

	// ToneLight selects a light background with dark foreground text.
	ToneLight
)

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneDark:
		return "dark"
	case ToneLight:
		return "light"
	default:
		return fmt.Sprintf("Tone(%d)", int(t))
	}
}

// ParseTone parses a tone name. An empty string or "auto" returns ok=false,
// meaning the tone should be detected from the image's dominant colour.
func ParseTone(s string) (tone Tone, ok bool, err error) {
	switch s {
	case "", "auto":
		return ToneDark, false, nil
	case "dark":
		return ToneDark, true, nil
	case "light":
		return ToneLight, true, nil
	default:
		return ToneDark, false, fmt.Errorf("invalid tone: %q (valid: auto, dark, light)", s)
	}
}

// ToneFor returns the tone implied by a dominant colour: dark when the
// average channel value sits below the midpoint.
func ToneFor(dominant RGB) Tone {
	if float64(dominant.Brightness())/3 < 255.0/2 {
		return ToneDark
	}
	return ToneLight
}

// BoundByIntensity drops candidates whose average channel value falls
// outside the intensity-scaled brightness range for the tone. Intensity is
// a percentage; 100 admits the full range on the tone's open side.
//
// When auto is true the range is pinned to the dominant (first) candidate's
// brightness on one side, so the background colour itself always survives.
func BoundByIntensity(candidates []RGB, tone Tone, auto bool, intensity int) []RGB {
	if len(candidates) == 0 {
		return nil
	}
	if intensity <= 0 || intensity > 100 {
		intensity = 100
	}

	var lower, upper float64
	switch {
	case auto:
		background := float64(candidates[0].Brightness()) / 3
		if tone == ToneDark {
			lower, upper = background, 255*float64(intensity)/100
		} else {
			lower, upper = 255*(1-float64(intensity)/100), background
		}
	case tone == ToneDark:
		lower, upper = 255*(1-float64(intensity)/100), 255
	default:
		lower, upper = 0, 255*float64(intensity)/100
	}

	bounded := make([]RGB, 0, len(candidates))
	for _, c := range candidates {
		avg := float64(c.Brightness()) / 3
		if avg >= lower && avg <= upper {
			bounded = append(bounded, c)
		}
	}
	return bounded
}
