package colour

import (
	"image/color"
	"math"
	"testing"
)

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "black", rgb: RGB{}, want: "#000000"},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: "#ffffff"},
		{name: "mixed", rgb: RGB{R: 26, G: 43, B: 60}, want: "#1a2b3c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRGBHexSeparated(t *testing.T) {
	tests := []struct {
		name      string
		rgb       RGB
		separator string
		want      string
	}{
		{name: "shell format", rgb: RGB{R: 26, G: 43, B: 60}, separator: "/", want: "1a/2b/3c"},
		{name: "no separator", rgb: RGB{R: 26, G: 43, B: 60}, separator: "", want: "1a2b3c"},
		{name: "padding", rgb: RGB{R: 0, G: 10, B: 255}, separator: "/", want: "00/0a/ff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.HexSeparated(tt.separator); got != tt.want {
				t.Errorf("HexSeparated(%q) = %q, want %q", tt.separator, got, tt.want)
			}
		})
	}
}

func TestToRGB(t *testing.T) {
	c := color.RGBA{R: 200, G: 30, B: 30, A: 255}
	got := ToRGB(c)
	want := RGB{R: 200, G: 30, B: 30}
	if got != want {
		t.Errorf("ToRGB() = %v, want %v", got, want)
	}
}

func TestBrightness(t *testing.T) {
	if got := (RGB{R: 10, G: 20, B: 30}).Brightness(); got != 60 {
		t.Errorf("Brightness() = %d, want 60", got)
	}
	if got := (RGB{R: 255, G: 255, B: 255}).Brightness(); got != 765 {
		t.Errorf("Brightness() = %d, want 765", got)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		c1, c2 RGB
		want   float64
	}{
		{name: "identical", c1: RGB{R: 100, G: 150, B: 200}, c2: RGB{R: 100, G: 150, B: 200}, want: 1},
		{name: "black vs white", c1: RGB{}, c2: RGB{R: 255, G: 255, B: 255}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.c1, tt.c2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity() = %f, want %f", got, tt.want)
			}
		})
	}

	// Similarity is symmetric and always within [0, 1].
	a, b := RGB{R: 200, G: 30, B: 30}, RGB{R: 30, G: 200, B: 30}
	if Similarity(a, b) != Similarity(b, a) {
		t.Error("Similarity is not symmetric")
	}
	if s := Similarity(a, b); s < 0 || s > 1 {
		t.Errorf("Similarity out of range: %f", s)
	}
}

func TestToneFor(t *testing.T) {
	if got := ToneFor(RGB{R: 10, G: 10, B: 10}); got != ToneDark {
		t.Errorf("ToneFor(dark colour) = %v, want dark", got)
	}
	if got := ToneFor(RGB{R: 250, G: 250, B: 250}); got != ToneLight {
		t.Errorf("ToneFor(light colour) = %v, want light", got)
	}
}

func TestParseTone(t *testing.T) {
	tests := []struct {
		input    string
		tone     Tone
		explicit bool
		wantErr  bool
	}{
		{input: "dark", tone: ToneDark, explicit: true},
		{input: "light", tone: ToneLight, explicit: true},
		{input: "auto", explicit: false},
		{input: "", explicit: false},
		{input: "sepia", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tone, ok, err := ParseTone(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.explicit {
				t.Errorf("explicit = %v, want %v", ok, tt.explicit)
			}
			if tt.explicit && tone != tt.tone {
				t.Errorf("tone = %v, want %v", tone, tt.tone)
			}
		})
	}
}

func TestBoundByIntensity(t *testing.T) {
	candidates := []RGB{
		{R: 10, G: 10, B: 10},    // avg 10
		{R: 100, G: 100, B: 100}, // avg 100
		{R: 250, G: 250, B: 250}, // avg 250
	}

	t.Run("auto dark pins lower bound to dominant", func(t *testing.T) {
		got := BoundByIntensity(candidates, ToneDark, true, 100)
		// Dominant (avg 10) survives; everything at or above it does too.
		if len(got) != 3 {
			t.Fatalf("got %d candidates, want 3", len(got))
		}
		if got[0] != candidates[0] {
			t.Errorf("dominant colour dropped: %v", got)
		}
	})

	t.Run("explicit light caps upper bound", func(t *testing.T) {
		got := BoundByIntensity(candidates, ToneLight, false, 50)
		// Upper bound is 127.5, so only avgs 10 and 100 survive.
		if len(got) != 2 {
			t.Fatalf("got %d candidates, want 2: %v", len(got), got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := BoundByIntensity(nil, ToneDark, true, 100); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}
