package colour

import (
	"math"
	"testing"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSV
	}{
		{
			name: "black",
			rgb:  RGB{0, 0, 0},
			want: HSV{H: 0, S: 0, V: 0},
		},
		{
			name: "white",
			rgb:  RGB{255, 255, 255},
			want: HSV{H: 0, S: 0, V: 1},
		},
		{
			name: "red",
			rgb:  RGB{255, 0, 0},
			want: HSV{H: 0, S: 1, V: 1},
		},
		{
			name: "green",
			rgb:  RGB{0, 255, 0},
			want: HSV{H: 120, S: 1, V: 1},
		},
		{
			name: "blue",
			rgb:  RGB{0, 0, 255},
			want: HSV{H: 240, S: 1, V: 1},
		},
		{
			name: "yellow",
			rgb:  RGB{255, 255, 0},
			want: HSV{H: 60, S: 1, V: 1},
		},
		{
			name: "grey",
			rgb:  RGB{128, 128, 128},
			want: HSV{H: 0, S: 0, V: 128.0 / 255},
		},
		{
			name: "magenta",
			rgb:  RGB{255, 0, 255},
			want: HSV{H: 300, S: 1, V: 1},
		},
	}

	const eps = 1e-9

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSV(tt.rgb)
			if math.Abs(got.H-tt.want.H) > eps ||
				math.Abs(got.S-tt.want.S) > eps ||
				math.Abs(got.V-tt.want.V) > eps {
				t.Errorf("RGBToHSV(%v) = %+v, want %+v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestRGBToHSVHueRange(t *testing.T) {
	// Hue must always land in [0,360), whatever the input channels.
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				hsv := RGBToHSV(RGB{uint8(r), uint8(g), uint8(b)})
				if hsv.H < 0 || hsv.H >= 360 {
					t.Fatalf("RGBToHSV(%d,%d,%d).H = %f, out of [0,360)", r, g, b, hsv.H)
				}
			}
		}
	}
}
