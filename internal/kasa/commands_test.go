package kasa

import "testing"

func TestPower(t *testing.T) {
	tests := []struct {
		name string
		on   bool
		want string
	}{
		{
			name: "on",
			on:   true,
			want: `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"on_off":1}}}`,
		},
		{
			name: "off",
			on:   false,
			want: `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"on_off":0}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Power(tt.on); got != tt.want {
				t.Errorf("Power(%v) = %s, want %s", tt.on, got, tt.want)
			}
		})
	}
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		name    string
		percent int
		want    string
	}{
		{
			name:    "zero",
			percent: 0,
			want:    `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"brightness":0}}}`,
		},
		{
			name:    "mid",
			percent: 53,
			want:    `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"brightness":53}}}`,
		},
		{
			name:    "full",
			percent: 100,
			want:    `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"brightness":100}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Brightness(tt.percent); got != tt.want {
				t.Errorf("Brightness(%d) = %s, want %s", tt.percent, got, tt.want)
			}
		})
	}
}

func TestColour(t *testing.T) {
	got := Colour(120, 50)
	want := `{"smartlife.iot.smartbulb.lightingservice":{"transition_light_state":{"hue":120,"saturation":50}}}`
	if got != want {
		t.Errorf("Colour(120, 50) = %s, want %s", got, want)
	}
}
