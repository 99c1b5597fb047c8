package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
bulb:
  host: 192.168.1.50
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Bulb.Transport != "kasa" {
		t.Errorf("transport = %s, want kasa", cfg.Bulb.Transport)
	}
	if cfg.Controller.ProximityThreshold != 40 {
		t.Errorf("proximity_threshold = %d, want 40", cfg.Controller.ProximityThreshold)
	}
	want := ScaleConfig{MinRaw: 10, MaxRaw: 70, MinScaled: 20, MaxScaled: 100}
	if cfg.Controller.AmbientScale != want {
		t.Errorf("ambient_scale = %+v, want %+v", cfg.Controller.AmbientScale, want)
	}
	if cfg.Controller.Settle.Duration() != 500*time.Millisecond {
		t.Errorf("settle = %v, want 500ms", cfg.Controller.Settle.Duration())
	}
	if cfg.Power.WakePin != 4 {
		t.Errorf("wake_pin = %d, want 4", cfg.Power.WakePin)
	}
	if cfg.Sensors.Script != "sensors.lua" {
		t.Errorf("script = %s, want sensors.lua", cfg.Sensors.Script)
	}
}

func TestLoadDurationAndOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
bulb:
  transport: mqtt
  timeout: 2s
  mqtt:
    broker: tcp://broker:1883
controller:
  proximity_threshold: 55
  settle: 250ms
`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Bulb.Transport != "mqtt" {
		t.Errorf("transport = %s, want mqtt", cfg.Bulb.Transport)
	}
	if cfg.Bulb.Timeout.Duration() != 2*time.Second {
		t.Errorf("timeout = %v, want 2s", cfg.Bulb.Timeout.Duration())
	}
	if cfg.Controller.ProximityThreshold != 55 {
		t.Errorf("proximity_threshold = %d, want 55", cfg.Controller.ProximityThreshold)
	}
	if cfg.Controller.Settle.Duration() != 250*time.Millisecond {
		t.Errorf("settle = %v, want 250ms", cfg.Controller.Settle.Duration())
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("INTELLILIGHT_BULB", "10.0.0.9")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "set_variable", input: "host: ${INTELLILIGHT_BULB}", want: "host: 10.0.0.9"},
		{name: "unset_with_default", input: "host: ${NO_SUCH_VAR:fallback}", want: "host: fallback"},
		{name: "unset_no_default", input: "host: ${NO_SUCH_VAR}", want: "host: "},
		{name: "no_expansion", input: "host: plain", want: "host: plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnvVars(tt.input); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
