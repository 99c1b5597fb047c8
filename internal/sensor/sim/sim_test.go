package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sensors.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGatewayScriptedReadings(t *testing.T) {
	path := writeScript(t, `
function readings(cycle)
    return {
        int_flag = 1,
        r = 255, g = 128, b = 0,
        proximity = 40 + cycle,
        ambient = 35,
    }
end
`)

	g, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer g.Close()

	// Construction primes cycle 0; the first interrupt-flag read
	// advances to cycle 1.
	if got := g.ReadInterruptFlag(); got != 1 {
		t.Errorf("ReadInterruptFlag() = %d, want 1", got)
	}
	if got := g.ReadProximity(); got != 41 {
		t.Errorf("ReadProximity() = %d, want 41", got)
	}
	if got := g.ReadAmbientLight(); got != 35 {
		t.Errorf("ReadAmbientLight() = %d, want 35", got)
	}

	rgb := g.ReadColour()
	if rgb.R != 255 || rgb.G != 128 || rgb.B != 0 {
		t.Errorf("ReadColour() = %+v, want {255 128 0}", rgb)
	}

	// Repeated reads within a cycle see the same sample.
	if got := g.ReadProximity(); got != 41 {
		t.Errorf("second ReadProximity() = %d, want 41", got)
	}

	// Next cycle advances.
	g.ReadInterruptFlag()
	if got := g.ReadProximity(); got != 42 {
		t.Errorf("ReadProximity() after advance = %d, want 42", got)
	}
}

func TestGatewayMissingReadingsFunction(t *testing.T) {
	path := writeScript(t, `x = 1`)

	if _, err := New(path); err == nil {
		t.Error("New() with no readings() should fail")
	}
}

func TestGatewayScriptErrorKeepsSample(t *testing.T) {
	path := writeScript(t, `
function readings(cycle)
    if cycle > 0 then
        error("sensor bus glitch")
    end
    return { int_flag = 0, r = 1, g = 2, b = 3, proximity = 10, ambient = 20 }
end
`)

	g, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer g.Close()

	// Cycle 1 errors; the cycle-0 sample must survive.
	g.ReadInterruptFlag()
	if got := g.ReadProximity(); got != 10 {
		t.Errorf("ReadProximity() = %d, want 10 (previous sample)", got)
	}
}
