// Package power manages the deep-sleep lifecycle: arming the hardware
// wake source at startup and entering deep sleep on the ON→OFF edge.
// Waking from deep sleep is a cold process start; no in-memory state
// survives it.
package power

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Manager arms the wake source and enters deep sleep.
type Manager interface {
	// Arm configures the wake interrupt source. Called once during
	// startup, before any sleep transition can happen.
	Arm() error
	// Sleep enters deep sleep. The real implementation never
	// returns: the process ends and the next observable event is a
	// fresh start triggered by the armed wake source.
	Sleep()
}

// GPIOSleeper arms a GPIO wake pin via sysfs (falling-edge trigger,
// matching the proximity sensor's active-low INT line) and suspends
// the host. The process exits after the suspend request so the
// supervisor restarts it cold on wake, mirroring the
// deep-sleep-as-reset model.
type GPIOSleeper struct {
	wakePin int

	// onSleep runs just before suspend so owners can flush and close
	// resources (journal, transport).
	onSleep func()
}

// NewGPIOSleeper creates a sleeper waking on the given GPIO pin.
func NewGPIOSleeper(wakePin int, onSleep func()) *GPIOSleeper {
	return &GPIOSleeper{wakePin: wakePin, onSleep: onSleep}
}

// Arm exports the wake pin and configures it as a falling-edge wake
// source.
func (m *GPIOSleeper) Arm() error {
	base := fmt.Sprintf("/sys/class/gpio/gpio%d", m.wakePin)

	if _, err := os.Stat(base); os.IsNotExist(err) {
		if err := os.WriteFile("/sys/class/gpio/export", []byte(fmt.Sprintf("%d", m.wakePin)), 0o644); err != nil {
			return fmt.Errorf("failed to export wake pin %d: %w", m.wakePin, err)
		}
	}

	if err := os.WriteFile(base+"/direction", []byte("in"), 0o644); err != nil {
		return fmt.Errorf("failed to configure wake pin direction: %w", err)
	}
	// Trigger on logic low from the proximity sensor's INT line.
	if err := os.WriteFile(base+"/edge", []byte("falling"), 0o644); err != nil {
		return fmt.Errorf("failed to configure wake pin edge: %w", err)
	}

	log.Info().Int("pin", m.wakePin).Msg("Wake source armed")
	return nil
}

// Sleep suspends the host and terminates the process. It does not
// return.
func (m *GPIOSleeper) Sleep() {
	log.Info().Msg("Entering deep sleep")

	if m.onSleep != nil {
		m.onSleep()
	}

	if err := os.WriteFile("/sys/power/state", []byte("mem"), 0o644); err != nil {
		// Suspend is best-effort: even without it the process must
		// still end here so the restart-on-wake contract holds.
		log.Error().Err(err).Msg("Suspend request failed")
	}

	os.Exit(0)
}

// ExitSleeper models deep sleep without touching the host: the
// process simply ends and the supervisor restarts it. Used with the
// simulated sensor gateway.
type ExitSleeper struct {
	onSleep func()
}

// NewExitSleeper creates a sleeper that only terminates the process.
func NewExitSleeper(onSleep func()) *ExitSleeper {
	return &ExitSleeper{onSleep: onSleep}
}

// Arm is a no-op; there is no hardware wake source to configure.
func (m *ExitSleeper) Arm() error {
	log.Info().Msg("No wake source to arm, restart is manual")
	return nil
}

// Sleep terminates the process. It does not return.
func (m *ExitSleeper) Sleep() {
	log.Info().Msg("Entering deep sleep")

	if m.onSleep != nil {
		m.onSleep()
	}

	os.Exit(0)
}
