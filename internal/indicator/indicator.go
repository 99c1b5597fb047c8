// Package indicator drives the status LEDs. The control loop uses it
// fire-and-forget: red while connecting, blue while waiting for the
// network, green toggled off around colour-sensor reads to avoid
// feedback.
package indicator

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Channel identifies one status LED.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// String returns a human-readable name for the channel.
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// Indicator sets status LED channels. Implementations must not block.
type Indicator interface {
	Set(ch Channel, on bool)
}

// GPIO drives the LEDs through the sysfs GPIO value files. Pins must
// already be exported and configured as outputs by the platform setup.
type GPIO struct {
	pins map[Channel]int
}

// NewGPIO creates a GPIO indicator from a channel-to-pin mapping.
func NewGPIO(red, green, blue int) *GPIO {
	return &GPIO{pins: map[Channel]int{
		Red:   red,
		Green: green,
		Blue:  blue,
	}}
}

// Set writes the LED state. Failures are logged and swallowed; the
// indicator has no return contract.
func (g *GPIO) Set(ch Channel, on bool) {
	value := "0"
	if on {
		value = "1"
	}

	path := fmt.Sprintf("/sys/class/gpio/gpio%d/value", g.pins[ch])
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		log.Warn().Err(err).Str("channel", ch.String()).Msg("Failed to set indicator")
	}
}

// Noop ignores all indicator requests. Used with the simulated
// gateway where no LEDs exist.
type Noop struct{}

// Set does nothing.
func (Noop) Set(ch Channel, on bool) {}
