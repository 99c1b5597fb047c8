package controller

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/mayannaise/intellilight/internal/journal"
	"github.com/mayannaise/intellilight/internal/kasa"
	"github.com/mayannaise/intellilight/internal/power"
	"github.com/mayannaise/intellilight/internal/scale"
	"github.com/mayannaise/intellilight/internal/transport"
)

// hysteresisBand is the minimum change, in brightness percentage
// points or hue degrees, before a new value is commanded. Keeps
// sensor jitter from spamming the bulb.
const hysteresisBand = 10

// fixedSaturation is the saturation percent sent with every colour
// command; brightness is controlled separately.
const fixedSaturation = 50

// State holds the last commanded bulb state. It is owned exclusively
// by the Machine and resets to zero values on every boot - deep sleep
// ends the process, so nothing carries over a wake.
type State struct {
	On         bool
	Brightness int     // percent, [0,100]
	Hue        float64 // degrees, [0,360)
}

// Readings is one cycle's worth of sensor input.
type Readings struct {
	IntFlag   int
	Proximity int
	Ambient   int
	Hue       float64 // room colour hue from the colour sensor, degrees
}

// Recorder journals issued commands and lifecycle events. May be nil
// when journaling is disabled.
type Recorder interface {
	Append(eventType journal.EventType, payload string) error
}

// Machine decides, once per cycle, whether the bulb needs new
// commands and whether the device should enter deep sleep.
type Machine struct {
	state     State
	threshold int
	alsScale  scale.Scale

	sender  transport.Sender
	sleeper power.Manager
	rec     Recorder
}

// NewMachine creates a state machine with the bulb assumed off.
func NewMachine(threshold int, alsScale scale.Scale, sender transport.Sender, sleeper power.Manager, rec Recorder) *Machine {
	return &Machine{
		threshold: threshold,
		alsScale:  alsScale,
		sender:    sender,
		sleeper:   sleeper,
		rec:       rec,
	}
}

// ForceOff commands the bulb off regardless of hysteresis. Called
// once at startup so the recorded state and the bulb agree.
func (m *Machine) ForceOff() {
	log.Info().Msg("Turning off smartbulb")
	m.send(kasa.Power(false))
	m.state.On = false
}

// Evaluate runs one control cycle. The on/off decision comes first;
// an ON→OFF edge enters deep sleep and, on real hardware, never
// returns. Brightness and colour are only considered while on.
func (m *Machine) Evaluate(r Readings) {
	requestedOn := r.Proximity > m.threshold
	if requestedOn != m.state.On {
		if requestedOn {
			log.Info().Int("proximity", r.Proximity).Msg("Turning on smartbulb")
		} else {
			log.Info().Int("proximity", r.Proximity).Msg("Turning off smartbulb")
		}
		m.send(kasa.Power(requestedOn))
		m.state.On = requestedOn

		if !requestedOn {
			// Wait for the proximity interrupt to wake us again.
			m.record(journal.EventSleep, "")
			m.sleeper.Sleep()
			// Only reachable with a non-terminating sleeper (tests);
			// nothing else may run in this cycle.
			return
		}
	}

	// If the bulb is off, don't bother setting colour and brightness.
	if !m.state.On {
		return
	}

	brightness := scale.Reading(r.Ambient, m.alsScale)
	if abs(brightness-m.state.Brightness) > hysteresisBand {
		log.Info().Int("brightness", brightness).Msg("Setting smartbulb brightness")
		m.send(kasa.Brightness(brightness))
		m.state.Brightness = brightness
	}

	// No wraparound correction: a jump across the 0/360 boundary can
	// exceed the band even when perceptually close. Accepted policy.
	if math.Abs(m.state.Hue-r.Hue) > hysteresisBand {
		hue := int(math.Round(r.Hue)) % 360
		log.Info().Int("hue", hue).Msg("Setting smartbulb hue")
		m.send(kasa.Colour(hue, fixedSaturation))
		m.state.Hue = r.Hue
	}
}

// send delivers a payload and journals the outcome. A failed send is
// logged but not retried, and the caller still updates the recorded
// state; the next change-triggering reading resynchronizes the bulb.
func (m *Machine) send(payload string) {
	if err := m.sender.Send(payload); err != nil {
		log.Error().Err(err).Str("payload", payload).Msg("Failed to send bulb command")
		m.record(journal.EventCommandFailed, payload)
		return
	}
	m.record(journal.EventCommandSent, payload)
}

func (m *Machine) record(eventType journal.EventType, payload string) {
	if m.rec == nil {
		return
	}
	if err := m.rec.Append(eventType, payload); err != nil {
		log.Warn().Err(err).Msg("Failed to journal event")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
