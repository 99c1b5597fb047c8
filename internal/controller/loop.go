package controller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mayannaise/intellilight/internal/colour"
	"github.com/mayannaise/intellilight/internal/indicator"
	"github.com/mayannaise/intellilight/internal/sensor"
	"github.com/mayannaise/intellilight/internal/transport"
)

// LoopConfig holds the control loop timing knobs.
type LoopConfig struct {
	// Settle is the delay either side of the colour-sensor read while
	// the green indicator is dark, so its light does not feed back
	// into the reading.
	Settle time.Duration
	// ReadyPoll is the interval at which transport readiness is
	// polled before the loop is entered.
	ReadyPoll time.Duration
	// ReadyTimeout bounds the readiness wait. Zero means wait
	// forever.
	ReadyTimeout time.Duration
}

// Loop is the top-level per-cycle orchestration: acquire readings,
// convert, decide, repeat.
type Loop struct {
	machine *Machine
	gateway sensor.Gateway
	sender  transport.Sender
	ind     indicator.Indicator
	cfg     LoopConfig
}

// NewLoop creates the control loop driver.
func NewLoop(machine *Machine, gateway sensor.Gateway, sender transport.Sender, ind indicator.Indicator, cfg LoopConfig) *Loop {
	return &Loop{
		machine: machine,
		gateway: gateway,
		sender:  sender,
		ind:     ind,
		cfg:     cfg,
	}
}

// Run waits for the network path to the bulb, commands an initial
// off, then cycles until the context is cancelled. On real hardware
// the loop usually ends inside Evaluate via deep sleep instead.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.waitReady(ctx); err != nil {
		return err
	}

	// Start from a known bulb state.
	l.machine.ForceOff()

	log.Info().Msg("Entering main loop")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := l.cycle(ctx); err != nil {
			return err
		}
	}
}

// cycle runs one acquisition/decision pass.
func (l *Loop) cycle(ctx context.Context) error {
	// Darken the green indicator around the colour read to avoid
	// feedback into the colour sensor.
	l.ind.Set(indicator.Green, false)
	if err := l.wait(ctx, l.cfg.Settle); err != nil {
		return err
	}

	intFlag := l.gateway.ReadInterruptFlag()
	rgb := l.gateway.ReadColour()
	proximity := l.gateway.ReadProximity()
	ambient := l.gateway.ReadAmbientLight()

	if err := l.wait(ctx, l.cfg.Settle); err != nil {
		return err
	}
	l.ind.Set(indicator.Green, true)

	hsv := colour.RGBToHSV(rgb)

	log.Debug().
		Uint8("r", rgb.R).Uint8("g", rgb.G).Uint8("b", rgb.B).
		Int("proximity", proximity).
		Int("ambient", ambient).
		Int("int_flag", intFlag).
		Msg("Sensor readings")

	l.machine.Evaluate(Readings{
		IntFlag:   intFlag,
		Proximity: proximity,
		Ambient:   ambient,
		Hue:       hsv.H,
	})

	return nil
}

// waitReady polls the transport until the bulb is reachable, lighting
// the blue indicator while it waits.
func (l *Loop) waitReady(ctx context.Context) error {
	if l.sender.Ready() {
		return nil
	}

	log.Info().Msg("Waiting for connection to smartbulb")
	l.ind.Set(indicator.Blue, true)
	defer l.ind.Set(indicator.Blue, false)

	var deadline <-chan time.Time
	if l.cfg.ReadyTimeout > 0 {
		t := time.NewTimer(l.cfg.ReadyTimeout)
		defer t.Stop()
		deadline = t.C
	}

	ticker := time.NewTicker(l.cfg.ReadyPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return context.DeadlineExceeded
		case <-ticker.C:
			if l.sender.Ready() {
				return nil
			}
		}
	}
}

// wait sleeps for d, honouring cancellation. The settle windows are
// pure timing gates, not coordination points.
func (l *Loop) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
