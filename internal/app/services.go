package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mayannaise/intellilight/internal/config"
	"github.com/mayannaise/intellilight/internal/controller"
	"github.com/mayannaise/intellilight/internal/db"
	"github.com/mayannaise/intellilight/internal/indicator"
	"github.com/mayannaise/intellilight/internal/journal"
	"github.com/mayannaise/intellilight/internal/power"
	"github.com/mayannaise/intellilight/internal/sensor/sim"
	"github.com/mayannaise/intellilight/internal/transport"
)

// Services is a container for all application services.
// It manages service initialization order and dependencies.
type Services struct {
	cfg *config.Config

	// Session identifies one boot cycle; every wake from deep sleep
	// is a fresh process with a fresh session.
	Session string

	// Core infrastructure
	DB      *db.DB
	Journal *journal.Journal

	// Hardware-facing collaborators
	Sender    transport.Sender
	Gateway   *sim.Gateway
	Indicator indicator.Indicator
	Power     power.Manager

	// Control loop
	Machine *controller.Machine
	Loop    *controller.Loop

	// High-level services
	Health *HealthService
}

// NewServices creates all services with proper dependency injection.
func NewServices(cfg *config.Config) (*Services, error) {
	s := &Services{
		cfg:     cfg,
		Session: uuid.NewString(),
	}

	// Initialize journal storage
	if cfg.Journal.Enabled {
		database, err := db.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		s.DB = database
		s.Journal = journal.New(database.DB, s.Session)
	}

	// Status LEDs
	if cfg.Indicator.Enabled {
		s.Indicator = indicator.NewGPIO(cfg.Indicator.RedPin, cfg.Indicator.GreenPin, cfg.Indicator.BluePin)
	} else {
		s.Indicator = indicator.Noop{}
	}

	// Red while the network path comes up
	s.Indicator.Set(indicator.Red, true)
	sender, err := newSender(cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Sender = sender
	s.Indicator.Set(indicator.Red, false)

	// Deep sleep releases everything before the process ends
	onSleep := func() { s.Close() }
	if cfg.Power.Suspend {
		s.Power = power.NewGPIOSleeper(cfg.Power.WakePin, onSleep)
	} else {
		s.Power = power.NewExitSleeper(onSleep)
	}

	// Sensor gateway
	gateway, err := sim.New(cfg.Sensors.Script)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Gateway = gateway

	// Control loop
	var rec controller.Recorder
	if s.Journal != nil {
		rec = s.Journal
	}
	s.Machine = controller.NewMachine(
		cfg.Controller.ProximityThreshold,
		cfg.Controller.AmbientScale.Scale(),
		s.Sender,
		s.Power,
		rec,
	)
	s.Loop = controller.NewLoop(s.Machine, s.Gateway, s.Sender, s.Indicator, controller.LoopConfig{
		Settle:       cfg.Controller.Settle.Duration(),
		ReadyPoll:    cfg.Controller.ReadyPoll.Duration(),
		ReadyTimeout: cfg.Controller.ReadyTimeout.Duration(),
	})

	// Health endpoints
	s.Health = NewHealthService(cfg, s.Sender)

	return s, nil
}

// newSender builds the configured bulb transport.
func newSender(cfg *config.Config) (transport.Sender, error) {
	switch cfg.Bulb.Transport {
	case "kasa":
		return transport.NewKasa(cfg.Bulb.Host, cfg.Bulb.Timeout.Duration())
	case "mqtt":
		return transport.NewMQTT(
			cfg.Bulb.MQTT.Broker,
			cfg.Bulb.MQTT.ClientID,
			cfg.Bulb.MQTT.Topic,
			byte(cfg.Bulb.MQTT.QoS),
			cfg.Bulb.Timeout.Duration(),
		)
	default:
		return nil, fmt.Errorf("unknown bulb transport %q", cfg.Bulb.Transport)
	}
}

// Start starts all services in the correct order.
// The onFatalError callback is called when the control loop fails.
func (s *Services) Start(ctx context.Context, onFatalError func(error)) error {
	// Arm the wake source before any sleep transition can happen
	if err := s.Power.Arm(); err != nil {
		return err
	}

	if s.Journal != nil {
		if err := s.Journal.Append(journal.EventBoot, ""); err != nil {
			log.Warn().Err(err).Msg("Failed to journal boot")
		}

		retention := time.Duration(s.cfg.Journal.RetentionDays) * 24 * time.Hour
		if n, err := s.Journal.DeleteOlderThan(retention); err != nil {
			log.Warn().Err(err).Msg("Journal retention sweep failed")
		} else if n > 0 {
			log.Debug().Int64("removed", n).Msg("Journal retention sweep")
		}
	}

	s.Health.Start(ctx)

	go func() {
		if err := s.Loop.Run(ctx); err != nil && ctx.Err() == nil {
			onFatalError(err)
		}
	}()

	log.Info().Str("session", s.Session).Msg("Control loop started")
	return nil
}

// Stop gracefully stops all services.
func (s *Services) Stop() error {
	s.Close()
	return nil
}

// Close releases all resources.
func (s *Services) Close() {
	if s.Gateway != nil {
		s.Gateway.Close()
	}
	if s.Sender != nil {
		if err := s.Sender.Close(); err != nil {
			log.Warn().Err(err).Msg("Transport close error")
		}
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
