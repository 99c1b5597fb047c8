package config

import (
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mayannaise/intellilight/internal/scale"
)

// Config represents the application configuration
type Config struct {
	Bulb        BulbConfig        `yaml:"bulb"`
	Sensors     SensorsConfig     `yaml:"sensors"`
	Controller  ControllerConfig  `yaml:"controller"`
	Power       PowerConfig       `yaml:"power"`
	Indicator   IndicatorConfig   `yaml:"indicator"`
	Database    DatabaseConfig    `yaml:"database"`
	Journal     JournalConfig     `yaml:"journal"`
	Healthcheck HealthcheckConfig `yaml:"healthcheck"`
	Log         LogConfig         `yaml:"log"`
}

// BulbConfig contains smart bulb connection settings
type BulbConfig struct {
	Transport string     `yaml:"transport"` // "kasa" or "mqtt"
	Host      string     `yaml:"host"`      // bulb address for the kasa transport
	Timeout   Duration   `yaml:"timeout"`   // per-command network timeout
	MQTT      MQTTConfig `yaml:"mqtt"`
}

// MQTTConfig contains broker settings for the MQTT transport
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	QoS      int    `yaml:"qos"`
}

// SensorsConfig selects the sensor gateway. Raw acquisition comes
// from a Lua script; register-level hardware access sits behind the
// gateway seam and is out of scope here.
type SensorsConfig struct {
	Script string `yaml:"script"`
}

// ControllerConfig contains the control loop parameters
type ControllerConfig struct {
	ProximityThreshold int         `yaml:"proximity_threshold"`
	AmbientScale       ScaleConfig `yaml:"ambient_scale"`
	Settle             Duration    `yaml:"settle"`        // indicator-dark window either side of the colour read
	ReadyPoll          Duration    `yaml:"ready_poll"`    // network readiness poll interval
	ReadyTimeout       Duration    `yaml:"ready_timeout"` // 0 = wait forever
}

// ScaleConfig maps a raw sensor domain onto a scaled codomain
type ScaleConfig struct {
	MinRaw    int `yaml:"min_raw"`
	MaxRaw    int `yaml:"max_raw"`
	MinScaled int `yaml:"min_scaled"`
	MaxScaled int `yaml:"max_scaled"`
}

// Scale returns the scale.Scale equivalent
func (c ScaleConfig) Scale() scale.Scale {
	return scale.Scale{
		MinRaw:    c.MinRaw,
		MaxRaw:    c.MaxRaw,
		MinScaled: c.MinScaled,
		MaxScaled: c.MaxScaled,
	}
}

// PowerConfig contains deep-sleep settings
type PowerConfig struct {
	WakePin int  `yaml:"wake_pin"` // GPIO wired to the proximity sensor INT line
	Suspend bool `yaml:"suspend"`  // false: exit without suspending the host (simulation)
}

// IndicatorConfig contains status LED settings
type IndicatorConfig struct {
	Enabled  bool `yaml:"enabled"`
	RedPin   int  `yaml:"red_pin"`
	GreenPin int  `yaml:"green_pin"`
	BluePin  int  `yaml:"blue_pin"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// JournalConfig contains event journal settings
type JournalConfig struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

// HealthcheckConfig contains health check server settings
type HealthcheckConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level"`
	UseJSON bool   `yaml:"json"`
	Colors  bool   `yaml:"colors"`
}

// GetLevel returns the log level with default
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Bulb.Transport == "" {
		cfg.Bulb.Transport = "kasa"
	}
	if cfg.Bulb.Timeout == 0 {
		cfg.Bulb.Timeout = Duration(5 * time.Second)
	}
	if cfg.Bulb.MQTT.ClientID == "" {
		cfg.Bulb.MQTT.ClientID = "intellilight"
	}
	if cfg.Bulb.MQTT.Topic == "" {
		cfg.Bulb.MQTT.Topic = "intellilight/command"
	}

	if cfg.Sensors.Script == "" {
		cfg.Sensors.Script = "sensors.lua"
	}

	// Controller defaults match the reference hardware: VCNL4035
	// proximity threshold and its ambient light range mapped onto a
	// useful brightness band.
	if cfg.Controller.ProximityThreshold == 0 {
		cfg.Controller.ProximityThreshold = 40
	}
	if cfg.Controller.AmbientScale == (ScaleConfig{}) {
		cfg.Controller.AmbientScale = ScaleConfig{MinRaw: 10, MaxRaw: 70, MinScaled: 20, MaxScaled: 100}
	}
	if cfg.Controller.Settle == 0 {
		cfg.Controller.Settle = Duration(500 * time.Millisecond)
	}
	if cfg.Controller.ReadyPoll == 0 {
		cfg.Controller.ReadyPoll = Duration(500 * time.Millisecond)
	}

	if cfg.Power.WakePin == 0 {
		cfg.Power.WakePin = 4
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "./intellilight.sqlite"
	}
	if cfg.Journal.RetentionDays == 0 {
		cfg.Journal.RetentionDays = 30
	}

	if cfg.Healthcheck.Port == 0 {
		cfg.Healthcheck.Port = 9090
	}
	if cfg.Healthcheck.Host == "" {
		cfg.Healthcheck.Host = "0.0.0.0"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return &cfg, nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
