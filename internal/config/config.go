package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the typed view of configs/config.yml plus environment overrides.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string
	Device   DeviceConfig
	Tariff   TariffConfig
	MQTT     MQTTConfig
}

type DeviceConfig struct {
	Host      string
	Interval  time.Duration
	Timeout   time.Duration // zero disables the per-request deadline
	DropStale bool
}

type TariffConfig struct {
	JouleToKWh float64
	CostPerKWh float64
	Currency   string
}

type MQTTConfig struct {
	Enabled  bool
	Broker   string
	Topic    string
	ClientID string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "app.db")

	v.SetDefault("device.host", "172.20.10.5")
	v.SetDefault("device.interval_ms", 200)
	v.SetDefault("device.timeout_ms", 0)
	v.SetDefault("device.drop_stale", true)

	v.SetDefault("tariff.joule_to_kwh", 2.777e-7)
	v.SetDefault("tariff.cost_per_kwh", 4.0)
	v.SetDefault("tariff.currency", "บาท")

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.topic", "energy_gauge/display")
	v.SetDefault("mqtt.client_id", "energy-gauge")
}

// Load reads config.yml from the given directories (default "configs").
// A missing file is not an error; defaults and env vars still apply.
// Env vars use the key with dots replaced, e.g. DEVICE_HOST.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log_level"),
		DBPath:   v.GetString("db.path"),
		Device: DeviceConfig{
			Host:      v.GetString("device.host"),
			Interval:  time.Duration(v.GetInt64("device.interval_ms")) * time.Millisecond,
			Timeout:   time.Duration(v.GetInt64("device.timeout_ms")) * time.Millisecond,
			DropStale: v.GetBool("device.drop_stale"),
		},
		Tariff: TariffConfig{
			JouleToKWh: v.GetFloat64("tariff.joule_to_kwh"),
			CostPerKWh: v.GetFloat64("tariff.cost_per_kwh"),
			Currency:   v.GetString("tariff.currency"),
		},
		MQTT: MQTTConfig{
			Enabled:  v.GetBool("mqtt.enabled"),
			Broker:   v.GetString("mqtt.broker"),
			Topic:    v.GetString("mqtt.topic"),
			ClientID: v.GetString("mqtt.client_id"),
		},
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Device.Host == "":
		return errors.New("config: device.host is empty")
	case c.Device.Interval <= 0:
		return fmt.Errorf("config: device.interval_ms must be > 0, got %v", c.Device.Interval)
	case c.Device.Timeout < 0:
		return fmt.Errorf("config: device.timeout_ms must be >= 0, got %v", c.Device.Timeout)
	case c.MQTT.Enabled && (c.MQTT.Broker == "" || c.MQTT.Topic == ""):
		return errors.New("config: mqtt.enabled requires mqtt.broker and mqtt.topic")
	}
	return nil
}
