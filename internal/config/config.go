package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`

	// Per-connection inbound event budget.
	EventsPerSec float64 `mapstructure:"events_per_sec"`
	EventsBurst  int     `mapstructure:"events_burst"`

	// SelfURL, when set, enables the keep-alive self ping.
	SelfURL string `mapstructure:"self_url"`

	// PersistURL is the record-persistence service; empty disables recording.
	PersistURL string `mapstructure:"persist_url"`

	// File-hosting API used by the stream proxy.
	FileHostURL   string `mapstructure:"filehost_url"`
	FileHostToken string `mapstructure:"filehost_token"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 4000)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("events_per_sec", 20)
	v.SetDefault("events_burst", 40)
	v.SetDefault("self_url", "")
	v.SetDefault("persist_url", "")
	v.SetDefault("filehost_url", "https://www.googleapis.com/drive/v3")
	v.SetDefault("filehost_token", "")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
