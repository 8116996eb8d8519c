// Package config loads vkboot settings from a TOML file.
package config

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Vulkan struct {
	ApplicationName string `toml:"application_name"`
	Validation      bool   `toml:"validation"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// Diagnostics turns on the bootstrap's progress reporting.
	Diagnostics bool `toml:"diagnostics"`
}

type Config struct {
	Window Window `toml:"window"`
	Vulkan Vulkan `toml:"vulkan"`
	Log    Log    `toml:"log"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "vkboot",
			Width:  800,
			Height: 600,
		},
		Vulkan: Vulkan{
			ApplicationName: "vkboot",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "read config")
	}

	err = Decode(data, &config)
	if err != nil {
		return config, errors.Wrapf(err, "parse %s", path)
	}
	return config, nil
}

// Decode unmarshals TOML into config, keeping values the document does not set.
// Unknown keys are an error.
func Decode(data []byte, config *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(config)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	_, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Newf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds a logrus logger writing to stderr.
func NewLogger(settings Log) (*log.Logger, error) {
	level, err := log.ParseLevel(settings.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)

	switch settings.Format {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, errors.Newf("unknown log format %q", settings.Format)
	}
	return logger, nil
}
