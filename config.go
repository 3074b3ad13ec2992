package msdk

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Surface polling defaults: a 10µs quantum within a 20ms budget.
const (
	DefaultPollTimeout  = 20 * time.Millisecond
	DefaultPollInterval = 10 * time.Microsecond
)

// PollConfig bounds the wait for a free surface.
type PollConfig struct {
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	Interval time.Duration `yaml:"interval,omitempty"`
}

// DefaultPollConfig returns the default polling budget.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Timeout:  DefaultPollTimeout,
		Interval: DefaultPollInterval,
	}
}

// Validate checks the budget and quantum.
func (p PollConfig) Validate() error {
	if p.Timeout <= 0 {
		return fmt.Errorf("surface poll timeout must be positive, got %v", p.Timeout)
	}
	if p.Interval <= 0 {
		return fmt.Errorf("surface poll interval must be positive, got %v", p.Interval)
	}
	if p.Interval > p.Timeout {
		return fmt.Errorf("surface poll interval %v exceeds timeout %v", p.Interval, p.Timeout)
	}
	return nil
}

func (p PollConfig) withDefaults() PollConfig {
	if p.Timeout <= 0 {
		p.Timeout = DefaultPollTimeout
	}
	if p.Interval <= 0 {
		p.Interval = DefaultPollInterval
	}
	return p
}

// LibraryConfig lists candidate names for the dynamically loaded libraries.
// Empty lists mean the built-in defaults.
type LibraryConfig struct {
	MFX   []string `yaml:"mfx,omitempty"`
	VA    []string `yaml:"va,omitempty"`
	VADRM []string `yaml:"va_drm,omitempty"`
}

// Config configures a Context.
type Config struct {
	// Hardware requests a hardware implementation bound to a VA display.
	Hardware bool `yaml:"hardware"`

	// DevicePath is the DRM node to bind; empty means discover.
	DevicePath string `yaml:"device_path,omitempty"`

	Libraries   LibraryConfig `yaml:"libraries,omitempty"`
	SurfacePoll PollConfig    `yaml:"surface_poll,omitempty"`
}

// DefaultConfig returns a software-mode configuration.
func DefaultConfig() Config {
	return Config{
		SurfacePoll: DefaultPollConfig(),
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	cfg.SurfacePoll = cfg.SurfacePoll.withDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment:
//   - MSDK_HARDWARE: boolean
//   - MSDK_DEVICE_PATH: DRM node
//
// Library locations are read from MSDK_LIB_PATH and LIBVA_LIB_PATH by the
// loaders themselves.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("MSDK_HARDWARE"); v != "" {
		hw, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MSDK_HARDWARE value %q: %w", v, err)
		}
		c.Hardware = hw
	}
	if v := os.Getenv("MSDK_DEVICE_PATH"); v != "" {
		c.DevicePath = v
	}
	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.SurfacePoll.Validate(); err != nil {
		return err
	}
	return nil
}

// Environment variables consulted by the library loaders.
const (
	mfxPathEnv   = "MSDK_LIB_PATH"
	libvaPathEnv = "LIBVA_LIB_PATH"
)
