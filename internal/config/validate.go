package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlayback() error {
	p := c.Playback
	if p.TickIntervalMS < 10 || p.TickIntervalMS > 10_000 {
		return fmt.Errorf("%w: playback.tick_interval_ms must be between 10 and 10000", ErrInvalid)
	}
	if p.Step <= 0 || p.Step > 1 {
		return fmt.Errorf("%w: playback.step must be in (0, 1]", ErrInvalid)
	}
	if p.BeatDivisions < 1 {
		return fmt.Errorf("%w: playback.beat_divisions must be positive", ErrInvalid)
	}
	if p.DurationSeconds < 1 {
		return fmt.Errorf("%w: playback.duration_seconds must be positive", ErrInvalid)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrInvalid, c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn, or error, got %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
