package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeAudio(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(LibraryDBEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.LibraryDB = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.LibraryDB) == "" {
		c.Paths.LibraryDB = defaultLibraryDB
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.LibraryDB, err = expandPath(c.Paths.LibraryDB); err != nil {
		return fmt.Errorf("paths.library_db: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAudio() error {
	c.Audio.MPVBinary = strings.TrimSpace(c.Audio.MPVBinary)
	if c.Audio.MPVBinary == "" {
		c.Audio.MPVBinary = defaultMPVBinary
	}
	if strings.TrimSpace(c.Audio.MPVSocket) == "" {
		c.Audio.MPVSocket = defaultMPVSocket
	}
	var err error
	if c.Audio.MPVSocket, err = expandPath(c.Audio.MPVSocket); err != nil {
		return fmt.Errorf("audio.mpv_socket: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
