package config

const (
	defaultLibraryDB      = "~/.local/share/glossplayer/library.sqlite"
	defaultLogDir         = "~/.local/share/glossplayer/logs"
	defaultTickIntervalMS = 100
	defaultStep           = 0.005
	defaultBeatDivisions  = 20
	defaultDurationSecs   = 180
	defaultMPVBinary      = "mpv"
	defaultMPVSocket      = "~/.local/share/glossplayer/mpv.sock"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDB: defaultLibraryDB,
			LogDir:    defaultLogDir,
		},
		Playback: Playback{
			TickIntervalMS:  defaultTickIntervalMS,
			Step:            defaultStep,
			BeatDivisions:   defaultBeatDivisions,
			DurationSeconds: defaultDurationSecs,
		},
		Audio: Audio{
			Enabled:   false,
			MPVBinary: defaultMPVBinary,
			MPVSocket: defaultMPVSocket,
			Launch:    true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
