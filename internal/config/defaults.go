package config

const (
	defaultConfigPath          = "~/.config/renamer/config.toml"
	defaultProjectConfig       = "renamer.toml"
	defaultFFprobeBinary       = "ffprobe"
	defaultProbeTimeoutSeconds = 10
	defaultOutputFormat        = OutputPlain
	defaultColorMode           = ColorAuto
	defaultJournalPath         = "~/.local/share/renamer/journal.db"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Output formats accepted by output.format.
const (
	OutputPlain = "plain"
	OutputTable = "table"
	OutputDiff  = "diff"
	OutputJSON  = "json"
)

// Color modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Keywords: Keywords{
			FFprobeBinary:       defaultFFprobeBinary,
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Output: Output{
			Format: defaultOutputFormat,
			Color:  defaultColorMode,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
