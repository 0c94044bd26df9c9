package config

import "runtime"

const (
	defaultConfigPath  = "~/.config/samplekit/config.toml"
	defaultLogDir      = "~/.local/share/samplekit/logs"
	defaultFlacBinary  = "flac"
	defaultSoxBinary   = "sox"
	defaultFFmpeg      = "ffmpeg"
	defaultSuffix      = ".ugrisample.flac"
	defaultStartMarker = "STA"
	defaultStopMarker  = "STP"
	defaultTargetExt   = ".flac"
	defaultExtension   = ".flac"
	defaultOneshotDir  = "oneshots"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Joiner names accepted by join.joiner.
const (
	JoinerSox    = "sox"
	JoinerFFmpeg = "ffmpeg"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LockDir: defaultLockDir(),
			LogDir:  defaultLogDir,
		},
		Tools: Tools{
			Flac:   defaultFlacBinary,
			Sox:    defaultSoxBinary,
			FFmpeg: defaultFFmpeg,
		},
		Join: Join{
			Suffix:      defaultSuffix,
			StartMarker: defaultStartMarker,
			StopMarker:  defaultStopMarker,
			TargetExt:   defaultTargetExt,
			Joiner:      JoinerSox,
			MaxWorkers:  runtime.NumCPU(),
			Validate:    true,
		},
		Scan: Scan{
			Extension:  defaultExtension,
			SkipDirs:   []string{"Reverbs"},
			OneshotDir: defaultOneshotDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
