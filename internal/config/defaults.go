package config

const (
	defaultConfigPath      = "~/.config/mediapair/config.toml"
	defaultDataDir         = "~/.local/share/mediapair"
	defaultLogDir          = "~/.local/share/mediapair/logs"
	defaultCacheDirName    = "cache"
	defaultMinFreeMiB      = 512
	defaultRowHeight       = 1
	defaultRowMargin       = 1
	defaultSettleTimeoutMS = 200
	defaultSettleFrames    = 6
	defaultInput           = "mouse"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Library: Library{
			MinFreeMiB: defaultMinFreeMiB,
		},
		Reorder: Reorder{
			RowHeight:       defaultRowHeight,
			RowMargin:       defaultRowMargin,
			SettleTimeoutMS: defaultSettleTimeoutMS,
			SettleFrames:    defaultSettleFrames,
			Input:           defaultInput,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
