package config

const (
	defaultConfigPath        = "~/.config/goalie/config.toml"
	projectConfigFile        = "goalie.toml"
	lockFileName             = ".goalie.lock"
	defaultGoalsDir          = "./goals"
	defaultLogDir            = "~/.local/share/goalie/logs"
	defaultPromptDir         = "."
	defaultLogRetentionDays  = 30
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultBreakdownStrategy = StrategyPromptFile
	defaultColorMode         = ColorAuto
)

// Breakdown strategies.
const (
	StrategyPromptFile   = "prompt_file"
	StrategyResponseFile = "response_file"
)

// Colour modes for [display] color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment overrides.
const (
	EnvGoalsDir = "GOALIE_GOALS_DIR"
	EnvLogLevel = "GOALIE_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			GoalsDir:  defaultGoalsDir,
			LogDir:    defaultLogDir,
			PromptDir: defaultPromptDir,
		},
		Breakdown: Breakdown{
			Strategy: defaultBreakdownStrategy,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Display: Display{
			Color: defaultColorMode,
		},
	}
}
