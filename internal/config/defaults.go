package config

import (
	_ "embed"
)

//go:embed defaults/scrollgen.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hardcoded default configuration, used when
// the embedded YAML cannot be parsed.
func DefaultSettings() Settings {
	return Settings{
		Content: ContentSettings{
			CoreDir:      "content/core",
			UserDir:      "content/user",
			GlobalConfig: "content/global_config.json",
			LevelsDir:    "content/levels",
		},
		Database: DatabaseSettings{
			Path: "",
		},
		Simulation: SimulationSettings{
			ScrollSpeed: 200.0,
			TickRate:    60.0,
			Frames:      20,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default settings YAML, for `config
// init` style dumps.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
