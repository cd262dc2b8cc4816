// Package config provides YAML-based tool configuration loading for the
// scrollgen toolchain: where content lives, where saves go, and defaults
// for simulation runs.
package config

// Settings contains all tool-level configuration. Content catalog values
// that affect generation itself (frame width, difficulty scaling) live in
// the catalog's global config file, not here.
type Settings struct {
	Content    ContentSettings    `yaml:"content"`
	Database   DatabaseSettings   `yaml:"database"`
	Simulation SimulationSettings `yaml:"simulation"`
	Logging    LoggingSettings    `yaml:"logging"`
}

// ContentSettings locates the WGF catalog on disk.
type ContentSettings struct {
	CoreDir      string `yaml:"core_dir"`      // built-in frames, duplicates are errors
	UserDir      string `yaml:"user_dir"`      // user-authored frames, core wins on conflict
	GlobalConfig string `yaml:"global_config"` // path to the catalog's global config JSON
	LevelsDir    string `yaml:"levels_dir"`    // fixed level definitions
}

// DatabaseSettings locates the save-slot store.
type DatabaseSettings struct {
	Path string `yaml:"path"`
}

// SimulationSettings defines defaults for simulate runs.
type SimulationSettings struct {
	ScrollSpeed float64 `yaml:"scroll_speed"` // world units per second
	TickRate    float64 `yaml:"tick_rate"`    // simulation ticks per second
	Frames      int     `yaml:"frames"`       // frames to generate per run
}

// LoggingSettings controls log output.
type LoggingSettings struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DifficultyPreset names a starting difficulty for endless runs.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// TargetForPreset maps a preset to an initial target difficulty on the
// 0-10 catalog scale.
func TargetForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 2.0
	case DifficultyHard:
		return 8.0
	default:
		return 5.0
	}
}
