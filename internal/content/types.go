// Package content defines the world-content data model and loads frame
// definitions (WGF files) from core and user directories into a
// deterministic, queryable catalog.
package content

// LogLevel classifies messages emitted through a LogFunc.
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogWarning
	LogError
	LogFatal
)

// String returns a human-readable name for the level.
func (l LogLevel) String() string {
	switch l {
	case LogInfo:
		return "info"
	case LogWarning:
		return "warning"
	case LogError:
		return "error"
	case LogFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// LogFunc receives diagnostic messages from the content and worldgen
// packages. The core never writes to a console or file itself; callers
// decide where messages go. A nil LogFunc discards everything.
type LogFunc func(level LogLevel, msg string)

// ObstacleType describes how an obstacle behaves in the world.
type ObstacleType int

const (
	ObstacleStatic       ObstacleType = iota // blocks movement, indestructible
	ObstacleDestructible                     // can be destroyed by weapons
	ObstacleHazard                           // damages on contact
	ObstacleDecoration                       // visual only, no collision
)

// String returns the wire representation used in WGF files.
func (t ObstacleType) String() string {
	switch t {
	case ObstacleDestructible:
		return "destructible"
	case ObstacleHazard:
		return "hazard"
	case ObstacleDecoration:
		return "decoration"
	default:
		return "static"
	}
}

// ParseObstacleType maps a WGF file type string to an ObstacleType.
// Unknown strings fall back to static.
func ParseObstacleType(s string) ObstacleType {
	switch s {
	case "destructible":
		return ObstacleDestructible
	case "hazard":
		return ObstacleHazard
	case "decoration":
		return ObstacleDecoration
	default:
		return ObstacleStatic
	}
}

// Vec2 is a 2D position in game units.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size2 is a 2D extent in game units.
type Size2 struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CollisionData configures collision behavior for an obstacle.
type CollisionData struct {
	Enabled bool `json:"enabled"`
	Damage  int  `json:"damage"`
}

// ObstacleData is a single obstacle placed within a frame. Positions are
// relative to the frame's left edge.
type ObstacleData struct {
	Type      ObstacleType
	Sprite    string
	Position  Vec2
	Size      Size2
	Collision CollisionData
	Health    int // 0 = indestructible even for destructible type
}

// EnemySpawnData is a single enemy spawn within a frame.
type EnemySpawnData struct {
	Tag        string
	Position   Vec2
	SpawnDelay float64 // seconds after the frame enters view
}

// BackgroundLayer is one parallax layer of a frame's background.
type BackgroundLayer struct {
	Sprite         string
	ParallaxFactor float64
	ScrollSpeed    float64
}

// BackgroundData holds a frame's background layers, back to front.
type BackgroundData struct {
	Layers []BackgroundLayer
}

// SpawnRules controls when a frame may be selected during endless
// generation.
type SpawnRules struct {
	MinDistanceFromLast int      // minimum frames since last use
	MaxFrequency        float64  // selection weight multiplier [0, 1]
	RequiresTags        []string // previous frame must carry all of these
}

// WGFDefinition is one reusable world segment (WorldGen Frame). Instances
// are created by the Loader at load time and immutable afterward; they live
// for the catalog's lifetime.
type WGFDefinition struct {
	ID          string // UUIDv4, unique within the catalog
	Name        string
	Description string
	Difficulty  float64 // [0, 10]
	Tags        []string
	Width       int // frame width in game units, > 0
	SpawnRules  SpawnRules
	Obstacles   []ObstacleData
	Enemies     []EnemySpawnData
	Background  BackgroundData
	SourceFile  string // origin path, for diagnostics
	IsCore      bool   // true if loaded from the core directory
}

// HasTag reports whether the frame carries the given tag.
func (w *WGFDefinition) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// LevelDefinition is an ordered, editor-authored sequence of frames.
// Immutable once loaded.
type LevelDefinition struct {
	ID               string
	Name             string
	Author           string
	Description      string
	Frames           []string // ordered WGF ids
	TargetDifficulty float64
	IsEndless        bool // continue procedurally after the fixed list
}

// DifficultyScaling configures per-frame difficulty growth.
type DifficultyScaling struct {
	Base     float64
	PerFrame float64
	Max      float64
}

// EndlessModeConfig configures endless-mode difficulty progression.
type EndlessModeConfig struct {
	DifficultyIncreaseRate float64
	MaxDifficulty          float64
}

// GlobalConfig is the tuning configuration shared by all generation runs,
// loaded from an optional JSON file.
type GlobalConfig struct {
	FrameWidthDefault int
	DifficultyScaling DifficultyScaling
	EndlessMode       EndlessModeConfig
}

// DefaultGlobalConfig returns the compiled-in tuning defaults, used when no
// global config file is present.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		FrameWidthDefault: 800,
		DifficultyScaling: DifficultyScaling{
			Base:     1.0,
			PerFrame: 0.05,
			Max:      10.0,
		},
		EndlessMode: EndlessModeConfig{
			DifficultyIncreaseRate: 0.1,
			MaxDifficulty:          10.0,
		},
	}
}

// LoadStatistics counts the outcomes of a LoadFromDirectories pass.
type LoadStatistics struct {
	TotalFilesScanned int
	CoreFilesLoaded   int
	UserFilesLoaded   int
	FilesSkipped      int
	DuplicateIDs      int
	ParseErrors       int
	ValidationErrors  int
}
