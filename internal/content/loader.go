package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Loader scans content directories, validates frame files, and exposes the
// resulting catalog. The catalog order depends only on file contents, never
// on filesystem enumeration order, so two processes loading the same files
// agree on it exactly.
type Loader struct {
	defs   []WGFDefinition
	index  map[string]int // id -> index into defs
	config GlobalConfig
	stats  LoadStatistics
	logf   LogFunc
}

// NewLoader creates an empty loader. The log sink may be nil.
func NewLoader(logf LogFunc) *Loader {
	return &Loader{
		index:  make(map[string]int),
		config: DefaultGlobalConfig(),
		logf:   logf,
	}
}

func (l *Loader) log(level LogLevel, format string, args ...any) {
	if l.logf != nil {
		l.logf(level, fmt.Sprintf(format, args...))
	}
}

// LoadFromDirectories loads *.wgf.json files from the trusted core
// directory and then the user (mod) directory. Core entries win id
// collisions. Returns false only if no valid frame was loaded from either
// directory, which is fatal for world generation.
func (l *Loader) LoadFromDirectories(corePath, userPath string) bool {
	l.stats = LoadStatistics{}
	l.defs = l.defs[:0]
	l.index = make(map[string]int)

	for _, file := range l.scanDirectory(corePath) {
		l.stats.TotalFilesScanned++
		wgf, ok := l.loadWGFFile(file, true)
		if !ok {
			l.stats.FilesSkipped++
			continue
		}
		if _, dup := l.index[wgf.ID]; dup {
			// Two core files sharing an id is a content-authoring bug.
			l.log(LogError, "duplicate id in core files: %s (file: %s)", wgf.ID, file)
			l.stats.DuplicateIDs++
			l.stats.FilesSkipped++
			continue
		}
		l.index[wgf.ID] = len(l.defs)
		l.defs = append(l.defs, wgf)
		l.stats.CoreFilesLoaded++
		l.log(LogInfo, "loaded core WGF: %s", wgf.Name)
	}

	for _, file := range l.scanDirectory(userPath) {
		l.stats.TotalFilesScanned++
		wgf, ok := l.loadWGFFile(file, false)
		if !ok {
			l.stats.FilesSkipped++
			continue
		}
		if _, dup := l.index[wgf.ID]; dup {
			l.log(LogWarning, "user WGF has duplicate id, skipping: %s (file: %s)", wgf.ID, file)
			l.stats.DuplicateIDs++
			l.stats.FilesSkipped++
			continue
		}
		l.index[wgf.ID] = len(l.defs)
		l.defs = append(l.defs, wgf)
		l.stats.UserFilesLoaded++
		l.log(LogInfo, "loaded user WGF: %s", wgf.Name)
	}

	// Re-sort by id and rebuild the index so the catalog order depends only
	// on content. This is the precondition for cross-machine determinism.
	sort.Slice(l.defs, func(i, j int) bool { return l.defs[i].ID < l.defs[j].ID })
	l.index = make(map[string]int, len(l.defs))
	for i := range l.defs {
		l.index[l.defs[i].ID] = i
	}

	l.log(LogInfo, "catalog loaded: %d core, %d user, %d skipped",
		l.stats.CoreFilesLoaded, l.stats.UserFilesLoaded, l.stats.FilesSkipped)

	if len(l.defs) == 0 {
		l.log(LogError, "no valid WGF files found, world generation cannot proceed")
		return false
	}
	return true
}

// scanDirectory returns the lexicographically sorted *.wgf.json paths in a
// directory. A missing directory is a warning, not an error.
func (l *Loader) scanDirectory(path string) []string {
	if path == "" {
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		l.log(LogWarning, "cannot read content directory %s: %v", path, err)
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wgf.json") {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	sort.Strings(files)
	return files
}

// File-level schema. Required fields are pointers so a missing field is
// distinguishable from its zero value.
type wgfFile struct {
	ID          *string         `json:"id"`
	Name        *string         `json:"name"`
	Description string          `json:"description"`
	Difficulty  *float64        `json:"difficulty"`
	Tags        []string        `json:"tags"`
	Width       *int            `json:"width"`
	SpawnRules  *spawnRulesFile `json:"spawn_rules"`
	Obstacles   *[]obstacleFile `json:"obstacles"`
	Enemies     []enemyFile     `json:"enemies"`
	Background  *backgroundFile `json:"background"`
}

type spawnRulesFile struct {
	MinDistanceFromLast int      `json:"min_distance_from_last"`
	MaxFrequency        *float64 `json:"max_frequency"`
	RequiresTags        []string `json:"requires_tags"`
}

type obstacleFile struct {
	Type      string         `json:"type"`
	Sprite    string         `json:"sprite"`
	Position  *Vec2          `json:"position"`
	Size      *Size2         `json:"size"`
	Collision *collisionFile `json:"collision"`
	Health    int            `json:"health"`
}

type collisionFile struct {
	Enabled *bool `json:"enabled"`
	Damage  int   `json:"damage"`
}

type enemyFile struct {
	Tag        string  `json:"tag"`
	Position   *Vec2   `json:"position"`
	SpawnDelay float64 `json:"spawn_delay"`
}

type backgroundFile struct {
	Layers []backgroundLayerFile `json:"layers"`
}

type backgroundLayerFile struct {
	Sprite         string   `json:"sprite"`
	ParallaxFactor *float64 `json:"parallax_factor"`
	ScrollSpeed    *float64 `json:"scroll_speed"`
}

// loadWGFFile parses and validates a single frame file. Failures are logged
// and counted; the file is skipped without failing the whole load.
func (l *Loader) loadWGFFile(path string, isCore bool) (WGFDefinition, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		l.log(LogError, "cannot read file %s: %v", path, err)
		l.stats.ParseErrors++
		return WGFDefinition{}, false
	}

	var raw wgfFile
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			l.log(LogError, "wrong type for field %q in %s", typeErr.Field, path)
			l.stats.ValidationErrors++
		} else {
			l.log(LogError, "JSON parse error in %s: %v", path, err)
			l.stats.ParseErrors++
		}
		return WGFDefinition{}, false
	}

	switch {
	case raw.ID == nil:
		l.log(LogError, "missing 'id' in %s", path)
	case !IsUUIDv4(*raw.ID):
		l.log(LogError, "invalid id in %s: %q is not a UUIDv4", path, *raw.ID)
	case raw.Name == nil:
		l.log(LogError, "missing 'name' in %s", path)
	case raw.Difficulty == nil:
		l.log(LogError, "missing 'difficulty' in %s", path)
	case raw.Obstacles == nil:
		l.log(LogError, "missing 'obstacles' array in %s", path)
	default:
		return l.buildWGF(&raw, path, isCore)
	}
	l.stats.ValidationErrors++
	return WGFDefinition{}, false
}

// buildWGF converts a parsed file into a catalog entry, applying defaults
// and clamps for optional fields.
func (l *Loader) buildWGF(raw *wgfFile, path string, isCore bool) (WGFDefinition, bool) {
	wgf := WGFDefinition{
		ID:          *raw.ID,
		Name:        *raw.Name,
		Description: raw.Description,
		Difficulty:  clamp(*raw.Difficulty, 0, 10),
		Tags:        raw.Tags,
		Width:       l.config.FrameWidthDefault,
		SpawnRules:  SpawnRules{MaxFrequency: 1.0},
		SourceFile:  path,
		IsCore:      isCore,
	}

	if raw.Width != nil {
		if *raw.Width <= 0 {
			l.log(LogError, "WGF %q has invalid width %d", wgf.Name, *raw.Width)
			l.stats.ValidationErrors++
			return WGFDefinition{}, false
		}
		wgf.Width = *raw.Width
	}

	if raw.SpawnRules != nil {
		wgf.SpawnRules.MinDistanceFromLast = raw.SpawnRules.MinDistanceFromLast
		if wgf.SpawnRules.MinDistanceFromLast < 0 {
			wgf.SpawnRules.MinDistanceFromLast = 0
		}
		if raw.SpawnRules.MaxFrequency != nil {
			wgf.SpawnRules.MaxFrequency = clamp(*raw.SpawnRules.MaxFrequency, 0, 1)
		}
		wgf.SpawnRules.RequiresTags = raw.SpawnRules.RequiresTags
	}

	for _, obs := range *raw.Obstacles {
		if obs.Position == nil {
			// A single bad obstacle does not fail the whole file.
			l.log(LogWarning, "obstacle missing position in %s, skipping obstacle", path)
			continue
		}
		o := ObstacleData{
			Type:      ParseObstacleType(obs.Type),
			Sprite:    obs.Sprite,
			Position:  *obs.Position,
			Size:      Size2{Width: 32, Height: 32},
			Collision: CollisionData{Enabled: true},
			Health:    obs.Health,
		}
		if obs.Size != nil {
			o.Size = *obs.Size
		}
		if obs.Collision != nil {
			if obs.Collision.Enabled != nil {
				o.Collision.Enabled = *obs.Collision.Enabled
			}
			o.Collision.Damage = obs.Collision.Damage
		}
		wgf.Obstacles = append(wgf.Obstacles, o)
	}

	for _, en := range raw.Enemies {
		e := EnemySpawnData{
			Tag:        en.Tag,
			SpawnDelay: en.SpawnDelay,
		}
		if en.Position != nil {
			e.Position = *en.Position
		}
		wgf.Enemies = append(wgf.Enemies, e)
	}

	if raw.Background != nil {
		for _, layer := range raw.Background.Layers {
			bl := BackgroundLayer{
				Sprite:         layer.Sprite,
				ParallaxFactor: 1.0,
				ScrollSpeed:    1.0,
			}
			if layer.ParallaxFactor != nil {
				bl.ParallaxFactor = *layer.ParallaxFactor
			}
			if layer.ScrollSpeed != nil {
				bl.ScrollSpeed = *layer.ScrollSpeed
			}
			wgf.Background.Layers = append(wgf.Background.Layers, bl)
		}
	}

	return wgf, true
}

// Global config file schema; every field is optional.
type globalConfigFile struct {
	FrameWidthDefault *int `json:"frame_width_default"`
	DifficultyScaling *struct {
		Base     *float64 `json:"base"`
		PerFrame *float64 `json:"per_frame"`
		Max      *float64 `json:"max"`
	} `json:"difficulty_scaling"`
	EndlessMode *struct {
		DifficultyIncreaseRate *float64 `json:"difficulty_increase_rate"`
		MaxDifficulty          *float64 `json:"max_difficulty"`
	} `json:"endless_mode"`
}

// LoadGlobalConfig reads the optional tuning configuration. A missing file
// is not fatal; compiled-in defaults are used and a warning logged.
func (l *Loader) LoadGlobalConfig(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		l.log(LogWarning, "global config not found, using defaults: %s", path)
		l.config = DefaultGlobalConfig()
		return true
	}

	var raw globalConfigFile
	if err := json.Unmarshal(data, &raw); err != nil {
		l.log(LogError, "cannot parse global config %s: %v", path, err)
		l.config = DefaultGlobalConfig()
		return false
	}

	cfg := DefaultGlobalConfig()
	if raw.FrameWidthDefault != nil {
		cfg.FrameWidthDefault = *raw.FrameWidthDefault
	}
	if ds := raw.DifficultyScaling; ds != nil {
		if ds.Base != nil {
			cfg.DifficultyScaling.Base = *ds.Base
		}
		if ds.PerFrame != nil {
			cfg.DifficultyScaling.PerFrame = *ds.PerFrame
		}
		if ds.Max != nil {
			cfg.DifficultyScaling.Max = *ds.Max
		}
	}
	if em := raw.EndlessMode; em != nil {
		if em.DifficultyIncreaseRate != nil {
			cfg.EndlessMode.DifficultyIncreaseRate = *em.DifficultyIncreaseRate
		}
		if em.MaxDifficulty != nil {
			cfg.EndlessMode.MaxDifficulty = *em.MaxDifficulty
		}
	}
	l.config = cfg
	l.log(LogInfo, "loaded global config from %s", path)
	return true
}

// WGFByID returns the catalog entry for an id, or nil if unknown.
func (l *Loader) WGFByID(id string) *WGFDefinition {
	if i, ok := l.index[id]; ok {
		return &l.defs[i]
	}
	return nil
}

// AllWGFs returns every catalog entry, sorted by id.
func (l *Loader) AllWGFs() []WGFDefinition {
	return l.defs
}

// IDList returns the sorted ids of every catalog entry. This is the list
// snapshotted into SeedMetadata at seed creation.
func (l *Loader) IDList() []string {
	ids := make([]string, len(l.defs))
	for i := range l.defs {
		ids[i] = l.defs[i].ID
	}
	return ids
}

// FindByTags returns entries carrying the given tags. With matchAll set an
// entry must carry every tag; otherwise any one suffices.
func (l *Loader) FindByTags(tags []string, matchAll bool) []*WGFDefinition {
	var results []*WGFDefinition
	for i := range l.defs {
		wgf := &l.defs[i]
		if matchAll {
			all := true
			for _, tag := range tags {
				if !wgf.HasTag(tag) {
					all = false
					break
				}
			}
			if all {
				results = append(results, wgf)
			}
			continue
		}
		for _, tag := range tags {
			if wgf.HasTag(tag) {
				results = append(results, wgf)
				break
			}
		}
	}
	return results
}

// FindByDifficulty returns entries whose difficulty lies in [min, max].
func (l *Loader) FindByDifficulty(min, max float64) []*WGFDefinition {
	var results []*WGFDefinition
	for i := range l.defs {
		if l.defs[i].Difficulty >= min && l.defs[i].Difficulty <= max {
			results = append(results, &l.defs[i])
		}
	}
	return results
}

// Config returns the active global tuning configuration.
func (l *Loader) Config() GlobalConfig {
	return l.config
}

// Statistics returns the counters from the most recent load.
func (l *Loader) Statistics() LoadStatistics {
	return l.stats
}

// HasWGFs reports whether at least one frame is available.
func (l *Loader) HasWGFs() bool {
	return len(l.defs) > 0
}

// IsUUIDv4 reports whether s is a canonical 36-character UUIDv4 with the
// RFC 4122 variant.
func IsUUIDv4(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
