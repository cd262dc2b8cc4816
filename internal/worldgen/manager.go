// Package worldgen orchestrates deterministic world generation for the
// scrolling game world. A Manager selects frames from the content catalog,
// generates spawn instructions as the world scrolls, tracks difficulty
// progression, and supports save/restore: identical seed metadata always
// yields an identical world, independent of process or machine.
package worldgen

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/vovakirdan/scrollgen/internal/content"
	"github.com/vovakirdan/scrollgen/internal/rng"
)

// maxFrameHistory bounds the recent-frame list used by the
// min-distance spawn rule.
const maxFrameHistory = 10

// Manager drives world generation. It owns one deterministic RNG, reads
// the loader's catalog, and produces spawn events. All methods must be
// called from the owning simulation goroutine; the Manager is not safe for
// concurrent use.
type Manager struct {
	loader *content.Loader
	rng    *rng.RNG
	state  WorldGenState
	queue  []SpawnEvent

	subscribers []subscriber
	nextSubID   int

	levels     []content.LevelDefinition
	levelIndex map[string]int

	logf content.LogFunc
}

// NewManager creates a manager over a loaded catalog. The log sink may be
// nil.
func NewManager(loader *content.Loader, logf content.LogFunc) *Manager {
	return &Manager{
		loader:     loader,
		rng:        rng.New(0),
		levelIndex: make(map[string]int),
		logf:       logf,
	}
}

func (m *Manager) log(level content.LogLevel, format string, args ...any) {
	if m.logf != nil {
		m.logf(level, fmt.Sprintf(format, args...))
	}
}

// resetRunState clears everything except loaded levels and subscriptions.
func (m *Manager) resetRunState() {
	m.state = WorldGenState{}
	m.queue = m.queue[:0]
}

// InitializeEndless starts endless generation from a seed. The current
// catalog id list is snapshotted into the seed metadata; frames added to
// the catalog later are never selected by this seed.
func (m *Manager) InitializeEndless(seed uint64, initialDifficulty float64) bool {
	if !m.loader.HasWGFs() {
		m.log(content.LogError, "cannot initialize: no WGFs loaded")
		return false
	}

	m.resetRunState()
	m.state.SeedMetadata = SeedMetadata{
		SeedValue:         seed,
		TargetDifficulty:  clamp(initialDifficulty, 0, 10),
		IsEndless:         true,
		AllowedWGFIDs:     m.loader.IDList(),
		CreationTimestamp: time.Now().UnixNano(),
	}

	m.rng.SetSeed(seed)
	m.state.RNGState, m.state.RNGIncrement = m.rng.State()
	m.state.CurrentDifficulty = m.state.SeedMetadata.TargetDifficulty
	m.state.IsActive = true

	m.log(content.LogInfo, "initialized endless mode: seed=%d difficulty=%.2f frames=%d",
		seed, m.state.CurrentDifficulty, len(m.state.SeedMetadata.AllowedWGFIDs))

	m.AdvanceFrame()
	return true
}

// InitializeEndlessRandom starts endless generation from a time-derived
// seed and returns it, or 0 on failure.
func (m *Manager) InitializeEndlessRandom(initialDifficulty float64) uint64 {
	seed := uint64(time.Now().UnixNano())
	if m.InitializeEndless(seed, initialDifficulty) {
		return seed
	}
	return 0
}

// InitializeLevel starts a fixed level by id. Returns false without
// mutating any state if the level is unknown or has no frames.
func (m *Manager) InitializeLevel(levelID string) bool {
	level := m.LevelByID(levelID)
	if level == nil {
		m.log(content.LogError, "level not found: %s", levelID)
		return false
	}
	if len(level.Frames) == 0 {
		m.log(content.LogError, "level has no frames: %s", levelID)
		return false
	}

	m.resetRunState()
	meta := SeedMetadata{
		SeedValue:         levelSeed(levelID),
		TargetDifficulty:  level.TargetDifficulty,
		IsEndless:         level.IsEndless,
		LevelID:           levelID,
		CreationTimestamp: time.Now().UnixNano(),
	}
	// The snapshot only carries frames that actually resolve in the
	// catalog.
	for _, id := range level.Frames {
		if m.loader.WGFByID(id) != nil {
			meta.AllowedWGFIDs = append(meta.AllowedWGFIDs, id)
		}
	}
	m.state.SeedMetadata = meta

	m.rng.SetSeed(meta.SeedValue)
	m.state.RNGState, m.state.RNGIncrement = m.rng.State()
	m.state.CurrentDifficulty = level.TargetDifficulty
	m.state.IsActive = true

	m.log(content.LogInfo, "initialized level %q with %d frames", level.Name, len(level.Frames))

	m.AdvanceFrame()
	return true
}

// InitializeFromMetadata starts a run from previously captured seed
// metadata, for loading saves or playing a shared seed. The continuation
// is identical to the run that created the metadata.
func (m *Manager) InitializeFromMetadata(meta SeedMetadata) bool {
	missing := 0
	for _, id := range meta.AllowedWGFIDs {
		if m.loader.WGFByID(id) == nil {
			m.log(content.LogWarning, "missing WGF from seed metadata: %s", id)
			missing++
		}
	}
	if len(meta.AllowedWGFIDs) == 0 || missing == len(meta.AllowedWGFIDs) {
		m.log(content.LogError, "no WGF from seed metadata is available")
		return false
	}

	m.resetRunState()
	m.state.SeedMetadata = meta.Clone()

	m.rng.SetSeed(meta.SeedValue)
	m.state.RNGState, m.state.RNGIncrement = m.rng.State()
	m.state.CurrentDifficulty = meta.TargetDifficulty
	m.state.IsActive = true

	m.log(content.LogInfo, "initialized from metadata: seed=%d endless=%v",
		meta.SeedValue, meta.IsEndless)

	m.AdvanceFrame()
	return true
}

// Reset restarts generation from the existing seed metadata without
// minting a new seed. The run reproduces the original frame sequence.
func (m *Manager) Reset() {
	meta := m.state.SeedMetadata
	if !m.state.IsActive && meta.SeedValue == 0 && meta.LevelID == "" {
		m.log(content.LogWarning, "cannot reset: worldgen not initialized")
		return
	}
	m.InitializeFromMetadata(meta.Clone())
}

// Stop halts generation. Update and AdvanceFrame become no-ops until the
// manager is re-initialized.
func (m *Manager) Stop() {
	m.state.IsActive = false
	m.log(content.LogInfo, "worldgen stopped")
}

// Update advances the world scroll position and generates frames once the
// offset passes the current frame's end boundary. Call once per simulation
// tick.
func (m *Manager) Update(dt, scrollSpeed float64) {
	if !m.state.IsActive || m.state.LevelComplete {
		return
	}
	m.state.LastScrollSpeed = scrollSpeed
	m.state.WorldOffset += scrollSpeed * dt

	for m.state.WorldOffset >= m.state.CurrentFrameEndX {
		if !m.AdvanceFrame() {
			break
		}
	}
}

// AdvanceFrame generates the next frame: endless mode selects one via the
// weighted draw, fixed mode walks the level's frame list. Returns false
// when no frame was generated (stopped, complete, or nothing available).
// Calling it after level completion is a no-op.
func (m *Manager) AdvanceFrame() bool {
	if !m.state.IsActive || m.state.LevelComplete {
		return false
	}

	var nextID string
	if m.state.SeedMetadata.LevelID == "" {
		nextID = m.selectNextWGF()
	} else {
		level := m.LevelByID(m.state.SeedMetadata.LevelID)
		if level == nil {
			m.log(content.LogError, "level no longer available: %s", m.state.SeedMetadata.LevelID)
			m.state.LevelComplete = true
			return false
		}
		switch {
		case m.state.NextFrameInLevel < len(level.Frames):
			nextID = level.Frames[m.state.NextFrameInLevel]
			m.state.NextFrameInLevel++
		case level.IsEndless:
			nextID = m.selectNextWGF()
		default:
			m.emit(SpawnEvent{
				Type:        EventLevelEnd,
				FrameNumber: m.state.CurrentFrameIndex,
				WorldX:      m.state.CurrentFrameEndX,
			})
			m.state.LevelComplete = true
			m.log(content.LogInfo, "level complete")
			return false
		}
	}

	if nextID == "" {
		m.log(content.LogWarning, "no WGF available for selection")
		return false
	}
	wgf := m.loader.WGFByID(nextID)
	if wgf == nil {
		m.log(content.LogError, "selected WGF not found: %s", nextID)
		return false
	}

	frameStartX := m.state.CurrentFrameEndX
	m.generateFrameEvents(wgf, frameStartX)

	m.state.CurrentWGFID = nextID
	m.state.CurrentFrameEndX = frameStartX + float64(wgf.Width)
	m.state.CurrentFrameIndex++

	m.state.RecentFrameIDs = append(m.state.RecentFrameIDs, nextID)
	if len(m.state.RecentFrameIDs) > maxFrameHistory {
		m.state.RecentFrameIDs = m.state.RecentFrameIDs[1:]
	}

	m.state.RNGState, m.state.RNGIncrement = m.rng.State()
	m.updateDifficulty()

	m.log(content.LogInfo, "advanced to frame %d: %s", m.state.CurrentFrameIndex, wgf.Name)
	return true
}

// generateFrameEvents emits FrameStart, the frame's obstacles and enemies,
// then FrameEnd. Enemy positions are offset by spawn_delay times the last
// observed scroll speed, an approximation that assumes the speed stays
// constant between generation and consumption.
func (m *Manager) generateFrameEvents(wgf *content.WGFDefinition, frameStartX float64) {
	m.emit(SpawnEvent{
		Type:        EventFrameStart,
		WGFID:       wgf.ID,
		FrameNumber: m.state.CurrentFrameIndex,
		WorldX:      frameStartX,
	})

	for i, obs := range wgf.Obstacles {
		m.emit(SpawnEvent{
			Type:         EventObstacle,
			WGFID:        wgf.ID,
			FrameNumber:  m.state.CurrentFrameIndex,
			WorldX:       frameStartX + obs.Position.X,
			WorldY:       obs.Position.Y,
			Index:        i,
			ObstacleType: obs.Type,
			Sprite:       obs.Sprite,
			Size:         obs.Size,
			Collision:    obs.Collision,
			Health:       obs.Health,
		})
	}

	for i, enemy := range wgf.Enemies {
		m.emit(SpawnEvent{
			Type:        EventEnemy,
			WGFID:       wgf.ID,
			FrameNumber: m.state.CurrentFrameIndex,
			WorldX:      frameStartX + enemy.Position.X + enemy.SpawnDelay*m.state.LastScrollSpeed,
			WorldY:      enemy.Position.Y,
			Index:       i,
			EnemyTag:    enemy.Tag,
			SpawnDelay:  enemy.SpawnDelay,
		})
	}

	m.emit(SpawnEvent{
		Type:        EventFrameEnd,
		WGFID:       wgf.ID,
		FrameNumber: m.state.CurrentFrameIndex,
		WorldX:      frameStartX + float64(wgf.Width),
	})
}

// updateDifficulty recomputes the current difficulty from the frame index,
// so restored and reset runs land on exactly the same value. Fixed levels
// hold their configured target.
func (m *Manager) updateDifficulty() {
	if !m.state.SeedMetadata.IsEndless {
		return
	}
	cfg := m.loader.Config().EndlessMode
	d := m.state.SeedMetadata.TargetDifficulty +
		float64(m.state.CurrentFrameIndex)*cfg.DifficultyIncreaseRate
	m.state.CurrentDifficulty = math.Min(d, cfg.MaxDifficulty)
}

// SaveState captures the complete run state for later restoration.
func (m *Manager) SaveState() WorldGenState {
	return m.state.Clone()
}

// RestoreState resumes a previously saved run. The event queue is cleared;
// pending events are regenerated as new frames are produced. Subsequent
// frames are identical to a run that never saved.
func (m *Manager) RestoreState(state WorldGenState) bool {
	m.state = state.Clone()
	m.rng.Restore(state.RNGState, state.RNGIncrement)
	m.queue = m.queue[:0]
	m.log(content.LogInfo, "restored worldgen state at frame %d", m.state.CurrentFrameIndex)
	return true
}

// State returns a copy of the current run state.
func (m *Manager) State() WorldGenState {
	return m.state.Clone()
}

// SeedMetadata returns a copy of the active seed metadata.
func (m *Manager) SeedMetadata() SeedMetadata {
	return m.state.SeedMetadata.Clone()
}

// CurrentFrameIndex returns the number of frames generated so far.
func (m *Manager) CurrentFrameIndex() int {
	return m.state.CurrentFrameIndex
}

// WorldOffset returns the current scroll position in world units.
func (m *Manager) WorldOffset() float64 {
	return m.state.WorldOffset
}

// CurrentDifficulty returns the current target difficulty.
func (m *Manager) CurrentDifficulty() float64 {
	return m.state.CurrentDifficulty
}

// IsActive reports whether generation is running.
func (m *Manager) IsActive() bool {
	return m.state.IsActive
}

// IsLevelComplete reports whether a fixed level has been exhausted.
func (m *Manager) IsLevelComplete() bool {
	return m.state.LevelComplete
}

// IsEndlessMode reports whether the run selects frames procedurally.
func (m *Manager) IsEndlessMode() bool {
	return m.state.SeedMetadata.IsEndless
}

// CurrentWGF returns the definition of the frame currently being played,
// or nil before the first frame.
func (m *Manager) CurrentWGF() *content.WGFDefinition {
	if m.state.CurrentWGFID == "" {
		return nil
	}
	return m.loader.WGFByID(m.state.CurrentWGFID)
}

// levelSeed derives the RNG seed for a fixed level from its id, so the
// same level always produces the same in-frame variation.
func levelSeed(levelID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(levelID))
	return h.Sum64()
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
