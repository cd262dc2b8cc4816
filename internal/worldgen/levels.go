package worldgen

import (
	"encoding/json"
	"os"

	"github.com/vovakirdan/scrollgen/internal/content"
)

// Level file schema. Required fields are pointers so absence is
// detectable.
type levelFile struct {
	ID               *string   `json:"id"`
	Name             *string   `json:"name"`
	Author           string    `json:"author"`
	Description      string    `json:"description"`
	Frames           *[]string `json:"frames"`
	TargetDifficulty *float64  `json:"target_difficulty"`
	IsEndless        bool      `json:"is_endless"`
}

// LoadLevelFromFile reads a level definition from a JSON file.
func (m *Manager) LoadLevelFromFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		m.log(content.LogError, "cannot open level file %s: %v", path, err)
		return false
	}
	return m.LoadLevelFromBytes(data)
}

// LoadLevelFromBytes parses and registers a level definition.
func (m *Manager) LoadLevelFromBytes(data []byte) bool {
	var raw levelFile
	if err := json.Unmarshal(data, &raw); err != nil {
		m.log(content.LogError, "cannot parse level JSON: %v", err)
		return false
	}

	switch {
	case raw.ID == nil || *raw.ID == "":
		m.log(content.LogError, "level missing 'id' field")
		return false
	case raw.Name == nil:
		m.log(content.LogError, "level missing 'name' field")
		return false
	case raw.Frames == nil:
		m.log(content.LogError, "level missing 'frames' array")
		return false
	}

	level := content.LevelDefinition{
		ID:               *raw.ID,
		Name:             *raw.Name,
		Author:           raw.Author,
		Description:      raw.Description,
		Frames:           *raw.Frames,
		TargetDifficulty: 5.0,
		IsEndless:        raw.IsEndless,
	}
	if raw.Author == "" {
		level.Author = "Unknown"
	}
	if raw.TargetDifficulty != nil {
		level.TargetDifficulty = *raw.TargetDifficulty
	}

	m.AddLevel(level)
	m.log(content.LogInfo, "loaded level: %s", level.Name)
	return true
}

// AddLevel registers a level definition. An existing level with the same
// id is replaced with a warning.
func (m *Manager) AddLevel(level content.LevelDefinition) {
	if i, ok := m.levelIndex[level.ID]; ok {
		m.levels[i] = level
		m.log(content.LogWarning, "replaced existing level: %s", level.ID)
		return
	}
	m.levelIndex[level.ID] = len(m.levels)
	m.levels = append(m.levels, level)
}

// LevelByID returns the registered level with the given id, or nil.
func (m *Manager) LevelByID(id string) *content.LevelDefinition {
	if i, ok := m.levelIndex[id]; ok {
		return &m.levels[i]
	}
	return nil
}

// AllLevels returns every registered level in registration order.
func (m *Manager) AllLevels() []content.LevelDefinition {
	return m.levels
}
