package worldgen

// SeedMetadata anchors a generation run. The allowed-id snapshot taken at
// creation time never changes afterward, which is what keeps a seed
// reproducible even after new content is added to the catalog: frames that
// were not in the snapshot are never selected by this seed.
type SeedMetadata struct {
	SeedValue         uint64   `json:"seed_value"`
	TargetDifficulty  float64  `json:"target_difficulty"`
	IsEndless         bool     `json:"is_endless"`
	AllowedWGFIDs     []string `json:"allowed_wgf_ids"`
	LevelID           string   `json:"level_id,omitempty"`
	CreationTimestamp int64    `json:"creation_timestamp"`
}

// Clone returns a deep copy.
func (m SeedMetadata) Clone() SeedMetadata {
	c := m
	c.AllowedWGFIDs = append([]string(nil), m.AllowedWGFIDs...)
	return c
}

// WorldGenState is the complete serializable state of a generation run.
// Restoring it on a fresh Manager continues the run bit-exactly, so it
// carries everything selection depends on: the raw RNG words, the bounded
// recent-frame history, the current frame boundary, and the fixed-level
// cursor.
type WorldGenState struct {
	SeedMetadata      SeedMetadata `json:"seed_metadata"`
	CurrentFrameIndex int          `json:"current_frame_index"`
	WorldOffset       float64      `json:"world_offset"`
	CurrentDifficulty float64      `json:"current_difficulty"`
	RNGState          uint64       `json:"rng_state"`
	RNGIncrement      uint64       `json:"rng_increment"`
	CurrentWGFID      string       `json:"current_wgf_id"`
	IsActive          bool         `json:"is_active"`
	LevelComplete     bool         `json:"level_complete"`

	CurrentFrameEndX float64  `json:"current_frame_end_x"`
	NextFrameInLevel int      `json:"next_frame_in_level"`
	RecentFrameIDs   []string `json:"recent_frame_ids"`
	LastScrollSpeed  float64  `json:"last_scroll_speed"`
}

// Clone returns a deep copy.
func (s WorldGenState) Clone() WorldGenState {
	c := s
	c.SeedMetadata = s.SeedMetadata.Clone()
	c.RecentFrameIDs = append([]string(nil), s.RecentFrameIDs...)
	return c
}
