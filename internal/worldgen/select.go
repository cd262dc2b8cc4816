package worldgen

import (
	"math"

	"github.com/vovakirdan/scrollgen/internal/content"
)

// selectNextWGF picks the next frame for procedural generation. Candidates
// come from the seed's allowed-id snapshot, filtered by spawn rules, and
// are drawn with weights that favor frames whose difficulty is close to
// the current target. When nothing is eligible the spawn rules are ignored
// and the draw falls back to the full allowed set, so selection can never
// deadlock while the snapshot resolves to at least one frame.
func (m *Manager) selectNextWGF() string {
	var (
		ids     []string
		weights []float64
	)
	for _, id := range m.state.SeedMetadata.AllowedWGFIDs {
		wgf := m.loader.WGFByID(id)
		if wgf == nil || !m.canSelectWGF(wgf) {
			continue
		}
		if w := m.difficultyWeight(wgf); w > 0 {
			ids = append(ids, id)
			weights = append(weights, w)
		}
	}

	if len(ids) == 0 {
		m.log(content.LogWarning, "no eligible WGF, falling back to full allowed set")
		for _, id := range m.state.SeedMetadata.AllowedWGFIDs {
			if m.loader.WGFByID(id) != nil {
				ids = append(ids, id)
				weights = append(weights, 1.0)
			}
		}
	}
	if len(ids) == 0 {
		return ""
	}

	return ids[m.rng.SelectWeighted(weights)]
}

// difficultyWeight maps the distance between a frame's difficulty and the
// current target to a selection weight. The curve is a Gaussian falloff
// exp(-d²/4): strictly positive and monotonically decreasing in the
// distance, so closer frames always weigh more and an eligible candidate
// never weighs zero unless its max_frequency is zero.
func (m *Manager) difficultyWeight(wgf *content.WGFDefinition) float64 {
	d := math.Abs(wgf.Difficulty - m.state.CurrentDifficulty)
	return math.Exp(-d*d/4.0) * wgf.SpawnRules.MaxFrequency
}

// canSelectWGF applies the frame's spawn rules against the recent-frame
// history.
func (m *Manager) canSelectWGF(wgf *content.WGFDefinition) bool {
	// Minimum reuse distance: the frame must not appear among the last
	// min_distance_from_last selections.
	if minDist := wgf.SpawnRules.MinDistanceFromLast; minDist > 0 {
		check := len(m.state.RecentFrameIDs)
		if check > minDist {
			check = minDist
		}
		for i := 0; i < check; i++ {
			if m.state.RecentFrameIDs[len(m.state.RecentFrameIDs)-1-i] == wgf.ID {
				return false
			}
		}
	}

	// Tag chaining: the previous frame must carry every required tag.
	if len(wgf.SpawnRules.RequiresTags) > 0 && len(m.state.RecentFrameIDs) > 0 {
		lastID := m.state.RecentFrameIDs[len(m.state.RecentFrameIDs)-1]
		if last := m.loader.WGFByID(lastID); last != nil {
			for _, tag := range wgf.SpawnRules.RequiresTags {
				if !last.HasTag(tag) {
					return false
				}
			}
		}
	}

	return true
}
