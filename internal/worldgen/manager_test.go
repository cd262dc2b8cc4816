package worldgen

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/scrollgen/internal/content"
)

const (
	idAlpha = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	idBravo = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	idCarol = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
	idDelta = "dddddddd-dddd-4ddd-8ddd-dddddddddddd"
	idEcho  = "eeeeeeee-eeee-4eee-8eee-eeeeeeeeeeee"
)

// frameJSON builds a minimal WGF file body. Extra fields are appended
// verbatim after the required ones.
func frameJSON(id, name string, difficulty float64, extra string) string {
	s := fmt.Sprintf(`{"id":%q,"name":%q,"difficulty":%g,"width":100,"obstacles":[]`, id, name, difficulty)
	if extra != "" {
		s += "," + extra
	}
	return s + "}"
}

// newTestLoader writes the given files into a core directory and loads
// them.
func newTestLoader(t *testing.T, files map[string]string) *content.Loader {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	l := content.NewLoader(nil)
	if !l.LoadFromDirectories(dir, "") {
		t.Fatal("fixture catalog failed to load")
	}
	return l
}

// standardCatalog is five frames spread over the difficulty range.
func standardCatalog(t *testing.T) *content.Loader {
	t.Helper()
	return newTestLoader(t, map[string]string{
		"a.wgf.json": frameJSON(idAlpha, "Alpha", 1, ""),
		"b.wgf.json": frameJSON(idBravo, "Bravo", 3, ""),
		"c.wgf.json": frameJSON(idCarol, "Carol", 5, ""),
		"d.wgf.json": frameJSON(idDelta, "Delta", 7, ""),
		"e.wgf.json": frameJSON(idEcho, "Echo", 9, ""),
	})
}

func currentID(t *testing.T, m *Manager) string {
	t.Helper()
	wgf := m.CurrentWGF()
	if wgf == nil {
		t.Fatal("no current WGF")
	}
	return wgf.ID
}

func advanceIDs(t *testing.T, m *Manager, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if !m.AdvanceFrame() {
			t.Fatalf("AdvanceFrame failed at step %d", i)
		}
		ids = append(ids, currentID(t, m))
	}
	return ids
}

func drain(m *Manager) []SpawnEvent {
	var events []SpawnEvent
	for {
		ev, ok := m.PopNextEvent()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestSameSeedSameFrameSequence(t *testing.T) {
	loader := standardCatalog(t)

	a := NewManager(loader, nil)
	b := NewManager(loader, nil)
	if !a.InitializeEndless(42, 3) || !b.InitializeEndless(42, 3) {
		t.Fatal("InitializeEndless failed")
	}

	if currentID(t, a) != currentID(t, b) {
		t.Fatal("first frames differ")
	}
	idsA := advanceIDs(t, a, 20)
	idsB := advanceIDs(t, b, 20)
	for i := range idsA {
		if idsA[i] != idsB[i] {
			t.Fatalf("frame %d diverged: %s vs %s", i, idsA[i], idsB[i])
		}
	}
}

func TestDifferentSeedsProduceDifferentRuns(t *testing.T) {
	loader := standardCatalog(t)

	a := NewManager(loader, nil)
	b := NewManager(loader, nil)
	a.InitializeEndless(1, 3)
	b.InitializeEndless(999, 3)

	idsA := append([]string{currentID(t, a)}, advanceIDs(t, a, 15)...)
	idsB := append([]string{currentID(t, b)}, advanceIDs(t, b, 15)...)

	same := true
	for i := range idsA {
		if idsA[i] != idsB[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("seeds 1 and 999 produced identical 16-frame runs")
	}
}

func TestResetReproducesOriginalRun(t *testing.T) {
	loader := standardCatalog(t)

	m := NewManager(loader, nil)
	if !m.InitializeEndless(7, 2) {
		t.Fatal("InitializeEndless failed")
	}
	original := append([]string{currentID(t, m)}, advanceIDs(t, m, 10)...)

	m.Reset()
	replay := append([]string{currentID(t, m)}, advanceIDs(t, m, 10)...)

	for i := range original {
		if original[i] != replay[i] {
			t.Fatalf("frame %d after Reset: got %s, want %s", i, replay[i], original[i])
		}
	}
}

func TestSaveRestoreContinuation(t *testing.T) {
	loader := standardCatalog(t)

	a := NewManager(loader, nil)
	if !a.InitializeEndless(1234, 4) {
		t.Fatal("InitializeEndless failed")
	}
	advanceIDs(t, a, 5)

	saved := a.SaveState()
	want := advanceIDs(t, a, 5)

	b := NewManager(loader, nil)
	if !b.RestoreState(saved) {
		t.Fatal("RestoreState failed")
	}
	got := advanceIDs(t, b, 5)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d after restore: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSaveStateIsDetachedCopy(t *testing.T) {
	loader := standardCatalog(t)

	m := NewManager(loader, nil)
	m.InitializeEndless(5, 3)
	saved := m.SaveState()
	frameAtSave := saved.CurrentFrameIndex

	advanceIDs(t, m, 3)
	if saved.CurrentFrameIndex != frameAtSave {
		t.Error("saved state mutated by subsequent generation")
	}
}

func TestInitializeFromMetadataReproducesRun(t *testing.T) {
	loader := standardCatalog(t)

	a := NewManager(loader, nil)
	a.InitializeEndless(99, 5)
	meta := a.SeedMetadata()
	want := append([]string{currentID(t, a)}, advanceIDs(t, a, 10)...)

	b := NewManager(loader, nil)
	if !b.InitializeFromMetadata(meta) {
		t.Fatal("InitializeFromMetadata failed")
	}
	got := append([]string{currentID(t, b)}, advanceIDs(t, b, 10)...)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d from metadata: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSeedSnapshotIgnoresLaterContent(t *testing.T) {
	// A seed created against a two-frame catalog must never select content
	// added afterward, even when replayed against a larger catalog.
	small := newTestLoader(t, map[string]string{
		"a.wgf.json": frameJSON(idAlpha, "Alpha", 3, ""),
		"b.wgf.json": frameJSON(idBravo, "Bravo", 3, ""),
	})
	m := NewManager(small, nil)
	m.InitializeEndless(2020, 3)
	meta := m.SeedMetadata()

	large := newTestLoader(t, map[string]string{
		"a.wgf.json": frameJSON(idAlpha, "Alpha", 3, ""),
		"b.wgf.json": frameJSON(idBravo, "Bravo", 3, ""),
		"c.wgf.json": frameJSON(idCarol, "Carol", 3, ""),
	})
	replay := NewManager(large, nil)
	if !replay.InitializeFromMetadata(meta) {
		t.Fatal("InitializeFromMetadata failed")
	}

	seen := map[string]bool{currentID(t, replay): true}
	for _, id := range advanceIDs(t, replay, 30) {
		seen[id] = true
	}
	if seen[idCarol] {
		t.Error("frame added after seed creation was selected")
	}
}

func TestInitializeEndlessRequiresCatalog(t *testing.T) {
	m := NewManager(content.NewLoader(nil), nil)
	if m.InitializeEndless(1, 1) {
		t.Error("InitializeEndless succeeded with an empty catalog")
	}
	if m.IsActive() {
		t.Error("manager active after failed initialization")
	}
}

func TestInitializeLevelUnknownID(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)

	if m.InitializeLevel("no-such-level") {
		t.Error("InitializeLevel succeeded for unknown id")
	}
	if m.IsActive() || m.CurrentFrameIndex() != 0 {
		t.Error("failed InitializeLevel mutated state")
	}
}

func TestFixedLevelPlaysExactSequence(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.AddLevel(content.LevelDefinition{
		ID:               "level-1",
		Name:             "Gauntlet",
		Frames:           []string{idAlpha, idBravo, idAlpha},
		TargetDifficulty: 4,
	})

	if !m.InitializeLevel("level-1") {
		t.Fatal("InitializeLevel failed")
	}

	want := []string{idAlpha, idBravo, idAlpha}
	got := []string{currentID(t, m)}
	for m.AdvanceFrame() {
		got = append(got, currentID(t, m))
	}

	if len(got) != len(want) {
		t.Fatalf("played %d frames, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: got %s, want %s", i, got[i], want[i])
		}
	}

	if !m.IsLevelComplete() {
		t.Error("level not marked complete")
	}
	if m.IsEndlessMode() {
		t.Error("fixed level reports endless mode")
	}

	// Further advances are no-ops, not crashes.
	if m.AdvanceFrame() {
		t.Error("AdvanceFrame succeeded after level completion")
	}
	if !m.IsLevelComplete() {
		t.Error("completion flag lost after extra AdvanceFrame")
	}
}

func TestFixedLevelEmitsSingleLevelEnd(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.AddLevel(content.LevelDefinition{
		ID:     "level-1",
		Name:   "Short",
		Frames: []string{idAlpha},
	})
	m.InitializeLevel("level-1")

	m.AdvanceFrame() // exhausts the list, emits LevelEnd
	m.AdvanceFrame() // no-op
	m.AdvanceFrame() // no-op

	ends := 0
	for _, ev := range drain(m) {
		if ev.Type == EventLevelEnd {
			ends++
		}
	}
	if ends != 1 {
		t.Errorf("LevelEnd emitted %d times, want 1", ends)
	}
}

func TestEndlessLevelContinuesProcedurally(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.AddLevel(content.LevelDefinition{
		ID:               "level-e",
		Name:             "Opener",
		Frames:           []string{idAlpha, idBravo},
		TargetDifficulty: 3,
		IsEndless:        true,
	})

	if !m.InitializeLevel("level-e") {
		t.Fatal("InitializeLevel failed")
	}
	got := append([]string{currentID(t, m)}, advanceIDs(t, m, 10)...)

	if got[0] != idAlpha || got[1] != idBravo {
		t.Fatalf("fixed prefix not honored: %v", got[:2])
	}
	if m.IsLevelComplete() {
		t.Error("endless level marked complete")
	}
	// Procedural continuation only draws from the level's snapshot.
	for i, id := range got {
		if id != idAlpha && id != idBravo {
			t.Errorf("frame %d outside level snapshot: %s", i, id)
		}
	}
}

func TestFrameEventOrderingAndPositions(t *testing.T) {
	dir := t.TempDir()
	body := fmt.Sprintf(`{"id":%q,"name":"Alpha","difficulty":1,"width":100,`+
		`"obstacles":[{"type":"static","position":{"x":10,"y":20}},{"type":"hazard","position":{"x":50,"y":0},"collision":{"enabled":true,"damage":5}}],`+
		`"enemies":[{"tag":"drone","position":{"x":70,"y":30},"spawn_delay":2}]}`, idAlpha)
	if err := os.WriteFile(filepath.Join(dir, "a.wgf.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	loader := content.NewLoader(nil)
	if !loader.LoadFromDirectories(dir, "") {
		t.Fatal("fixture catalog failed to load")
	}

	m := NewManager(loader, nil)
	m.InitializeEndless(1, 1)

	events := drain(m)
	wantTypes := []SpawnEventType{EventFrameStart, EventObstacle, EventObstacle, EventEnemy, EventFrameEnd}
	if len(events) != len(wantTypes) {
		t.Fatalf("got %d events, want %d", len(events), len(wantTypes))
	}
	for i, want := range wantTypes {
		if events[i].Type != want {
			t.Fatalf("event %d type = %v, want %v", i, events[i].Type, want)
		}
	}

	if events[0].WorldX != 0 {
		t.Errorf("FrameStart at %v, want 0", events[0].WorldX)
	}
	if events[1].WorldX != 10 || events[1].WorldY != 20 {
		t.Errorf("first obstacle at (%v, %v), want (10, 20)", events[1].WorldX, events[1].WorldY)
	}
	if events[2].Collision.Damage != 5 || events[2].ObstacleType != content.ObstacleHazard {
		t.Errorf("second obstacle payload = %+v", events[2])
	}
	// Scroll speed is zero before the first Update, so spawn_delay adds no
	// offset here.
	if events[3].WorldX != 70 || events[3].EnemyTag != "drone" {
		t.Errorf("enemy event = %+v", events[3])
	}
	if events[4].WorldX != 100 {
		t.Errorf("FrameEnd at %v, want frame width 100", events[4].WorldX)
	}
}

func TestEnemyPositionUsesScrollSpeed(t *testing.T) {
	dir := t.TempDir()
	body := fmt.Sprintf(`{"id":%q,"name":"Alpha","difficulty":1,"width":100,`+
		`"obstacles":[],"enemies":[{"tag":"drone","position":{"x":10,"y":0},"spawn_delay":2}]}`, idAlpha)
	if err := os.WriteFile(filepath.Join(dir, "a.wgf.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	loader := content.NewLoader(nil)
	if !loader.LoadFromDirectories(dir, "") {
		t.Fatal("fixture catalog failed to load")
	}

	m := NewManager(loader, nil)
	m.InitializeEndless(1, 1)
	drain(m)

	// Crossing the 100-unit boundary generates the second frame with a
	// known scroll speed.
	m.Update(1.0, 120)

	var enemy *SpawnEvent
	for _, ev := range drain(m) {
		if ev.Type == EventEnemy {
			e := ev
			enemy = &e
			break
		}
	}
	if enemy == nil {
		t.Fatal("no enemy event after Update")
	}
	// frame start 100 + position 10 + spawn_delay 2 * speed 120
	if want := 100.0 + 10.0 + 2.0*120.0; enemy.WorldX != want {
		t.Errorf("enemy WorldX = %v, want %v", enemy.WorldX, want)
	}
}

func TestUpdateAdvancesAcrossBoundaries(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.InitializeEndless(3, 3)

	m.Update(1.0, 250) // crosses two 100-unit frames

	if m.WorldOffset() != 250 {
		t.Errorf("WorldOffset = %v, want 250", m.WorldOffset())
	}
	if got := m.CurrentFrameIndex(); got != 3 {
		t.Errorf("CurrentFrameIndex = %d, want 3 (initial + 2 crossed)", got)
	}
	if m.State().CurrentFrameEndX <= m.WorldOffset() {
		t.Error("current frame boundary not ahead of the scroll offset")
	}
}

func TestUpdateIdenticalToManualAdvance(t *testing.T) {
	loader := standardCatalog(t)

	a := NewManager(loader, nil)
	b := NewManager(loader, nil)
	a.InitializeEndless(77, 3)
	b.InitializeEndless(77, 3)

	// Drive one manager by scrolling, the other by direct advances; the
	// frame sequences must match.
	var scrolled []string
	scrolled = append(scrolled, currentID(t, a))
	for i := 0; i < 40; i++ {
		before := a.CurrentFrameIndex()
		a.Update(0.5, 60)
		for j := before; j < a.CurrentFrameIndex(); j++ {
			scrolled = append(scrolled, currentID(t, a))
		}
	}
	// The scrolled run records the id reached after each crossing; replay
	// the same count manually.
	manual := append([]string{currentID(t, b)}, advanceIDs(t, b, len(scrolled)-1)...)

	for i := range scrolled {
		if scrolled[i] != manual[i] {
			t.Fatalf("frame %d: scrolled %s, manual %s", i, scrolled[i], manual[i])
		}
	}
}

func TestStopHaltsGeneration(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.InitializeEndless(1, 1)
	m.Stop()

	if m.IsActive() {
		t.Error("manager active after Stop")
	}
	index := m.CurrentFrameIndex()
	if m.AdvanceFrame() {
		t.Error("AdvanceFrame succeeded after Stop")
	}
	m.Update(1, 1000)
	if m.CurrentFrameIndex() != index {
		t.Error("Update generated frames after Stop")
	}
}

func TestMinDistanceRuleSpacesRepeats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.wgf.json": frameJSON(idAlpha, "Alpha", 3, `"spawn_rules":{"min_distance_from_last":2}`),
		"b.wgf.json": frameJSON(idBravo, "Bravo", 3, `"spawn_rules":{"min_distance_from_last":2}`),
		"c.wgf.json": frameJSON(idCarol, "Carol", 3, `"spawn_rules":{"min_distance_from_last":2}`),
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	loader := content.NewLoader(nil)
	if !loader.LoadFromDirectories(dir, "") {
		t.Fatal("fixture catalog failed to load")
	}

	m := NewManager(loader, nil)
	m.InitializeEndless(11, 3)

	ids := append([]string{currentID(t, m)}, advanceIDs(t, m, 50)...)
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			t.Fatalf("frame %d repeats its predecessor despite min distance 2: %s", i, ids[i])
		}
		if i >= 2 && ids[i] == ids[i-2] {
			t.Fatalf("frame %d repeats within distance 2: %s", i, ids[i])
		}
	}
}

func TestSelectionFallbackNeverDeadlocks(t *testing.T) {
	// A single frame that forbids its own reuse is impossible to satisfy;
	// selection must fall back rather than stall.
	dir := t.TempDir()
	body := frameJSON(idAlpha, "Alpha", 3, `"spawn_rules":{"min_distance_from_last":5}`)
	if err := os.WriteFile(filepath.Join(dir, "a.wgf.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	loader := content.NewLoader(nil)
	if !loader.LoadFromDirectories(dir, "") {
		t.Fatal("fixture catalog failed to load")
	}

	var warned bool
	m := NewManager(loader, func(level content.LogLevel, msg string) {
		if level == content.LogWarning {
			warned = true
		}
	})
	m.InitializeEndless(1, 3)

	for _, id := range advanceIDs(t, m, 20) {
		if id != idAlpha {
			t.Fatalf("unexpected frame: %s", id)
		}
	}
	if !warned {
		t.Error("fallback selection did not log a warning")
	}
}

func TestRequiresTagsChainsFrames(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.wgf.json": frameJSON(idAlpha, "CaveEntry", 3, `"tags":["cave"]`),
		"b.wgf.json": frameJSON(idBravo, "CaveDepths", 3, `"spawn_rules":{"requires_tags":["cave"]}`),
		"c.wgf.json": frameJSON(idCarol, "Plains", 3, ""),
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	loader := content.NewLoader(nil)
	if !loader.LoadFromDirectories(dir, "") {
		t.Fatal("fixture catalog failed to load")
	}

	m := NewManager(loader, nil)
	m.InitializeEndless(17, 3)

	ids := append([]string{currentID(t, m)}, advanceIDs(t, m, 60)...)
	for i := 1; i < len(ids); i++ {
		if ids[i] == idBravo && ids[i-1] != idAlpha {
			t.Fatalf("frame %d is CaveDepths but predecessor %s lacks the cave tag", i, ids[i-1])
		}
	}
}

func TestEndlessDifficultyProgression(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.InitializeEndless(1, 2)

	prev := m.CurrentDifficulty()
	for i := 0; i < 20; i++ {
		m.AdvanceFrame()
		cur := m.CurrentDifficulty()
		if cur < prev {
			t.Fatalf("difficulty decreased: %v -> %v", prev, cur)
		}
		prev = cur
	}

	max := loader.Config().EndlessMode.MaxDifficulty
	for i := 0; i < 200; i++ {
		m.AdvanceFrame()
	}
	if got := m.CurrentDifficulty(); got != max {
		t.Errorf("difficulty = %v after long run, want capped at %v", got, max)
	}
}

func TestFixedLevelHoldsDifficulty(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.AddLevel(content.LevelDefinition{
		ID:               "level-1",
		Name:             "Steady",
		Frames:           []string{idAlpha, idBravo, idCarol, idDelta},
		TargetDifficulty: 6,
	})
	m.InitializeLevel("level-1")

	for m.AdvanceFrame() {
		if got := m.CurrentDifficulty(); got != 6 {
			t.Fatalf("difficulty = %v mid-level, want held at 6", got)
		}
	}
}

func TestDifficultyWeightMonotonicallyDecreasing(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.InitializeEndless(1, 5)

	wgf := &content.WGFDefinition{SpawnRules: content.SpawnRules{MaxFrequency: 1}}
	prev := -1.0
	for d := 10.0; d >= 0; d -= 0.5 {
		wgf.Difficulty = m.CurrentDifficulty() + d
		w := m.difficultyWeight(wgf)
		if w <= 0 {
			t.Fatalf("weight %v at distance %v, want strictly positive", w, d)
		}
		if w < prev {
			t.Fatalf("weight not monotonic: %v at distance %v < %v at larger distance", w, d, prev)
		}
		prev = w
	}
}

func TestSubscriptionDeliversInQueueOrder(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)

	var received []SpawnEvent
	sub := m.Subscribe(func(ev SpawnEvent) {
		received = append(received, ev)
	})

	m.InitializeEndless(1, 3)
	m.AdvanceFrame()

	queued := drain(m)
	if len(received) != len(queued) {
		t.Fatalf("callback saw %d events, queue held %d", len(received), len(queued))
	}
	for i := range queued {
		if received[i] != queued[i] {
			t.Fatalf("event %d differs between callback and queue", i)
		}
	}

	sub.Cancel()
	before := len(received)
	m.AdvanceFrame()
	if len(received) != before {
		t.Error("events delivered after Cancel")
	}

	// Cancel twice is safe.
	sub.Cancel()
}

func TestPeekDoesNotConsume(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	m.InitializeEndless(1, 3)

	if !m.HasPendingEvents() {
		t.Fatal("no events after initialization")
	}
	peeked, ok := m.PeekNextEvent()
	if !ok {
		t.Fatal("PeekNextEvent failed")
	}
	popped, ok := m.PopNextEvent()
	if !ok {
		t.Fatal("PopNextEvent failed")
	}
	if peeked != popped {
		t.Error("peeked and popped events differ")
	}
}

func TestLoadLevelFromBytes(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{
			name: "valid",
			body: `{"id":"lvl-1","name":"One","author":"dev","frames":["` + idAlpha + `"],"target_difficulty":3,"is_endless":false}`,
			ok:   true,
		},
		{name: "missing id", body: `{"name":"One","frames":[]}`, ok: false},
		{name: "missing name", body: `{"id":"lvl-1","frames":[]}`, ok: false},
		{name: "missing frames", body: `{"id":"lvl-1","name":"One"}`, ok: false},
		{name: "malformed", body: `{"id":`, ok: false},
	}

	loader := standardCatalog(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(loader, nil)
			if got := m.LoadLevelFromBytes([]byte(tt.body)); got != tt.ok {
				t.Errorf("LoadLevelFromBytes = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestLoadLevelDefaults(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)
	if !m.LoadLevelFromBytes([]byte(`{"id":"lvl-1","name":"One","frames":["` + idAlpha + `"]}`)) {
		t.Fatal("LoadLevelFromBytes failed")
	}

	level := m.LevelByID("lvl-1")
	if level == nil {
		t.Fatal("level not registered")
	}
	if level.Author != "Unknown" {
		t.Errorf("Author = %q, want Unknown default", level.Author)
	}
	if level.TargetDifficulty != 5 {
		t.Errorf("TargetDifficulty = %v, want 5 default", level.TargetDifficulty)
	}
}

func TestAddLevelReplacesDuplicate(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)

	m.AddLevel(content.LevelDefinition{ID: "lvl-1", Name: "First", Frames: []string{idAlpha}})
	m.AddLevel(content.LevelDefinition{ID: "lvl-1", Name: "Second", Frames: []string{idBravo}})

	if len(m.AllLevels()) != 1 {
		t.Fatalf("len(AllLevels) = %d, want 1", len(m.AllLevels()))
	}
	if got := m.LevelByID("lvl-1"); got.Name != "Second" {
		t.Errorf("level name = %q, want replacement", got.Name)
	}
}

func TestLoadLevelFromFile(t *testing.T) {
	loader := standardCatalog(t)
	m := NewManager(loader, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "one.level.json")
	body := `{"id":"lvl-file","name":"FromFile","frames":["` + idAlpha + `","` + idBravo + `"]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if !m.LoadLevelFromFile(path) {
		t.Fatal("LoadLevelFromFile failed")
	}
	if m.LevelByID("lvl-file") == nil {
		t.Error("level from file not registered")
	}
	if m.LoadLevelFromFile(filepath.Join(dir, "missing.level.json")) {
		t.Error("LoadLevelFromFile succeeded for missing file")
	}
}
