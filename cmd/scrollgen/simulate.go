package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/scrollgen/internal/config"
	"github.com/vovakirdan/scrollgen/internal/storage"
	"github.com/vovakirdan/scrollgen/internal/worldgen"
)

var (
	flagSeed       uint64
	flagLevel      string
	flagDifficulty string
	flagFrames     int
	flagSaveSlot   string
	flagResumeSlot string
	flagQuiet      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a generation simulation",
	Long: `Generates frames from a seed or a fixed level and prints the spawn
events. The same seed always prints the same events.

Difficulty presets:
  easy   - initial target difficulty 2
  normal - initial target difficulty 5
  hard   - initial target difficulty 8

Examples:
  scrollgen simulate --seed 42 --frames 30
  scrollgen simulate --difficulty hard
  scrollgen simulate --level level_cave_run
  scrollgen simulate --seed 42 --frames 10 --save run1
  scrollgen simulate --resume run1 --frames 10`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Generation seed (0 = random based on time)")
	simulateCmd.Flags().StringVar(&flagLevel, "level", "", "Fixed level id to play instead of endless mode")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 0, "Frames to generate (0 = config default)")
	simulateCmd.Flags().StringVar(&flagSaveSlot, "save", "", "Store the final state under this slot")
	simulateCmd.Flags().StringVar(&flagResumeSlot, "resume", "", "Continue from the state stored under this slot")
	simulateCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Only print the frame summary, not every event")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(settings)
	loader := loadCatalog(settings, logger)

	if !loader.HasWGFs() {
		return fmt.Errorf("catalog is empty, nothing to simulate")
	}

	manager := worldgen.NewManager(loader, logSink(logger))
	loadLevels(manager, settings.Content.LevelsDir, logger)

	var store *storage.Store
	if flagSaveSlot != "" || flagResumeSlot != "" {
		dbPath, err := settings.DatabasePath()
		if err != nil {
			return err
		}
		store, err = storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	// Print events as they are generated rather than draining the queue,
	// so frame boundaries interleave naturally with the output.
	if !flagQuiet {
		sub := manager.Subscribe(printEvent)
		defer sub.Cancel()
	}

	switch {
	case flagResumeSlot != "":
		state, ok, err := store.LoadSlot(flagResumeSlot)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no save slot named %q", flagResumeSlot)
		}
		if !manager.RestoreState(state) {
			return fmt.Errorf("cannot restore slot %q", flagResumeSlot)
		}
		logger.Info("resumed run", "slot", flagResumeSlot, "frame", manager.CurrentFrameIndex())

	case flagLevel != "":
		if !manager.InitializeLevel(flagLevel) {
			return fmt.Errorf("cannot start level %q (known levels: %s)",
				flagLevel, knownLevels(manager))
		}

	case flagSeed != 0:
		if !manager.InitializeEndless(flagSeed, config.TargetForPreset(config.DifficultyPreset(flagDifficulty))) {
			return fmt.Errorf("cannot initialize endless mode")
		}

	default:
		seed := manager.InitializeEndlessRandom(config.TargetForPreset(config.DifficultyPreset(flagDifficulty)))
		if seed == 0 {
			return fmt.Errorf("cannot initialize endless mode")
		}
		logger.Info("using random seed", "seed", seed)
	}

	frames := flagFrames
	if frames <= 0 {
		frames = settings.Simulation.Frames
	}

	generated := 0
	for generated < frames && manager.AdvanceFrame() {
		generated++
	}

	fmt.Println()
	fmt.Printf("Generated %d frames, difficulty %.2f, world length %.0f units.\n",
		manager.CurrentFrameIndex(), manager.CurrentDifficulty(), manager.State().CurrentFrameEndX)
	if manager.IsLevelComplete() {
		fmt.Println("Level complete.")
	}

	if flagSaveSlot != "" {
		if err := store.SaveSlot(flagSaveSlot, manager.SaveState()); err != nil {
			return err
		}
		fmt.Printf("Saved state to slot %q.\n", flagSaveSlot)
	}
	return nil
}

// printEvent writes one spawn event line to stdout.
func printEvent(ev worldgen.SpawnEvent) {
	switch ev.Type {
	case worldgen.EventFrameStart:
		fmt.Printf("frame %d  x=%.0f  wgf=%s\n", ev.FrameNumber, ev.WorldX, ev.WGFID)
	case worldgen.EventObstacle:
		fmt.Printf("  obstacle[%d]  %s  at (%.0f, %.0f)\n", ev.Index, ev.ObstacleType, ev.WorldX, ev.WorldY)
	case worldgen.EventEnemy:
		fmt.Printf("  enemy[%d]  %s  at (%.0f, %.0f)  delay=%.1fs\n", ev.Index, ev.EnemyTag, ev.WorldX, ev.WorldY, ev.SpawnDelay)
	case worldgen.EventFrameEnd:
		fmt.Printf("  end of frame at x=%.0f\n", ev.WorldX)
	case worldgen.EventLevelEnd:
		fmt.Printf("level end at x=%.0f\n", ev.WorldX)
	}
}

// loadLevels registers every *.level.json under dir. A missing directory
// is fine; levels are optional.
func loadLevels(m *worldgen.Manager, dir string, logger *log.Logger) {
	if dir == "" {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("no levels directory", "dir", dir)
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".level.json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		m.LoadLevelFromFile(filepath.Join(dir, name))
	}
}

// knownLevels lists registered level ids for error messages.
func knownLevels(m *worldgen.Manager) string {
	levels := m.AllLevels()
	if len(levels) == 0 {
		return "none"
	}
	ids := make([]string, len(levels))
	for i, l := range levels {
		ids[i] = l.ID
	}
	return strings.Join(ids, ", ")
}
