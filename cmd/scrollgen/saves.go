package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scrollgen/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage save slots",
	Long: `List and delete stored generation states.

Examples:
  scrollgen saves list
  scrollgen saves delete run1`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all save slots",
	RunE:  runSavesList,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesDeleteCmd)
}

func openStore() (*storage.Store, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	dbPath, err := settings.DatabasePath()
	if err != nil {
		return nil, err
	}
	return storage.Open(dbPath)
}

func runSavesList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListSlots()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No save slots.")
		fmt.Println()
		fmt.Println("Run 'scrollgen simulate --save <slot>' to create one.")
		return nil
	}

	// Calculate column widths
	maxSlotLen := 4 // "Slot" header
	for _, e := range entries {
		if len(e.Slot) > maxSlotLen {
			maxSlotLen = len(e.Slot)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-6s  %-20s  %s\n", maxSlotLen, "Slot", "Mode", "Frame", "Seed", "Updated")
	fmt.Printf("  %-*s  %-7s  %-6s  %-20s  %s\n", maxSlotLen, "----", "----", "-----", "----", "-------")

	for _, e := range entries {
		mode := "level"
		if e.IsEndless {
			mode = "endless"
		}
		fmt.Printf("  %-*s  %-7s  %-6d  %-20d  %s\n",
			maxSlotLen, e.Slot, mode, e.FrameIndex, e.SeedValue,
			e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.DeleteSlot(args[0])
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no save slot named %q", args[0])
	}
	fmt.Printf("Deleted slot %q.\n", args[0])
	return nil
}
