package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all frames in the catalog",
	Long:  `Loads the content catalog and shows every world generation frame.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(settings)
	loader := loadCatalog(settings, logger)

	frames := loader.AllWGFs()
	if len(frames) == 0 {
		fmt.Println("No frames loaded.")
		fmt.Printf("Looked in %s and %s.\n", settings.Content.CoreDir, settings.Content.UserDir)
		return nil
	}

	fmt.Printf("Loaded %d frames:\n", len(frames))
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, f := range frames {
		if len(f.Name) > maxNameLen {
			maxNameLen = len(f.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-5s  %-6s  %-6s  %s\n", maxNameLen, "Name", "Diff", "Width", "Src", "Tags")
	fmt.Printf("  %-*s  %-5s  %-6s  %-6s  %s\n", maxNameLen, "----", "----", "-----", "---", "----")

	// Print frames
	for _, f := range frames {
		source := "user"
		if f.IsCore {
			source = "core"
		}
		fmt.Printf("  %-*s  %-5.1f  %-6d  %-6s  %s\n",
			maxNameLen, f.Name, f.Difficulty, f.Width, source, strings.Join(f.Tags, ","))
	}

	fmt.Println()
	fmt.Println("Run 'scrollgen inspect' to browse frame details.")
	return nil
}
