package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scrollgen/internal/platform/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Browse the catalog interactively",
	Long: `Opens an interactive browser over the loaded catalog: scroll through
frames, filter by tag, and inspect each frame's spawn rules and content.

Controls:
  Up/Down or j/k  - Scroll
  Tab/Shift+Tab   - Cycle tag filter
  Q/Esc           - Quit`,
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(settings)
	loader := loadCatalog(settings, logger)

	if !loader.HasWGFs() {
		return fmt.Errorf("catalog is empty, nothing to inspect")
	}

	// Get terminal size early for initial layout
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return tui.RunBrowser(loader, width, height)
}
