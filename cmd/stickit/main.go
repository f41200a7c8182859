// Command stickit browses a directory as a sectioned list whose section
// headers stay pinned to the top while their section scrolls by.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/daptify14/stickit/internal/catalog"
	stickitconfig "github.com/daptify14/stickit/internal/config"
	"github.com/daptify14/stickit/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var manifest string
	rootCmd := &cobra.Command{
		Use:   "stickit [dir]",
		Short: "Sectioned file browser with floating section headers",
		Long:  "stickit groups the files under a directory into sections, one per folder, and keeps the header of the section you are reading pinned at the top of the list.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(rootArg(args), manifest)
		},
	}
	rootCmd.Version = version + " (commit " + commit + ", built " + date + ")"
	rootCmd.Flags().StringVar(&manifest, "manifest", "", "browse the sections of a YAML manifest instead of walking a directory")

	rootCmd.AddCommand(newLayoutCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func runTUI(root, manifest string) error {
	cfg, err := stickitconfig.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	iconMode, err := tui.ParseIconMode(cfg.Icons)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var debugLog *slog.Logger
	if debugPath := os.Getenv("STICKIT_DEBUG"); debugPath != "" {
		cleanPath := filepath.Clean(debugPath)
		f, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) //#nosec G703 -- developer-controlled debug log path
		if err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer func() { _ = f.Close() }()
		debugLog = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	opts := tui.Options{
		Root:      root,
		Walk:      walkOptions(cfg),
		Metrics:   cfg.Layout.Metrics(),
		Editor:    cfg.Editor,
		PanelMode: cfg.Panel,
		ThemeMode: string(cfg.Theme),
		IconMode:  iconMode,
		DebugLog:  debugLog,
	}
	if manifest != "" {
		c, err := catalog.LoadManifest(manifest)
		if err != nil {
			return fmt.Errorf("manifest: %w", err)
		}
		opts.Catalog = &c
	}

	model := tui.NewModel(opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error: %w", err)
	}
	return nil
}

func walkOptions(cfg stickitconfig.Config) catalog.WalkOptions {
	return catalog.WalkOptions{
		MaxDepth: cfg.MaxDepth,
		MaxItems: cfg.MaxItems,
		SkipDirs: cfg.SkipDirs,
	}
}
