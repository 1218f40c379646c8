// Package cli implements the maintenance subcommands of the binary.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/calibre"
	"github.com/pmaren/bookannex/internal/config"
	"github.com/pmaren/bookannex/internal/normalize"
)

// SweepCommand runs the orphan sweep once and exits, for setups that prefer
// an external cron over the built-in scheduler.
type SweepCommand struct {
	LibraryPath string
	AnnexPath   string
	DryRun      bool
}

// NewSweepCommand creates a new SweepCommand
func NewSweepCommand() *SweepCommand {
	return &SweepCommand{}
}

// ParseFlags parses command line flags
func (cmd *SweepCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)

	fs.StringVar(&cmd.LibraryPath, "library", config.DefaultLibraryPath, "Path to the Calibre metadata.db")
	fs.StringVar(&cmd.AnnexPath, "annex", config.DefaultAnnexPath, "Path to the annex database")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Report orphaned entries without deleting them")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sweep [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Remove overlay data for entities deleted from the Calibre library.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the sweep command
func (cmd *SweepCommand) Run() error {
	library, err := calibre.Open(cmd.LibraryPath, normalize.Default())
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer library.Close()

	if !library.Ok() {
		return fmt.Errorf("library at %s is not readable, refusing to sweep", cmd.LibraryPath)
	}

	store, err := annex.Open(cmd.AnnexPath)
	if err != nil {
		return fmt.Errorf("failed to open annex database: %w", err)
	}
	defer store.Close()

	if cmd.DryRun {
		orphans, err := store.CountOrphans(library.HasEntity)
		if err != nil {
			return fmt.Errorf("sweep dry run failed: %w", err)
		}
		fmt.Printf("Would remove %d orphaned overlay entries\n", orphans)
		return nil
	}

	removed, err := store.SweepOrphans(library.HasEntity)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	fmt.Printf("Removed %d orphaned overlay entries\n", removed)
	return nil
}
