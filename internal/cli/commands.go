// Package cli wires the tideline commands. With no subcommand it opens the TUI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/tideline/internal/config"
	"github.com/sadopc/tideline/internal/planner"
	"github.com/sadopc/tideline/internal/store"
	"github.com/sadopc/tideline/internal/tui"
)

// env is what every command runs against. The store is opened in
// PersistentPreRunE and closed in PersistentPostRun.
type env struct {
	configPath string
	dbPath     string
	now        func() time.Time

	store   *store.Store
	planner *planner.Planner
}

func (e *env) open() error {
	path := e.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	dbPath := e.dbPath
	if dbPath == "" {
		def, err := store.DefaultDBPath()
		if err != nil {
			return err
		}
		dbPath = cfg.ResolvedDBPath(def)
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	e.store = s
	e.planner = planner.New(s, cfg)
	return e.planner.SeedAnchors()
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
		e.store = nil
	}
}

// New returns the root command.
func New() *cobra.Command {
	return newRoot(&env{now: time.Now})
}

func newRoot(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tideline",
		Short:         "Plan the day around your energy.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(tui.NewApp(e.store, e.planner), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&e.configPath, "config", "", "path to config file (default: ~/.config/tideline/config.toml)")
	cmd.PersistentFlags().StringVar(&e.dbPath, "db", "", "path to the database (default: ~/.config/tideline/tideline.db)")

	addToday(cmd, e)
	addCapacity(cmd, e)
	addExport(cmd, e)
	addMarkers(cmd, e)
	addTasks(cmd, e)
	return cmd
}

// SetupLogging sends log output to debug.log when TIDELINE_DEBUG is set and
// discards it otherwise. The returned closer is never nil.
func SetupLogging() (io.Closer, error) {
	if os.Getenv("TIDELINE_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile("debug.log", "tideline")
	if err != nil {
		return io.NopCloser(nil), err
	}
	return f, nil
}

var errUsage = errors.New("invalid arguments")
