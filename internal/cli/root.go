// Package cli implements the prism command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/prism/internal/catalog"
	"github.com/opencode-ai/prism/internal/config"
	"github.com/opencode-ai/prism/internal/db"
	"github.com/opencode-ai/prism/internal/logging"
	"github.com/opencode-ai/prism/internal/session"
	"github.com/opencode-ai/prism/internal/store"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "prism",
	Short:         "Base24 palette generator and theme editor",
	Long:          "Prism turns a handful of hue, saturation and lightness knobs into a full Base24 color scheme,\nwith layered per-theme customizations that survive theme and flavor switches.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		logger = logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/prism/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(cfg.ThemeDir)
}

func openDatabase() (*db.DB, error) {
	if err := os.MkdirAll(cfg.StateDir, 0700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return db.Open(cfg.DatabasePath())
}

// dbPersister writes a snapshot row after every store mutation.
type dbPersister struct {
	repo    *db.SnapshotRepository
	profile string
}

func (p dbPersister) Persist(state store.State) error {
	_, err := p.repo.Save(context.Background(), p.profile, session.Capture(state))
	return err
}

// openSessionStore builds a parameter store wired to the snapshot database,
// restoring the profile's latest snapshot when one validates. Invalid or
// version-mismatched snapshots are discarded with a warning and the store
// starts from catalog defaults.
func openSessionStore(database *db.DB, cat *catalog.Catalog) (*store.Store, error) {
	repo := db.NewSnapshotRepository(database)
	persister := dbPersister{repo: repo, profile: cfg.Session.Profile}
	opts := []store.Option{store.WithPersister(persister), store.WithLogger(logger)}

	latest, err := repo.Latest(context.Background(), cfg.Session.Profile)
	if err == nil {
		state, restoreErr := session.Restore(latest.Snapshot, cat)
		if restoreErr == nil {
			return store.NewFromState(cat, state, opts...)
		}
		logger.Warn().Err(restoreErr).Msg("discarding saved session, starting from defaults")
	}

	return store.New(cat, opts...)
}
