package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/prism/internal/db"
	"github.com/opencode-ai/prism/internal/session"
)

var (
	snapshotsLimit int
	snapshotsKeep  int
	snapshotsFile  string
)

func init() {
	rootCmd.AddCommand(snapshotsCmd)
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
	snapshotsCmd.AddCommand(snapshotsExportCmd)
	snapshotsCmd.AddCommand(snapshotsImportCmd)
	snapshotsListCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "max snapshots to list")
	snapshotsPruneCmd.Flags().IntVar(&snapshotsKeep, "keep", 0, "snapshots to keep (default from config)")
	snapshotsExportCmd.Flags().StringVar(&snapshotsFile, "file", "", "snapshot file to write")
	snapshotsImportCmd.Flags().StringVar(&snapshotsFile, "file", "", "snapshot file to read")
	snapshotsExportCmd.MarkFlagRequired("file")
	snapshotsImportCmd.MarkFlagRequired("file")
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage session snapshot history",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved session snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewSnapshotRepository(database)
		records, err := repo.List(context.Background(), cfg.Session.Profile, snapshotsLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tTHEME\tFLAVOR\tVERSION\tID")
		for _, record := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				record.CreatedAt.Local().Format(time.DateTime),
				record.Snapshot.ActiveTheme,
				record.Snapshot.ActiveFlavor,
				record.Version,
				record.ID,
			)
		}
		return w.Flush()
	},
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old session snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		keep := snapshotsKeep
		if keep <= 0 {
			keep = cfg.Session.HistoryKeep
		}

		repo := db.NewSnapshotRepository(database)
		removed, err := repo.Prune(context.Background(), cfg.Session.Profile, keep)
		if err != nil {
			return err
		}

		fmt.Printf("Pruned %d snapshots, kept newest %d\n", removed, keep)
		return nil
	},
}

var snapshotsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current session snapshot to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		st, err := openSessionStore(database, cat)
		if err != nil {
			return err
		}

		if err := session.SaveFile(snapshotsFile, session.Capture(st.State())); err != nil {
			return err
		}
		fmt.Printf("Wrote snapshot to %s\n", snapshotsFile)
		return nil
	},
}

var snapshotsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Restore a session snapshot from a file",
	Long:  "Validate a snapshot file against the catalog and make it the latest session state. Invalid snapshots are rejected whole.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		snap, err := session.LoadFile(snapshotsFile)
		if err != nil {
			return err
		}
		state, err := session.Restore(snap, cat)
		if err != nil {
			return err
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewSnapshotRepository(database)
		if _, err := repo.Save(context.Background(), cfg.Session.Profile, session.Capture(state)); err != nil {
			return err
		}
		fmt.Printf("Imported snapshot: theme %s, flavor %s\n", state.ActiveTheme, state.ActiveFlavor)
		return nil
	},
}
