package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opencode-ai/prism/internal/tui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive theme editor",
	Long:  "Launch the terminal theme editor: live palette preview with key-driven parameter adjustment.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	if !hasTTY() {
		return errors.New("the theme editor requires an interactive terminal")
	}

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

	return tui.Run(tui.Config{
		Store:   st,
		Catalog: cat,
		Logger:  logger,
	})
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
