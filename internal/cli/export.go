package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportFile   string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "o", "yaml", "output format: table, json, yaml, env")
	exportCmd.Flags().StringVar(&exportFile, "file", "", "write to file instead of stdout")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current session's palette",
	Long:  "Export the palette for the saved session state, including all customizations, in a portable format.",
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

		pal, err := st.CurrentPalette()
		if err != nil {
			return err
		}
		params, err := st.EffectiveParams()
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportFile != "" {
			f, err := os.Create(exportFile)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			out = f
		}

		return writePalette(out, exportFormat, st, params, pal)
	},
}
