package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(themesCmd)
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long:  "List the builtin and user themes with their background defaults and flavors.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tBACKGROUND\tFLAVORS\tSOURCE\tDESCRIPTION")
		for _, id := range cat.Themes() {
			theme, err := cat.Theme(id)
			if err != nil {
				return err
			}
			bg := fmt.Sprintf("h%.0f s%.0f l%.0f", theme.Background.Hue, theme.Background.Saturation, theme.Background.Lightness)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				theme.Name,
				bg,
				strings.Join(cat.Flavors(id), ","),
				theme.Source,
				theme.Description,
			)
		}
		return w.Flush()
	},
}
