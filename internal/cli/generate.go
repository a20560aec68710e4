package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/prism/internal/export"
	"github.com/opencode-ai/prism/internal/hue"
	"github.com/opencode-ai/prism/internal/palette"
	"github.com/opencode-ai/prism/internal/store"
)

var (
	generateTheme  string
	generateFlavor string
	generateFormat string
	generateSets   []string
	generateAdjust []string
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateTheme, "theme", "t", "", "theme to generate (default: first catalog theme)")
	generateCmd.Flags().StringVarP(&generateFlavor, "flavor", "f", "", "flavor to generate (default: theme default)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "o", "table", "output format: table, json, yaml, env")
	generateCmd.Flags().StringArrayVar(&generateSets, "set", nil, "parameter override, e.g. --set accent-saturation=80")
	generateCmd.Flags().StringArrayVar(&generateAdjust, "adjust", nil, "per-slot hue offset, e.g. --adjust yellow=+40")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a Base24 palette",
	Long:  "Generate the full 24-color palette for a theme and flavor, optionally with parameter overrides applied on top.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		// Generation is stateless: a throwaway store without persistence.
		st, err := store.New(cat, store.WithLogger(logger))
		if err != nil {
			return err
		}
		if generateTheme != "" {
			if err := st.SwitchTheme(generateTheme); err != nil {
				return err
			}
		}
		if generateFlavor != "" {
			if err := st.SwitchFlavor(generateFlavor); err != nil {
				return err
			}
		}
		if err := applySets(st, generateSets); err != nil {
			return err
		}
		if err := applyAdjustments(st, generateAdjust); err != nil {
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

		return writePalette(os.Stdout, generateFormat, st, params, pal)
	},
}

// paramFields maps flag names to store fields.
var paramFields = map[string]store.Field{
	"bg-hue":            store.FieldBgHue,
	"bg-saturation":     store.FieldBgSat,
	"bg-lightness":      store.FieldBgLight,
	"accent-hue":        store.FieldAccentHue,
	"accent-saturation": store.FieldAccentSat,
	"accent-lightness":  store.FieldAccentLight,
	"comment-lightness": store.FieldCommentLight,
}

func applySets(st *store.Store, sets []string) error {
	for _, set := range sets {
		name, raw, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, want field=value", set)
		}
		field, ok := paramFields[strings.TrimSpace(name)]
		if !ok {
			return fmt.Errorf("unknown parameter %q", name)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		if err := st.UpdateParam(field, value); err != nil {
			return err
		}
	}
	return nil
}

func applyAdjustments(st *store.Store, adjustments []string) error {
	for _, adj := range adjustments {
		name, raw, ok := strings.Cut(adj, "=")
		if !ok {
			return fmt.Errorf("invalid --adjust %q, want slot=offset", adj)
		}
		slot := hue.ParseSlot(strings.TrimSpace(name))
		if slot == "" {
			return fmt.Errorf("unknown accent slot %q", name)
		}
		offset, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(raw), "+"), 64)
		if err != nil {
			return fmt.Errorf("invalid offset for %s: %w", name, err)
		}
		if err := st.UpdateColorAdjustment(slot, offset); err != nil {
			return err
		}
	}
	return nil
}

func writePalette(out *os.File, format string, st *store.Store, params palette.Params, pal palette.Palette) error {
	meta := export.Metadata{
		Scheme: fmt.Sprintf("%s-%s", st.ActiveTheme(), st.ActiveFlavor()),
		Author: "prism",
		Theme:  st.ActiveTheme(),
		Flavor: st.ActiveFlavor(),
	}

	switch strings.ToLower(format) {
	case "table":
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLOT\tHEX")
		for _, key := range palette.Keys {
			fmt.Fprintf(w, "%s\t%s\n", key, pal.Hex(key))
		}
		return w.Flush()
	case "json":
		data, err := export.JSON(meta, params, pal)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		data, err := export.YAML(meta, params, pal)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "env":
		_, err := out.WriteString(export.ShellEnv(pal))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
