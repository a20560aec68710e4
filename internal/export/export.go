// Package export renders resolved parameters and palettes into portable text
// formats.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/prism/internal/palette"
)

// Metadata describes the exported scheme.
type Metadata struct {
	Scheme string
	Author string
	Theme  string
	Flavor string
}

type jsonExport struct {
	Scheme string            `json:"scheme"`
	Author string            `json:"author,omitempty"`
	Theme  string            `json:"theme"`
	Flavor string            `json:"flavor"`
	Params jsonParams        `json:"params"`
	Colors map[string]string `json:"colors"`
}

type jsonParams struct {
	BgHue        float64            `json:"bgHue"`
	BgSat        float64            `json:"bgSat"`
	BgLight      float64            `json:"bgLight"`
	AccentHue    float64            `json:"accentHue"`
	AccentSat    float64            `json:"accentSat"`
	AccentLight  float64            `json:"accentLight"`
	CommentLight float64            `json:"commentLight"`
	Adjustments  map[string]float64 `json:"colorAdjustments,omitempty"`
}

// JSON renders the full parameter vector and palette as indented JSON.
func JSON(meta Metadata, params palette.Params, pal palette.Palette) ([]byte, error) {
	adjustments := make(map[string]float64, len(params.Adjustments))
	for slot, offset := range params.Adjustments {
		adjustments[slot.String()] = offset
	}
	if len(adjustments) == 0 {
		adjustments = nil
	}

	out := jsonExport{
		Scheme: meta.Scheme,
		Author: meta.Author,
		Theme:  meta.Theme,
		Flavor: meta.Flavor,
		Params: jsonParams{
			BgHue:        params.BgHue,
			BgSat:        params.BgSat,
			BgLight:      params.BgLight,
			AccentHue:    params.AccentHue,
			AccentSat:    params.AccentSat,
			AccentLight:  params.AccentLight,
			CommentLight: params.CommentLight,
			Adjustments:  adjustments,
		},
		Colors: pal,
	}
	return json.MarshalIndent(out, "", "  ")
}

type schemeFile struct {
	System  string     `yaml:"system"`
	Name    string     `yaml:"name"`
	Author  string     `yaml:"author,omitempty"`
	Variant string     `yaml:"variant"`
	Palette *yaml.Node `yaml:"palette"`
}

// YAML renders a Base24 scheme file. The palette mapping is built node by
// node so slots always emit in canonical base00..base17 order; yaml's own
// map-key sort would put base0A..base0F ahead of base00.
func YAML(meta Metadata, params palette.Params, pal palette.Palette) ([]byte, error) {
	variant := "dark"
	if params.IsLight() {
		variant = "light"
	}

	paletteNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range palette.Keys {
		paletteNode.Content = append(paletteNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: pal.Hex(key), Style: yaml.DoubleQuotedStyle},
		)
	}

	out := schemeFile{
		System:  "base24",
		Name:    meta.Scheme,
		Author:  meta.Author,
		Variant: variant,
		Palette: paletteNode,
	}
	return yaml.Marshal(out)
}

// ShellEnv renders the palette as shell export statements, one per slot.
func ShellEnv(pal palette.Palette) string {
	keys := make([]string, 0, len(pal))
	for key := range pal {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "export %s=%q\n", strings.ToUpper(key), pal[key])
	}
	return b.String()
}
