package report

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// StylesConfig is the complete styles definition
type StylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

// Styles maps semantic names to lipgloss styles bound to one renderer
type Styles map[string]lipgloss.Style

// LoadStyles builds the styles described by data for renderer r
func LoadStyles(r *lipgloss.Renderer, data []byte) (Styles, error) {
	var config StylesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, eris.Wrap(err, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(Styles, len(config.Styles))
	for name, def := range config.Styles {
		style := r.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
		styles[name] = style
	}
	return styles, nil
}

// Render applies the named style to text. Unknown names leave text as is.
func (s Styles) Render(name, text string) string {
	style, ok := s[name]
	if !ok {
		return text
	}
	return style.Render(text)
}
