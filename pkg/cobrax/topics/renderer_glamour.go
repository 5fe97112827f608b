package topics

import (
	"github.com/arthur-debert/vendorcp/pkg/logging"
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	Style string // "dark", "light", "notty", "auto", or a style file path
	Width int    // 0 keeps glamour's default wrapping
}

// NewGlamourRenderer creates a renderer that picks its style from the terminal
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// NewPlainGlamourRenderer creates a renderer that never emits escape codes
func NewPlainGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "notty"}
}

// Render converts markdown to terminal output. Other formats and render
// failures fall back to the raw content.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	logger := logging.GetLogger("cobrax.topics")

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		logger.Debug().Err(err).Msg("Glamour renderer unavailable")
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		logger.Debug().Err(err).Msg("Markdown rendering failed")
		return content
	}
	return rendered
}
