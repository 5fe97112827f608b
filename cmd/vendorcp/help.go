package vendorcp

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/vendorcp/pkg/cobrax/topics"
	"github.com/arthur-debert/vendorcp/pkg/logging"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// initHelpTopics replaces the help command with one that also serves the
// embedded topics. Markdown is styled only when stdout is a terminal.
func initHelpTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		return
	}

	renderer := topics.NewPlainGlamourRenderer()
	if isTerminal(os.Stdout) {
		renderer = topics.NewGlamourRenderer()
	}

	opts := topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   renderer,
	}
	if _, err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
		logger := logging.GetLogger("cmd.help")
		logger.Warn().Err(err).Msg("Help topics unavailable")
	}
}
