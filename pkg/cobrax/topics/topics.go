// Package topics adds file-backed help topics to a Cobra command tree.
// Topics are read from an fs.FS, usually an embedded directory, so the
// help text ships inside the binary.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/arthur-debert/vendorcp/pkg/logging"
	"github.com/spf13/cobra"
)

// optionPrefix marks topics that document a command line flag
const optionPrefix = "option-"

// TopicManager holds the topics loaded for one command tree
type TopicManager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic is one help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Ext returns the topic file extension, used to pick a rendering
func (t *Topic) Ext() string {
	return path.Ext(t.Path)
}

// Options configures the TopicManager
type Options struct {
	// Extensions lists the file extensions read as topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// New creates a TopicManager over fsys with default options
func New(fsys fs.FS) *TopicManager {
	return NewWithOptions(fsys, Options{})
}

// NewWithOptions creates a TopicManager over fsys
func NewWithOptions(fsys fs.FS, opts Options) *TopicManager {
	tm := &TopicManager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}

	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	return tm
}

// Load reads every topic file in the tree. Files in subdirectories are
// named by their base name.
func (tm *TopicManager) Load() error {
	logger := logging.GetLogger("cobrax.topics")

	err := fs.WalkDir(tm.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !tm.supported(path.Ext(p)) {
			return nil
		}

		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		tm.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to load help topics")
	}

	logger.Trace().Int("count", len(tm.topics)).Msg("Help topics loaded")
	return nil
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetTopic looks up a topic by name. Flag spellings such as --dry-run
// find the matching option- topic.
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := tm.topics[name]; ok {
		return topic, true
	}
	topic, ok := tm.topics[optionPrefix+name]
	return topic, ok
}

// ListTopics returns the topic names in sorted order
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the configured renderer
func (tm *TopicManager) Render(topic *Topic) string {
	return tm.renderer.Render(topic.Content, topic.Ext())
}

// WriteIndex writes the list of topics, general topics before flags
func (tm *TopicManager) WriteIndex(w io.Writer, appName string) {
	names := tm.ListTopics()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, optionPrefix) {
			options = append(options, strings.TrimPrefix(name, optionPrefix))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
}

// Initialize installs topic help on rootCmd with default options
func Initialize(rootCmd *cobra.Command, fsys fs.FS) (*TopicManager, error) {
	return InitializeWithOptions(rootCmd, fsys, Options{})
}

// InitializeWithOptions loads the topics and replaces the help command
// with one that also answers "help <topic>" and "help topics".
func InitializeWithOptions(rootCmd *cobra.Command, fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := NewWithOptions(fsys, opts)
	if err := tm.Load(); err != nil {
		return nil, err
	}

	tm.originalHelp = rootCmd.HelpFunc()
	appName := rootCmd.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + appName + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + appName + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return
			}

			if args[0] == "topics" {
				tm.WriteIndex(cmd.OutOrStdout(), appName)
				return
			}

			if topic, ok := tm.GetTopic(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
				return
			}

			// Not a topic, show help for the named command
			target, _, err := rootCmd.Find(args)
			if err != nil || target == nil || target == rootCmd {
				cmd.PrintErrf("Unknown help topic %q\n", args[0])
				tm.originalHelp(rootCmd, []string{})
				return
			}
			tm.originalHelp(target, []string{})
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)

	return tm, nil
}
