package vendorcp

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vendorcp/internal/version"
	"github.com/arthur-debert/vendorcp/pkg/config"
	"github.com/arthur-debert/vendorcp/pkg/copier"
	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/arthur-debert/vendorcp/pkg/filesystem"
	"github.com/arthur-debert/vendorcp/pkg/logging"
	"github.com/arthur-debert/vendorcp/pkg/report"
	"github.com/arthur-debert/vendorcp/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// options holds the values of the global flags
type options struct {
	verbosity  int
	logFile    bool
	dir        string
	configPath string
	sourceRoot string
	vendorRoot string
	format     string
	dryRun     bool
	keepGoing  bool
	files      bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "vendorcp",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithWriter(cmd.ErrOrStderr(), opts.verbosity, opts.logFile)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, nil)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.logFile, "log-file", false, MsgFlagLogFile)
	flags.StringVarP(&opts.dir, "dir", "C", "", MsgFlagDir)
	flags.StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	flags.StringVar(&opts.sourceRoot, "source-root", "", MsgFlagSourceRoot)
	flags.StringVar(&opts.vendorRoot, "vendor-root", "", MsgFlagVendorRoot)
	flags.StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.BoolVarP(&opts.keepGoing, "keep-going", "k", false, MsgFlagKeepGoing)
	flags.BoolVar(&opts.files, "files", false, MsgFlagFiles)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	initHelpTopics(rootCmd)
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:               "run [tasks...]",
		Short:             MsgRunShort,
		Long:              MsgRunLong,
		Example:           MsgRunExample,
		GroupID:           "core",
		ValidArgsFunction: taskNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts, args)
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd, opts)
			if err != nil {
				return err
			}

			return renderer.RenderListing(report.Listing{
				SourceRoot: cfg.SourcePath(),
				VendorRoot: cfg.VendorPath(),
				Policy:     cfg.Policy,
				ConfigPath: cfg.Path,
				Tasks:      cfg.Tasks,
			})
		},
	}
}

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init [file]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.init")

			path := config.ProjectFiles[0]
			if len(args) == 1 {
				path = args[0]
			}
			dir, err := workingDir(opts)
			if err != nil {
				return err
			}
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}

			format, err := config.FormatForPath(path)
			if err != nil {
				return err
			}

			fs := afero.NewOsFs()
			exists, err := afero.Exists(fs, path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, "cannot check %s", path)
			}
			if exists && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, path).
					WithDetail(errors.DetailConfigPath, path)
			}

			defaults, err := config.Defaults()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := config.Generate(&buf, defaults, format); err != nil {
				return err
			}
			if err := afero.WriteFile(fs, path, buf.Bytes(), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrDestinationUnwritable, "cannot write %s", path).
					WithDetail(errors.DetailConfigPath, path)
			}

			logger.Info().Str("path", path).Str("format", string(format)).Bool("replaced", exists).Msg("Configuration written")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// runPipeline loads the configuration, runs the selected tasks and prints
// the summary. The summary is printed even when the run fails.
func runPipeline(cmd *cobra.Command, opts *options, names []string) error {
	logger := logging.GetLogger("cmd.run")

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	pipeline, err := selectTasks(cfg.Tasks, names)
	if err != nil {
		return err
	}

	policy, err := cfg.FailurePolicy()
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cmd, opts)
	if err != nil {
		return err
	}

	sourcePath := cfg.SourcePath()
	if exists, _ := afero.DirExists(afero.NewOsFs(), sourcePath); !exists {
		logger.Warn().Str("source_root", sourcePath).Msg(MsgSourceRootMiss)
	}

	src, err := filesystem.NewOS(sourcePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrSourceUnreadable, "cannot open source root").
			WithDetail(errors.DetailFile, sourcePath)
	}
	dst, err := filesystem.NewOS(cfg.VendorPath())
	if err != nil {
		return errors.Wrap(err, errors.ErrDestinationUnwritable, "cannot open vendor root").
			WithDetail(errors.DetailFile, cfg.VendorPath())
	}

	logger.Info().
		Str("source_root", sourcePath).
		Str("vendor_root", cfg.VendorPath()).
		Str("config", cfg.Path).
		Strs("tasks", pipeline.Names()).
		Bool("dry_run", opts.dryRun).
		Msg("Running copy tasks")

	c := copier.New(copier.Options{
		Source:   src,
		Dest:     dst,
		Policy:   policy,
		DryRun:   opts.dryRun,
		Observer: newProgress(cmd, renderer.Format()),
	})

	summary, runErr := c.Run(cmd.Context(), pipeline)
	if err := renderer.RenderSummary(summary); err != nil {
		return err
	}
	return runErr
}

func workingDir(opts *options) (string, error) {
	if opts.dir != "" {
		return opts.dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
	}
	return dir, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	dir, err := workingDir(opts)
	if err != nil {
		return nil, err
	}

	path := opts.configPath
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	overrides := make(map[string]interface{})
	if opts.sourceRoot != "" {
		overrides[config.KeySourceRoot] = opts.sourceRoot
	}
	if opts.vendorRoot != "" {
		overrides[config.KeyVendorRoot] = opts.vendorRoot
	}
	if opts.keepGoing {
		overrides[config.KeyPolicy] = string(types.ContinueOnError)
	}

	return config.Load(config.LoadOptions{
		Dir:       dir,
		Path:      path,
		Overrides: overrides,
	})
}

// selectTasks keeps the named tasks in configured order. No names selects
// every task.
func selectTasks(p types.Pipeline, names []string) (types.Pipeline, error) {
	if len(names) == 0 {
		return p, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	found := make(map[string]bool, len(names))
	var selected types.Pipeline
	for _, task := range p {
		if wanted[task.DisplayName()] {
			selected = append(selected, task)
			found[task.DisplayName()] = true
		}
	}

	for _, name := range names {
		if !found[name] {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownTask, name, strings.Join(p.Names(), ", ")).
				WithDetail(errors.DetailTask, name)
		}
	}
	return selected, nil
}

func newRenderer(cmd *cobra.Command, opts *options) (*report.Renderer, error) {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	renderer, err := report.NewRenderer(cmd.OutOrStdout(), format)
	if err != nil {
		return nil, err
	}
	renderer.Files = opts.files
	return renderer, nil
}

// newProgress draws progress bars on stderr only for interactive output
func newProgress(cmd *cobra.Command, format report.Format) copier.Observer {
	errOut := cmd.ErrOrStderr()
	visible := false
	if f, ok := errOut.(*os.File); ok && format.Interactive() {
		visible = isTerminal(f)
	}
	return report.NewProgress(errOut, visible)
}

// taskNamesCompletion completes the configured task names not yet given
func taskNamesCompletion(opts *options) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := loadConfig(opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		given := make(map[string]bool, len(args))
		for _, arg := range args {
			given[arg] = true
		}

		var names []string
		for _, name := range cfg.Tasks.Names() {
			if !given[name] {
				names = append(names, name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
