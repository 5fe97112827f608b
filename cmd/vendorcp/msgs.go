package vendorcp

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Copy front-end dependencies into a vendor directory"
	MsgRunShort        = "Run the copy tasks"
	MsgListShort       = "List the configured copy tasks"
	MsgInitShort       = "Write a starter configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten  = "Wrote %s\n"
	MsgSourceRootMiss = "Source root does not exist, every task will match nothing"

	// Error output, one line per failure
	MsgErrorTaskFile = "Error: task %s, file %s: %v\n"
	MsgErrorTask     = "Error: task %s: %v\n"
	MsgError         = "Error: %v\n"

	// Error messages
	MsgErrUnknownTask  = "unknown task %q (configured: %s)"
	MsgErrConfigExists = "%s already exists (use --force to replace it)"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagLogFile    = "Also write logs to the state directory log file"
	MsgFlagDir        = "Run as if started in this directory"
	MsgFlagConfig     = "Configuration file (default: discovered in the working directory)"
	MsgFlagSourceRoot = "Directory task sources are matched in (overrides config)"
	MsgFlagVendorRoot = "Directory task destinations are created in (overrides config)"
	MsgFlagFormat     = "Output format: auto, term, text, json or yaml"
	MsgFlagDryRun     = "Resolve every task and report what would be copied without writing"
	MsgFlagKeepGoing  = "Run every task even after a failure and report all failures"
	MsgFlagFiles      = "List every copied file in the summary"
	MsgFlagForce      = "Replace an existing configuration file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
