package vendorcp

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/vendorcp/pkg/errors"
)

// Exit codes
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// FormatError renders err for stderr with one line per failure, naming
// the failed task and file where they are known.
func FormatError(err error) string {
	var b strings.Builder
	for _, e := range flatten(err) {
		details := errors.GetErrorDetails(e)
		task, _ := details[errors.DetailTask].(string)
		file, _ := details[errors.DetailFile].(string)

		switch {
		case task != "" && file != "":
			fmt.Fprintf(&b, MsgErrorTaskFile, task, file, e)
		case task != "":
			fmt.Fprintf(&b, MsgErrorTask, task, e)
		default:
			fmt.Fprintf(&b, MsgError, e)
		}
	}
	return b.String()
}

// ExitCode maps err to the process exit status. A cancellation anywhere
// in a joined error wins over other failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, e := range flatten(err) {
		if errors.IsErrorCode(e, errors.ErrCancelled) {
			return ExitInterrupted
		}
	}
	return ExitFailure
}

// flatten expands joined errors
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if stderrors.As(err, &joined) {
		var errs []error
		for _, e := range joined.Unwrap() {
			errs = append(errs, flatten(e)...)
		}
		return errs
	}
	return []error{err}
}
