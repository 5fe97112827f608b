package copier

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/arthur-debert/vendorcp/pkg/glob"
	"github.com/arthur-debert/vendorcp/pkg/logging"
	"github.com/arthur-debert/vendorcp/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const dirPerm os.FileMode = 0755

// Options configures a Copier
type Options struct {
	// Source is the dependency root every source pattern is resolved in.
	Source afero.Fs
	// Dest is the vendor root every destination is created in.
	Dest afero.Fs

	Policy types.FailurePolicy

	// DryRun resolves every task without touching Dest.
	DryRun bool

	Observer Observer
}

// Copier executes copy tasks against a pair of filesystems
type Copier struct {
	source   afero.Fs
	dest     afero.Fs
	policy   types.FailurePolicy
	dryRun   bool
	observer Observer
	logger   zerolog.Logger
}

// New creates a Copier. A nil Observer is replaced by NopObserver and an
// empty Policy means StopOnFirstError.
func New(opts Options) *Copier {
	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	policy := opts.Policy
	if policy == "" {
		policy = types.StopOnFirstError
	}

	return &Copier{
		source:   opts.Source,
		dest:     opts.Dest,
		policy:   policy,
		dryRun:   opts.DryRun,
		observer: observer,
		logger:   logging.GetLogger("copier"),
	}
}

// Run executes the tasks of p in order and returns the run summary. The
// summary is returned even when err is not nil; it records which tasks
// succeeded, failed, or never ran.
func (c *Copier) Run(ctx context.Context, p types.Pipeline) (*types.Summary, error) {
	summary := types.NewSummary(p, c.dryRun)

	if err := p.Validate(); err != nil {
		summary.Status = types.PipelineFailed
		return summary, err
	}

	logger := c.logger.With().
		Str("run_id", uuid.NewString()).
		Bool("dry_run", c.dryRun).
		Logger()
	logger.Info().
		Int("tasks", len(p)).
		Str("policy", string(c.policy)).
		Msg("Starting vendoring run")

	summary.Status = types.PipelineRunning
	summary.StartTime = time.Now()

	var errs []error
	for i, task := range p {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("remaining", len(p)-i).Msg("Run cancelled")
			errs = append(errs, errors.Wrap(err, errors.ErrCancelled, "run cancelled"))
			break
		}

		result := c.runTask(ctx, logger, task)
		summary.Record(i, result)

		if result.Empty {
			summary.Warnings = append(summary.Warnings,
				"task "+task.DisplayName()+": pattern "+task.Source+" matched no files")
		}

		if result.Err != nil {
			errs = append(errs, result.Err)
			if c.policy == types.StopOnFirstError || errors.IsErrorCode(result.Err, errors.ErrCancelled) {
				break
			}
		}
	}

	summary.EndTime = time.Now()

	logEvent := logger.Info()
	if len(errs) > 0 {
		summary.Status = types.PipelineFailed
		logEvent = logger.Error()
	} else {
		summary.Status = types.PipelineCompleted
	}
	logEvent.
		Str("status", string(summary.Status)).
		Int("files", summary.FilesCopied).
		Int64("bytes", summary.BytesCopied).
		Dur("duration", summary.Duration()).
		Msg("Vendoring run finished")

	return summary, joinErrors(errs)
}

// RunTask executes a single task outside of a pipeline
func (c *Copier) RunTask(ctx context.Context, task types.CopyTask) types.TaskResult {
	if err := task.Validate(); err != nil {
		return c.failed(c.logger, types.TaskResult{Task: task}, err)
	}
	return c.runTask(ctx, c.logger, task)
}

func (c *Copier) runTask(ctx context.Context, logger zerolog.Logger, task types.CopyTask) types.TaskResult {
	logger = logger.With().
		Str("task", task.DisplayName()).
		Str("source", task.Source).
		Str("destination", task.Destination).
		Logger()
	done := logging.LogOperationStart(logger, "copy_task")
	defer done()

	result := types.TaskResult{Task: task, Status: types.TaskRunning}

	matches, err := glob.Resolve(c.source, task)
	if err != nil {
		return c.failed(logger, result, classifyResolveError(err, task))
	}

	// The destination exists after a successful task even if nothing matched
	if !c.dryRun {
		if err := c.dest.MkdirAll(task.Destination, dirPerm); err != nil {
			return c.failed(logger, result,
				errors.Wrapf(err, errors.ErrDestinationUnwritable, "cannot create %s", task.Destination).
					WithDetail(errors.DetailFile, task.Destination))
		}
	}

	files := 0
	for _, m := range matches {
		if !m.Dir {
			files++
		}
	}
	if files == 0 {
		result.Empty = true
		logger.Warn().Str("code", string(errors.ErrPatternMatchedNothing)).Msg("Source pattern matched no files")
	}
	c.observer.TaskStarted(task, files)

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return c.failed(logger, result, errors.Wrap(err, errors.ErrCancelled, "run cancelled"))
		}

		target := filepath.Join(task.Destination, m.Rel)

		// Matched directories are recreated so empty ones survive
		if m.Dir {
			if c.dryRun {
				continue
			}
			if err := c.dest.MkdirAll(target, dirPerm); err != nil {
				return c.failed(logger, result, destError(err, target, "cannot create directory"))
			}
			continue
		}
		file := types.CopiedFile{
			Source:      filepath.ToSlash(m.Source),
			Destination: filepath.ToSlash(target),
			Size:        m.Size,
		}

		if c.dryRun {
			logger.Debug().Str("file", file.Source).Str("target", file.Destination).Msg("Would copy")
		} else {
			n, err := c.copyFile(m, target)
			if err != nil {
				return c.failed(logger, result, err)
			}
			file.Size = n
			logger.Trace().Str("file", file.Source).Int64("bytes", n).Msg("Copied")
		}

		result.Files = append(result.Files, file)
		result.Bytes += file.Size
		c.observer.FileCopied(task, file)
	}

	result.Status = types.TaskSucceeded
	logger.Info().
		Int("files", len(result.Files)).
		Int64("bytes", result.Bytes).
		Msg("Task completed")
	c.observer.TaskFinished(result)
	return result
}

func (c *Copier) failed(logger zerolog.Logger, result types.TaskResult, err error) types.TaskResult {
	var copyErr *errors.CopyError
	if stderrors.As(err, &copyErr) {
		task := result.Task
		copyErr.WithTask(task.DisplayName(), task.Source, task.Destination)
	}

	result.Status = types.TaskFailed
	result.Err = err
	result.Error = err.Error()

	logger.Error().
		Err(err).
		Str("code", string(errors.GetErrorCode(err))).
		Int("copied", len(result.Files)).
		Msg("Task failed")
	c.observer.TaskFinished(result)
	return result
}

// copyFile copies one matched file to target, creating intermediate
// directories and keeping the source permission bits. Existing files are
// overwritten.
func (c *Copier) copyFile(m glob.Match, target string) (int64, error) {
	in, err := c.source.Open(m.Source)
	if err != nil {
		return 0, sourceError(err, m.Source, "cannot open")
	}
	defer func() { _ = in.Close() }()

	if err := c.dest.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return 0, destError(err, target, "cannot create directory for")
	}

	// Owner write is kept so a later run can overwrite the file
	perm := m.Mode.Perm() | 0200
	out, err := c.dest.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, destError(err, target, "cannot open")
	}

	src := &trackingReader{r: in}
	n, err := io.Copy(out, src)
	if err != nil {
		_ = out.Close()
		if src.err != nil {
			return n, sourceError(src.err, m.Source, "cannot read")
		}
		return n, destError(err, target, "cannot write")
	}
	if err := out.Close(); err != nil {
		return n, destError(err, target, "cannot write")
	}

	// OpenFile only applies perm on create
	if err := c.dest.Chmod(target, perm); err != nil {
		return n, destError(err, target, "cannot set mode on")
	}
	return n, nil
}

// trackingReader remembers read errors so a failed io.Copy can be blamed
// on the correct side.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}

func sourceError(err error, file, msg string) error {
	return errors.Wrapf(err, errors.ErrSourceUnreadable, "%s %s", msg, filepath.ToSlash(file)).
		WithDetail(errors.DetailFile, filepath.ToSlash(file))
}

func destError(err error, file, msg string) error {
	return errors.Wrapf(err, errors.ErrDestinationUnwritable, "%s %s", msg, filepath.ToSlash(file)).
		WithDetail(errors.DetailFile, filepath.ToSlash(file))
}

func classifyResolveError(err error, task types.CopyTask) error {
	if stderrors.Is(err, doublestar.ErrBadPattern) {
		return errors.Wrapf(err, errors.ErrPatternInvalid, "invalid source pattern %s", task.Source)
	}
	base, _ := glob.Split(task.Source)
	return errors.Wrapf(err, errors.ErrSourceUnreadable, "cannot read %s", base).
		WithDetail(errors.DetailFile, base)
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return stderrors.Join(errs...)
	}
}
