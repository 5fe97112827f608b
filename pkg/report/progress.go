package report

import (
	"io"

	"github.com/arthur-debert/vendorcp/pkg/copier"
	"github.com/arthur-debert/vendorcp/pkg/types"
	"github.com/schollz/progressbar/v3"
)

// Progress draws one progress bar per task while a pipeline runs
type Progress struct {
	w       io.Writer
	visible bool
	bar     *progressbar.ProgressBar
}

var _ copier.Observer = (*Progress)(nil)

// NewProgress returns a Progress writing to w. When visible is false the
// bars are tracked but never drawn.
func NewProgress(w io.Writer, visible bool) *Progress {
	return &Progress{w: w, visible: visible}
}

func (p *Progress) TaskStarted(task types.CopyTask, files int) {
	p.bar = nil
	if files > 0 {
		p.bar = p.newBar(files, task.DisplayName())
	}
}

func (p *Progress) FileCopied(types.CopyTask, types.CopiedFile) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *Progress) TaskFinished(result types.TaskResult) {
	if p.bar == nil {
		return
	}
	if result.Status == types.TaskSucceeded {
		_ = p.bar.Finish()
	} else {
		_ = p.bar.Exit()
	}
	p.bar = nil
}

// current returns how many files the running task has copied so far
func (p *Progress) current() int64 {
	if p.bar == nil {
		return 0
	}
	return int64(p.bar.State().CurrentNum)
}

func (p *Progress) newBar(length int, desc string) *progressbar.ProgressBar {
	if !p.visible {
		return progressbar.NewOptions(length, progressbar.OptionSetVisibility(false))
	}

	return progressbar.NewOptions(length,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}
