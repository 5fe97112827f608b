package copier

import "github.com/arthur-debert/vendorcp/pkg/types"

// Observer receives progress events while a pipeline runs. All calls come
// from the goroutine running the pipeline.
//
// TaskStarted is not called for a task that fails before its files are
// resolved; TaskFinished is always called once per task that ran.
type Observer interface {
	TaskStarted(task types.CopyTask, files int)
	FileCopied(task types.CopyTask, file types.CopiedFile)
	TaskFinished(result types.TaskResult)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) TaskStarted(types.CopyTask, int)             {}
func (NopObserver) FileCopied(types.CopyTask, types.CopiedFile) {}
func (NopObserver) TaskFinished(types.TaskResult)               {}
