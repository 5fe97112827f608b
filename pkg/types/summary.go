package types

import "time"

// CopiedFile records one file written (or, in a dry run, one file that
// would be written) by a task.
type CopiedFile struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Size        int64  `json:"size" yaml:"size"`
}

// TaskResult is the outcome of running a single task.
type TaskResult struct {
	Task   CopyTask     `json:"task" yaml:"task"`
	Status TaskStatus   `json:"status" yaml:"status"`
	Files  []CopiedFile `json:"files" yaml:"files"`
	Bytes  int64        `json:"bytes" yaml:"bytes"`
	// Empty is set when the source pattern matched no files.
	Empty bool   `json:"empty,omitempty" yaml:"empty,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	Err   error  `json:"-" yaml:"-"`
}

// Summary is the outcome of a pipeline run.
type Summary struct {
	Status      PipelineStatus `json:"status" yaml:"status"`
	Tasks       []TaskResult   `json:"tasks" yaml:"tasks"`
	Warnings    []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	FilesCopied int            `json:"filesCopied" yaml:"filesCopied"`
	BytesCopied int64          `json:"bytesCopied" yaml:"bytesCopied"`
	DryRun      bool           `json:"dryRun" yaml:"dryRun"`
	StartTime   time.Time      `json:"startTime" yaml:"startTime"`
	EndTime     time.Time      `json:"endTime" yaml:"endTime"`
}

// NewSummary returns a summary with every task of the pipeline pending.
func NewSummary(p Pipeline, dryRun bool) *Summary {
	s := &Summary{
		Status: PipelinePending,
		Tasks:  make([]TaskResult, len(p)),
		DryRun: dryRun,
	}
	for i, task := range p {
		s.Tasks[i] = TaskResult{Task: task, Status: TaskPending}
	}
	return s
}

// Record stores the result of the task at index i and updates the totals.
func (s *Summary) Record(i int, r TaskResult) {
	s.Tasks[i] = r
	s.FilesCopied += len(r.Files)
	s.BytesCopied += r.Bytes
}

// Failed returns the results of the failed tasks in pipeline order
func (s *Summary) Failed() []TaskResult {
	var failed []TaskResult
	for _, r := range s.Tasks {
		if r.Status == TaskFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Duration returns how long the run took
func (s *Summary) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}
