package types

import (
	"fmt"
	"strings"
)

// TaskStatus tracks a single task: pending -> running -> succeeded | failed
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskSucceeded TaskStatus = "succeeded"
	TaskFailed    TaskStatus = "failed"
)

// IsTerminal reports whether the task has finished, successfully or not
func (s TaskStatus) IsTerminal() bool {
	return s == TaskSucceeded || s == TaskFailed
}

// PipelineStatus tracks a run: pending -> running -> completed | failed
type PipelineStatus string

const (
	PipelinePending   PipelineStatus = "pending"
	PipelineRunning   PipelineStatus = "running"
	PipelineCompleted PipelineStatus = "completed"
	PipelineFailed    PipelineStatus = "failed"
)

// FailurePolicy decides what happens to the remaining tasks once one fails.
type FailurePolicy string

const (
	// StopOnFirstError halts the pipeline after the first failed task.
	// Tasks after it stay pending.
	StopOnFirstError FailurePolicy = "stop"
	// ContinueOnError runs every task and aggregates the failures.
	ContinueOnError FailurePolicy = "continue"
)

// ParseFailurePolicy parses a policy name. The empty string selects StopOnFirstError.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stop", "stop-on-first-error":
		return StopOnFirstError, nil
	case "continue", "keep-going":
		return ContinueOnError, nil
	default:
		return StopOnFirstError, fmt.Errorf("unknown failure policy: %s", s)
	}
}
