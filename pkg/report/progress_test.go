package report

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/vendorcp/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestProgressVisible(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, true)
	task := types.CopyTask{Name: "bourbon", Source: "bourbon/**/*", Destination: "bourbon"}

	p.TaskStarted(task, 3)
	p.FileCopied(task, types.CopiedFile{Source: "bourbon/a.scss"})
	p.FileCopied(task, types.CopiedFile{Source: "bourbon/b.scss"})
	assert.Equal(t, int64(2), p.current())

	p.FileCopied(task, types.CopiedFile{Source: "bourbon/c.scss"})
	p.TaskFinished(types.TaskResult{Task: task, Status: types.TaskSucceeded})

	assert.Contains(t, buf.String(), "bourbon")
	assert.Equal(t, int64(0), p.current())
}

func TestProgressHidden(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, false)
	task := types.CopyTask{Name: "neat", Source: "neat/**/*", Destination: "neat"}

	p.TaskStarted(task, 2)
	p.FileCopied(task, types.CopiedFile{})
	assert.Equal(t, int64(1), p.current())
	p.TaskFinished(types.TaskResult{Task: task, Status: types.TaskFailed})

	assert.Empty(t, buf.String())
}

func TestProgressEmptyTask(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, true)
	task := types.CopyTask{Name: "cfa-styleguide", Source: "x/**", Destination: "x"}

	// A task that matched nothing and one that failed before starting
	p.TaskStarted(task, 0)
	p.TaskFinished(types.TaskResult{Task: task, Status: types.TaskSucceeded, Empty: true})
	p.TaskFinished(types.TaskResult{Task: task, Status: types.TaskFailed})

	assert.Empty(t, buf.String())
}
