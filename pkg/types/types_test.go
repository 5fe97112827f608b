package types

import (
	"testing"
	"time"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTaskDisplayName(t *testing.T) {
	assert.Equal(t, "bourbon", CopyTask{Name: "bourbon", Destination: "x"}.DisplayName())
	assert.Equal(t, "normalize.css", CopyTask{Destination: "normalize.css"}.DisplayName())
	assert.Equal(t, "neat", CopyTask{Destination: "grid/neat"}.DisplayName())
}

func TestCopyTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    CopyTask
		wantErr errors.ErrorCode
	}{
		{
			name: "valid",
			task: CopyTask{Source: "bourbon/**/*", Destination: "bourbon"},
		},
		{
			name:    "missing_source",
			task:    CopyTask{Destination: "bourbon"},
			wantErr: errors.ErrInvalidInput,
		},
		{
			name:    "missing_destination",
			task:    CopyTask{Source: "bourbon/**/*"},
			wantErr: errors.ErrInvalidInput,
		},
		{
			name:    "absolute_source",
			task:    CopyTask{Source: "/etc/**", Destination: "etc"},
			wantErr: errors.ErrInvalidInput,
		},
		{
			name:    "escaping_destination",
			task:    CopyTask{Source: "a/*", Destination: "../outside"},
			wantErr: errors.ErrInvalidInput,
		},
		{
			name:    "malformed_glob",
			task:    CopyTask{Source: "a/[b", Destination: "a"},
			wantErr: errors.ErrPatternInvalid,
		},
		{
			name:    "malformed_exclude",
			task:    CopyTask{Source: "a/**", Destination: "a", Exclude: []string{"{x"}},
			wantErr: errors.ErrPatternInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestPipelineValidate(t *testing.T) {
	t.Run("duplicate_names", func(t *testing.T) {
		p := Pipeline{
			{Name: "neat", Source: "a/**", Destination: "vendor/a"},
			{Name: "neat", Source: "b/**", Destination: "other/b"},
		}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate task name "neat"`)
	})

	t.Run("unnamed_tasks_may_share_display_name", func(t *testing.T) {
		p := Pipeline{
			{Source: "a/**", Destination: "css/neat"},
			{Source: "b/**", Destination: "scss/neat"},
		}
		assert.NoError(t, p.Validate())
	})

	t.Run("shared_destination", func(t *testing.T) {
		p := Pipeline{
			{Source: "a/**", Destination: "styles"},
			{Source: "b/**", Destination: "styles"},
		}
		assert.NoError(t, p.Validate())
	})

	t.Run("reports_task_index", func(t *testing.T) {
		p := Pipeline{
			{Source: "a/**", Destination: "a"},
			{Source: "", Destination: "b"},
		}
		err := p.Validate()
		require.Error(t, err)
		assert.Equal(t, 1, errors.GetErrorDetails(err)[errors.DetailTaskIndex])
	})

	t.Run("names_in_order", func(t *testing.T) {
		p := Pipeline{
			{Name: "second", Source: "b/**", Destination: "b"},
			{Source: "a/**", Destination: "a"},
		}
		require.NoError(t, p.Validate())
		assert.Equal(t, []string{"second", "a"}, p.Names())
	})
}

func TestParseFailurePolicy(t *testing.T) {
	for in, want := range map[string]FailurePolicy{
		"":           StopOnFirstError,
		"stop":       StopOnFirstError,
		"Continue":   ContinueOnError,
		"keep-going": ContinueOnError,
	} {
		got, err := ParseFailurePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFailurePolicy("retry")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	p := Pipeline{
		{Source: "a/**", Destination: "a"},
		{Source: "b/**", Destination: "b"},
	}
	s := NewSummary(p, false)
	require.Len(t, s.Tasks, 2)
	assert.Equal(t, TaskPending, s.Tasks[1].Status)

	s.Record(0, TaskResult{
		Task:   p[0],
		Status: TaskFailed,
		Files:  []CopiedFile{{Source: "a/x", Destination: "a/x", Size: 3}},
		Bytes:  3,
	})
	assert.Equal(t, 1, s.FilesCopied)
	assert.Equal(t, int64(3), s.BytesCopied)
	assert.Len(t, s.Failed(), 1)

	assert.Zero(t, s.Duration())
	s.StartTime = time.Unix(100, 0)
	s.EndTime = time.Unix(102, 0)
	assert.Equal(t, 2*time.Second, s.Duration())

	assert.True(t, TaskFailed.IsTerminal())
	assert.False(t, TaskRunning.IsTerminal())
}
