// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "source_unreadable",
			code:    errors.ErrSourceUnreadable,
			message: "cannot open bourbon/_bourbon.scss",
			wantStr: "[SOURCE_UNREADABLE] cannot open bourbon/_bourbon.scss",
		},
		{
			name:    "invalid_input",
			code:    errors.ErrInvalidInput,
			message: "empty destination",
			wantStr: "[INVALID_INPUT] empty destination",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrPatternInvalid, "bad pattern %q", "a/[")
	assert.Equal(t, `bad pattern "a/["`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrDestinationUnwritable, "cannot create _vendor/neat")

		assert.Equal(t, errors.ErrDestinationUnwritable, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[DESTINATION_UNWRITABLE] cannot create _vendor/neat: permission denied", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrSourceUnreadable, "cannot read").
		WithDetail(errors.DetailTask, "bourbon").
		WithDetails(map[string]interface{}{
			errors.DetailFile:        "bourbon/a.scss",
			errors.DetailDestination: "bourbon",
		})

	assert.Equal(t, "bourbon", err.Details[errors.DetailTask])
	assert.Equal(t, "bourbon/a.scss", err.Details[errors.DetailFile])

	// A zero value gets its map on first use
	bare := &errors.CopyError{Code: errors.ErrInternal, Message: "x"}
	assert.Equal(t, "y", bare.WithDetail("k", "y").Details["k"])
}

func TestWithTask(t *testing.T) {
	err := errors.New(errors.ErrDestinationUnwritable, "cannot open").
		WithDetail(errors.DetailFile, "neat/core/_neat.scss").
		WithTask("neat", "getbuffalowater-bourbon-neat/**/*", "neat")

	assert.Equal(t, map[string]interface{}{
		errors.DetailTask:        "neat",
		errors.DetailSource:      "getbuffalowater-bourbon-neat/**/*",
		errors.DetailDestination: "neat",
		errors.DetailFile:        "neat/core/_neat.scss",
	}, err.Details)
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrSourceUnreadable, "error 1")
	err2 := errors.New(errors.ErrSourceUnreadable, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrConfigLoad, "missing"),
			code:     errors.ErrConfigLoad,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrConfigLoad, "missing"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrSourceUnreadable, "denied"),
			code:     errors.ErrSourceUnreadable,
			expected: true,
		},
		{
			name: "joined_errors",
			err: stderrors.Join(
				errors.New(errors.ErrDestinationUnwritable, "first"),
				errors.New(errors.ErrSourceUnreadable, "second"),
			),
			code:     errors.ErrDestinationUnwritable,
			expected: true,
		},
		{
			name: "joined_errors_later_branch",
			err: stderrors.Join(
				errors.New(errors.ErrSourceUnreadable, "first"),
				errors.Wrap(context.Canceled, errors.ErrCancelled, "run cancelled"),
			),
			code:     errors.ErrCancelled,
			expected: true,
		},
		{
			name:     "inner_code",
			err:      errors.Wrap(errors.New(errors.ErrInvalidInput, "empty vendor root"), errors.ErrConfigValid, "invalid config"),
			code:     errors.ErrInvalidInput,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrPatternInvalid, "bad").WithDetail(errors.DetailTask, "neat")

	assert.Equal(t, errors.ErrPatternInvalid, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))

	assert.Equal(t, "neat", errors.GetErrorDetails(err)[errors.DetailTask])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrSourceUnreadable, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))

	var middle *errors.CopyError
	require.True(t, stderrors.As(configErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrSourceUnreadable, middle.Code)

	assert.True(t, stderrors.Is(configErr, rootCause))
}

func TestCodes(t *testing.T) {
	inner := errors.New(errors.ErrPatternInvalid, "bad glob")
	outer := errors.Wrap(fmt.Errorf("task 2: %w", inner), errors.ErrConfigValid, "invalid config")
	joined := stderrors.Join(outer, errors.New(errors.ErrCancelled, "run cancelled"))

	assert.Equal(t, []errors.ErrorCode{errors.ErrConfigValid, errors.ErrPatternInvalid, errors.ErrCancelled}, errors.Codes(joined))
	assert.Empty(t, errors.Codes(stderrors.New("plain")))
	assert.Empty(t, errors.Codes(nil))

	// Details still come from the outermost error
	assert.Equal(t, errors.ErrConfigValid, errors.GetErrorCode(joined))
}
