package errors

import (
	"context"
	stderr "errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name              string
		err               error
		expectedCategory  ErrorCategory
		expectedRetryable bool
		expectedExitCode  int
	}{
		{
			name:             "CyclicDependencyError",
			err:              &CyclicDependencyError{Cycle: []string{"a", "b", "a"}},
			expectedCategory: CategoryValidation,
			expectedExitCode: 2,
		},
		{
			name:             "NoQueueSpecifiedError wrapped",
			err:              fmt.Errorf("submit: %w", &NoQueueSpecifiedError{Job: "a"}),
			expectedCategory: CategoryValidation,
			expectedExitCode: 2,
		},
		{
			name:              "DefinitionRegistrationError",
			err:               &DefinitionRegistrationError{Job: "a", Err: fmt.Errorf("throttled")},
			expectedCategory:  CategoryRemote,
			expectedRetryable: true,
			expectedExitCode:  3,
		},
		{
			name:              "JobSubmissionError",
			err:               &JobSubmissionError{Job: "a", Err: fmt.Errorf("boom")},
			expectedCategory:  CategoryRemote,
			expectedRetryable: false,
			expectedExitCode:  3,
		},
		{
			name:             "ConfigError",
			err:              NewConfigError("submit", "register_concurrency", fmt.Errorf("must be positive")),
			expectedCategory: CategoryConfiguration,
			expectedExitCode: 4,
		},
		{
			name:             "RunNotFound",
			err:              fmt.Errorf("run abc: %w", ErrRunNotFound),
			expectedCategory: CategoryNotFound,
			expectedExitCode: 5,
		},
		{
			name:              "DeadlineExceeded",
			err:               context.DeadlineExceeded,
			expectedCategory:  CategoryTimeout,
			expectedRetryable: true,
			expectedExitCode:  3,
		},
		{
			name:             "Unknown",
			err:              stderr.New("mystery"),
			expectedCategory: CategoryUnknown,
			expectedExitCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyError(tt.err)
			if classified.Category != tt.expectedCategory {
				t.Errorf("Category = %v, want %v", classified.Category, tt.expectedCategory)
			}
			if classified.Retryable != tt.expectedRetryable {
				t.Errorf("Retryable = %v, want %v", classified.Retryable, tt.expectedRetryable)
			}
			if classified.ExitCode() != tt.expectedExitCode {
				t.Errorf("ExitCode() = %v, want %v", classified.ExitCode(), tt.expectedExitCode)
			}
			if classified.UserMsg == "" {
				t.Error("UserMsg is empty")
			}
		})
	}
}

func TestClassifyError_Nil(t *testing.T) {
	if ClassifyError(nil) != nil {
		t.Error("ClassifyError(nil) should return nil")
	}
	if ShouldRetry(nil) {
		t.Error("ShouldRetry(nil) should be false")
	}
	if GetCategory(nil) != CategoryUnknown {
		t.Error("GetCategory(nil) should be unknown")
	}
}

func TestClassifyError_AlreadyClassified(t *testing.T) {
	original := &ClassifiedError{Err: stderr.New("x"), Category: CategoryRemote, UserMsg: "custom"}
	wrapped := fmt.Errorf("outer: %w", original)

	if got := ClassifyError(wrapped); got != original {
		t.Errorf("ClassifyError() = %v, want the original classified error", got)
	}
}

func TestFormatErrorForLogging(t *testing.T) {
	fields := FormatErrorForLogging(&NoQueueSpecifiedError{Job: "train"})

	got := map[interface{}]interface{}{}
	for i := 0; i+1 < len(fields); i += 2 {
		got[fields[i]] = fields[i+1]
	}
	if got["category"] != "validation" {
		t.Errorf("category = %v, want validation", got["category"])
	}
	if got["job"] != "train" {
		t.Errorf("job = %v, want train", got["job"])
	}
	if FormatErrorForLogging(nil) != nil {
		t.Error("FormatErrorForLogging(nil) should return nil")
	}
}

type recordingLogger struct {
	msg  string
	args []interface{}
}

func (r *recordingLogger) Error(msg string, args ...interface{}) {
	r.msg = msg
	r.args = args
}

func TestLogError(t *testing.T) {
	rec := &recordingLogger{}
	LogError(rec, &JobSubmissionError{Job: "a", Err: stderr.New("x")}, "submit failed")

	if rec.msg != "submit failed" {
		t.Errorf("msg = %q, want 'submit failed'", rec.msg)
	}
	if len(rec.args) == 0 {
		t.Error("expected structured fields")
	}

	rec = &recordingLogger{}
	LogError(rec, nil, "nothing")
	if rec.msg != "" {
		t.Error("LogError(nil) should not log")
	}
}
