package errors

import (
	"context"
	"errors"
)

// ErrorCategory groups errors by what kind of problem they represent.
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"
	CategoryRemote        ErrorCategory = "remote"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryNotFound      ErrorCategory = "not_found"
	CategoryTimeout       ErrorCategory = "timeout"
	CategoryUnknown       ErrorCategory = "unknown"
)

// ClassifiedError is an error with a category, a retry hint and a message
// that can be shown to the user as is.
type ClassifiedError struct {
	Err       error
	Category  ErrorCategory
	Retryable bool
	UserMsg   string
}

func (e *ClassifiedError) Error() string {
	return e.Err.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// ExitCode maps the category to the process exit status used by the CLI.
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryRemote, CategoryTimeout:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryNotFound:
		return 5
	default:
		return 1
	}
}

// ClassifyError classifies an error based on its kind.
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case IsValidationError(err):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryValidation,
			UserMsg:  "The workflow is invalid. Nothing was submitted.",
		}

	case IsConfigError(err):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryConfiguration,
			UserMsg:  "Configuration error. Please check your ezbatch configuration file.",
		}

	case errors.Is(err, ErrRunNotFound):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryNotFound,
			UserMsg:  "Requested run not found.",
		}

	case errors.Is(err, context.Canceled):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryTimeout,
			UserMsg:  "Operation was canceled.",
		}

	case errors.Is(err, context.DeadlineExceeded):
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryTimeout,
			Retryable: true,
			UserMsg:   "Operation timed out. Please try again.",
		}

	// submission failures leave jobs already queued, so retrying blindly
	// would duplicate them
	case errors.Is(err, ErrJobSubmission):
		return &ClassifiedError{
			Err:      err,
			Category: CategoryRemote,
			UserMsg:  "Submission failed part way. Check which jobs were submitted before retrying.",
		}

	case IsRemoteError(err):
		return &ClassifiedError{
			Err:       err,
			Category:  CategoryRemote,
			Retryable: true,
			UserMsg:   "The batch service rejected the request. Please try again.",
		}

	default:
		return &ClassifiedError{
			Err:      err,
			Category: CategoryUnknown,
			UserMsg:  "An unexpected error occurred.",
		}
	}
}

// ShouldRetry determines if an operation should be retried based on the error
func ShouldRetry(err error) bool {
	classified := ClassifyError(err)
	if classified == nil {
		return false
	}
	return classified.Retryable
}

// GetCategory figures out what type of error we're dealing with.
func GetCategory(err error) ErrorCategory {
	classified := ClassifyError(err)
	if classified == nil {
		return CategoryUnknown
	}
	return classified.Category
}

// FormatErrorForLogging formats an error for structured logging
func FormatErrorForLogging(err error) []interface{} {
	if err == nil {
		return nil
	}

	classified := ClassifyError(err)
	fields := []interface{}{
		"error", err.Error(),
		"category", string(classified.Category),
		"retryable", classified.Retryable,
	}
	if job, ok := GetJobName(err); ok {
		fields = append(fields, "job", job)
	}
	return fields
}

// LogError logs an error with its classification
func LogError(logger interface{ Error(string, ...interface{}) }, err error, msg string) {
	if err == nil {
		return
	}
	logger.Error(msg, FormatErrorForLogging(err)...)
}
