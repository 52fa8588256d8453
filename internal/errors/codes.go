// Package errors provides structured error handling for patidx.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (source directory, output file)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and directory I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates index validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeMissingDirectory = "ERR_201_MISSING_DIRECTORY"
	ErrCodeFileUnreadable   = "ERR_202_FILE_UNREADABLE"
	ErrCodeWriteFailed      = "ERR_203_WRITE_FAILED"
	ErrCodeOutputLocked     = "ERR_204_OUTPUT_LOCKED"

	// Validation errors (400-499)
	ErrCodeValidationMismatch = "ERR_401_VALIDATION_MISMATCH"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode derives severity from error code.
// Directory-level IO failures abort the run; validation mismatches are
// reported but never block the write.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeMissingDirectory, ErrCodeWriteFailed, ErrCodeOutputLocked, ErrCodeConfigInvalid:
		return SeverityFatal
	case ErrCodeValidationMismatch:
		return SeverityWarning
	default:
		return SeverityError
	}
}
