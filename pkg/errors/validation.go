package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateColumnName validates a raw column name used by a field extractor.
//
// Column names come straight from CSV/XLSX headers, so the rules are loose:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidConfig, "column name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidConfig, "column name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "column name contains invalid control characters")
		}
	}

	return nil
}

// ValidateSourcePath validates a dataset source path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be .csv or .xlsx
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "source path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "source path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "source path contains invalid characters")
		}
	}

	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".xlsx") {
		return New(ErrCodeInvalidPath, "unsupported source type: %q (must be .csv or .xlsx)", path)
	}

	return nil
}

// ValidateDimension validates a pixel dimension from configuration or flags.
// Zero is allowed and means "not yet measured".
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s cannot be negative: %g", name, v)
	}
	return nil
}
