package validation

import (
	"unicode/utf8"

	dErrors "hrcore/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize caps JSON request bodies (64 KB).
	MaxBodySize = 64 * 1024

	// DefaultMaxUploadSize caps multipart document uploads unless configured otherwise (10 MB).
	DefaultMaxUploadSize = 10 << 20
)

// Slice element count limits
const (
	// MaxReviewMetrics is the maximum number of metric lines on one performance review.
	MaxReviewMetrics = 20
)

// String length limits, counted in characters.
const (
	MaxNameLength        = 100
	MaxEmailLength       = 255
	MaxPhoneLength       = 32
	MaxCountryCodeLength = 6
	MaxAddressLength     = 500
	MaxJobTitleLength    = 150
	MaxDepartmentLength  = 100
	MaxReasonLength      = 500
	MaxCommentLength     = 2000
	MaxNotesLength       = 2000
	MaxSearchLength      = 100
	MaxFileNameLength    = 255
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.Newf(dErrors.CodeValidation, "too many %s: max %d allowed", fieldName, max)
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return dErrors.Newf(dErrors.CodeValidation, "%s exceeds max length of %d", fieldName, max)
	}
	return nil
}

// StringLimit pairs a field with its maximum length for CheckStringLengths.
type StringLimit struct {
	Field string
	Value string
	Max   int
}

// CheckStringLengths returns the first length violation among limits.
func CheckStringLengths(limits ...StringLimit) error {
	for _, l := range limits {
		if err := CheckStringLength(l.Field, l.Value, l.Max); err != nil {
			return err
		}
	}
	return nil
}
