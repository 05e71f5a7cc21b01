// Package codec converts between flat-file lines and portal records.
//
// Every Decode function trims its fields and either returns a record or a
// *DecodeError. Every Encode function returns exactly one line, without a
// line terminator, that decodes back to an equal record as long as no field
// contains the delimiter.
package codec

import (
	"fmt"
	"strings"

	"github.com/yigit/isluportal/internal/pkg/apperrors"
)

// Record kinds, used in decode errors and log fields
const (
	KindAccount    = "account"
	KindCredential = "credential"
	KindPayment    = "payment"
	KindAttendance = "attendance"
	KindSchedule   = "schedule"
	KindGrade      = "grade"
)

const (
	fieldSep   = ","
	profileSep = "|"
)

// DecodeError describes a line that could not be turned into a record
type DecodeError struct {
	Kind   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed %s record: %s", e.Kind, e.Reason)
}

// Unwrap lets callers match apperrors.ErrMalformedRecord
func (e *DecodeError) Unwrap() error {
	return apperrors.ErrMalformedRecord
}

func malformed(kind, format string, args ...interface{}) error {
	return &DecodeError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// IsHeader reports whether line is a blank line, a "===" banner or a
// "Format:" descriptor. Header lines carry no record.
func IsHeader(line string) bool {
	return strings.TrimSpace(line) == "" ||
		strings.HasPrefix(line, "===") ||
		strings.HasPrefix(line, "Format:")
}

// splitFields splits on commas and trims every field, failing when fewer
// than min fields are present.
func splitFields(kind, line string, min int) ([]string, error) {
	parts := strings.Split(line, fieldSep)
	if len(parts) < min {
		return nil, malformed(kind, "expected at least %d fields, got %d", min, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// FirstField returns the trimmed text before the first comma, or before the
// first '|' when that comes earlier. It is the student ID for account lines.
func FirstField(line string) string {
	head, _, _ := strings.Cut(line, profileSep)
	first, _, _ := strings.Cut(head, fieldSep)
	return strings.TrimSpace(first)
}
