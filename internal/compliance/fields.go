package compliance

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneStripper = regexp.MustCompile(`[\s\-().]`)
	phonePattern  = regexp.MustCompile(`^[0-9]{8,}$`)
)

// dateLayouts are tried in order. A bare calendar date is the canonical form.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
}

// CheckRequired fails when value is empty after trimming whitespace.
func CheckRequired(value, field string) *FieldProblem {
	if strings.TrimSpace(value) == "" {
		return &FieldProblem{Field: field, Message: field + " is required"}
	}
	return nil
}

// CheckEmail validates an optional email address: one local part, one domain, one TLD,
// no embedded whitespace.
func CheckEmail(value string) *FieldProblem {
	if isAbsent(value) {
		return nil
	}
	if !emailPattern.MatchString(value) {
		return &FieldProblem{Field: FieldEmail, Message: "Invalid email format"}
	}
	return nil
}

// CheckPhone validates the local part of an optional phone number. Spaces, hyphens,
// parentheses and periods are ignored; at least 8 digits must remain and nothing else.
// The country code is validated separately by the caller.
func CheckPhone(value string) *FieldProblem {
	if isAbsent(value) {
		return nil
	}
	if !phonePattern.MatchString(phoneStripper.ReplaceAllString(value, "")) {
		return &FieldProblem{
			Field:   FieldPhone,
			Message: "Invalid phone number format. Phone number must contain at least 8 digits",
		}
	}
	return nil
}

// CheckDateSyntax validates an optional calendar date.
func CheckDateSyntax(value, field string) *FieldProblem {
	if isAbsent(value) {
		return nil
	}
	if _, ok := ParseDate(value); !ok {
		return &FieldProblem{Field: field, Message: "Invalid " + field + " format"}
	}
	return nil
}

// CheckDateRange fails when both dates are present and end falls on an earlier day
// than start. Unparseable dates are left to CheckDateSyntax.
func CheckDateRange(start, end string) *FieldProblem {
	if isAbsent(start) || isAbsent(end) {
		return nil
	}
	s, okStart := ParseDate(start)
	e, okEnd := ParseDate(end)
	if !okStart || !okEnd {
		return nil
	}
	if e.Before(s) {
		return &FieldProblem{Field: FieldEndDate, Message: "End date must be after start date"}
	}
	return nil
}

// CheckSalary validates an optional salary against minimum. Pass 0 for no floor.
func CheckSalary(value string, minimum float64) *FieldProblem {
	if isAbsent(value) {
		return nil
	}
	n, ok := ParseAmount(value)
	if !ok {
		return &FieldProblem{Field: FieldSalary, Message: "Salary must be a valid number"}
	}
	if n < minimum {
		return &FieldProblem{
			Field:   FieldSalary,
			Message: "Salary must be at least " + strconv.FormatFloat(minimum, 'f', -1, 64),
		}
	}
	return nil
}

// ParseDate parses value as a calendar date and truncates it to midnight UTC of that day.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a finite decimal number. Trailing garbage is rejected.
func ParseAmount(value string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// isAbsent reports whether an optional field was left blank. Whitespace-only counts.
func isAbsent(value string) bool {
	return strings.TrimSpace(value) == ""
}
