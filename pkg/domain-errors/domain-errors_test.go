package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: every service translates store failures through these helpers,
// and handlers map the resulting codes to HTTP statuses. Code preservation on Wrap
// is what keeps a not-found from surfacing as a 500.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorString() {
	s.Run("message wins over code", func() {
		err := &Error{Code: CodeNotFound, Message: "employee not found"}
		s.Equal("employee not found", err.Error())
	})

	s.Run("falls back to code", func() {
		err := &Error{Code: CodeConflict}
		s.Equal("conflict", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrapAndIs() {
	s.Run("unwrap exposes the cause", func() {
		cause := errors.New("connection reset")
		err := &Error{Code: CodeInternal, Message: "failed to load employee", Err: cause}
		s.Equal(cause, errors.Unwrap(err))
		s.ErrorIs(err, cause)
	})

	s.Run("is matches by code only", func() {
		a := &Error{Code: CodeNotFound, Message: "employee not found"}
		b := &Error{Code: CodeNotFound, Message: "timesheet not found"}
		s.True(a.Is(b))
		s.False(a.Is(&Error{Code: CodeInternal}))
		s.False(a.Is(errors.New("not found")))
	})

	s.Run("is walks through fmt wrapping", func() {
		inner := New(CodeNotFound, "document not found")
		outer := fmt.Errorf("delete document: %w", inner)
		s.ErrorIs(outer, &Error{Code: CodeNotFound})
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("keeps the code of a wrapped domain error", func() {
		wrapped := Wrap(New(CodeNotFound, "employee not found"), CodeInternal, "failed to update profession")

		var domainErr *Error
		s.Require().ErrorAs(wrapped, &domainErr)
		s.Equal(CodeNotFound, domainErr.Code)
		s.Equal("failed to update profession", domainErr.Message)
	})

	s.Run("uses the given code for plain errors", func() {
		cause := errors.New("disk full")
		wrapped := Wrap(cause, CodeInternal, "failed to save upload")

		s.True(HasCode(wrapped, CodeInternal))
		s.ErrorIs(wrapped, cause)
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.True(HasCode(New(CodeValidation, "bad status"), CodeValidation))
	s.False(HasCode(New(CodeValidation, "bad status"), CodeConflict))
	s.False(HasCode(errors.New("plain"), CodeValidation))
	s.False(HasCode(nil, CodeValidation))
}

func (s *DomainErrorsSuite) TestNewfAndCodeOf() {
	err := Newf(CodeNotFound, "timesheet %s not found", "42")
	s.Equal("timesheet 42 not found", err.Error())

	code, ok := CodeOf(fmt.Errorf("load: %w", err))
	s.True(ok)
	s.Equal(CodeNotFound, code)

	_, ok = CodeOf(errors.New("plain"))
	s.False(ok)
}
