package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "hrcore/pkg/domain-errors"
)

// LimitsSuite tests the size guards applied before any business validation.
//
// Justification: these run at the trust boundary on every write; the
// "max passes, max+1 fails" edge is the whole contract.
type LimitsSuite struct {
	suite.Suite
}

func TestLimitsSuite(t *testing.T) {
	suite.Run(t, new(LimitsSuite))
}

func (s *LimitsSuite) TestCheckSliceCount() {
	s.NoError(CheckSliceCount("review metrics", MaxReviewMetrics, MaxReviewMetrics))
	s.NoError(CheckSliceCount("review metrics", 0, MaxReviewMetrics))

	err := CheckSliceCount("review metrics", MaxReviewMetrics+1, MaxReviewMetrics)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("too many review metrics: max 20 allowed", err.Error())
}

func (s *LimitsSuite) TestCheckStringLength() {
	s.Run("boundary", func() {
		s.NoError(CheckStringLength("first_name", strings.Repeat("a", MaxNameLength), MaxNameLength))
		err := CheckStringLength("first_name", strings.Repeat("a", MaxNameLength+1), MaxNameLength)
		s.Require().Error(err)
		s.Equal("first_name exceeds max length of 100", err.Error())
	})

	s.Run("counts characters not bytes", func() {
		// 100 two-byte runes is 200 bytes but within a 100 character limit.
		s.NoError(CheckStringLength("last_name", strings.Repeat("é", MaxNameLength), MaxNameLength))
	})
}

func (s *LimitsSuite) TestCheckStringLengths() {
	err := CheckStringLengths(
		StringLimit{Field: "address", Value: "1 Main St", Max: MaxAddressLength},
		StringLimit{Field: "department", Value: strings.Repeat("d", MaxDepartmentLength+1), Max: MaxDepartmentLength},
		StringLimit{Field: "job_title", Value: strings.Repeat("j", MaxJobTitleLength+1), Max: MaxJobTitleLength},
	)
	s.Require().Error(err)
	s.Contains(err.Error(), "department")

	s.NoError(CheckStringLengths())
}
