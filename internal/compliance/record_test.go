package compliance

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() EmployeeRecord {
	return EmployeeRecord{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
		Phone:     "987 654 321",
		BirthDate: "1989-01-01",
		StartDate: "2025-06-01",
		EndDate:   "",
		Salary:    "200000",
	}
}

func TestValidateEmployeeRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		out := ValidateEmployeeRecord(validRecord())
		assert.True(t, out.OK)
		assert.Empty(t, out.Problems)
	})

	t.Run("only names present", func(t *testing.T) {
		out := ValidateEmployeeRecord(EmployeeRecord{FirstName: "A", LastName: "B"})
		assert.True(t, out.OK)
	})

	t.Run("blank optional fields are treated as empty", func(t *testing.T) {
		out := ValidateEmployeeRecord(EmployeeRecord{
			FirstName: "A",
			LastName:  "B",
			Email:     "  ",
			Phone:     " ",
			BirthDate: " ",
			StartDate: "\t",
			EndDate:   "  ",
			Salary:    "  ",
		})
		assert.True(t, out.OK)
		assert.Empty(t, out.Problems)
	})

	t.Run("missing first name yields exactly one problem", func(t *testing.T) {
		out := ValidateEmployeeRecord(EmployeeRecord{FirstName: "", LastName: "X"})
		require.False(t, out.OK)
		require.Len(t, out.Problems, 1)
		assert.Equal(t, FieldFirstName, out.Problems[0].Field)
	})

	t.Run("every check runs in fixed order", func(t *testing.T) {
		out := ValidateEmployeeRecord(EmployeeRecord{
			Email:     "nope",
			Phone:     "123",
			BirthDate: "yesterday",
			StartDate: "2025-03-01",
			EndDate:   "2025-02-01",
			Salary:    "599.99",
		})

		want := ValidationOutcome{
			OK: false,
			Problems: []FieldProblem{
				{Field: "First Name", Message: "First Name is required"},
				{Field: "Last Name", Message: "Last Name is required"},
				{Field: "email", Message: "Invalid email format"},
				{Field: "phone", Message: "Invalid phone number format. Phone number must contain at least 8 digits"},
				{Field: "Birth Date", Message: "Invalid Birth Date format"},
				{Field: "End Date", Message: "End date must be after start date"},
				{Field: "salary", Message: "Salary must be at least 600"},
			},
		}
		if diff := cmp.Diff(want, out); diff != "" {
			t.Errorf("ValidateEmployeeRecord mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("bad end date reports syntax but not range", func(t *testing.T) {
		rec := validRecord()
		rec.EndDate = "31/12/2025"
		out := ValidateEmployeeRecord(rec)
		require.Len(t, out.Problems, 1)
		assert.Equal(t, "Invalid End Date format", out.Problems[0].Message)
	})

	t.Run("idempotent", func(t *testing.T) {
		rec := EmployeeRecord{LastName: "X", Email: "bad", Salary: "abc"}
		first := ValidateEmployeeRecord(rec)
		second := ValidateEmployeeRecord(rec)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("second run differs (-first +second):\n%s", diff)
		}
	})
}

func TestFieldMessage(t *testing.T) {
	out := ValidateEmployeeRecord(EmployeeRecord{LastName: "X", Email: "bad"})

	msg, ok := out.FieldMessage(FieldEmail)
	assert.True(t, ok)
	assert.Equal(t, "Invalid email format", msg)

	msg, ok = FieldMessage(out.Problems, FieldPhone)
	assert.False(t, ok)
	assert.Empty(t, msg)

	_, ok = FieldMessage(nil, FieldFirstName)
	assert.False(t, ok)
}

func TestFieldMessageReturnsFirstMatch(t *testing.T) {
	problems := []FieldProblem{
		{Field: FieldEndDate, Message: "Invalid End Date format"},
		{Field: FieldEndDate, Message: "End date must be after start date"},
	}
	msg, ok := FieldMessage(problems, FieldEndDate)
	assert.True(t, ok)
	assert.Equal(t, "Invalid End Date format", msg)
}

func TestValidateEmployeeRecordWithMinimum(t *testing.T) {
	rec := validRecord()
	rec.Salary = "700"

	out := ValidateEmployeeRecordWithMinimum(rec, 800)
	require.False(t, out.OK)
	msg, ok := out.FieldMessage(FieldSalary)
	require.True(t, ok)
	assert.Equal(t, "Salary must be at least 800", msg)

	assert.True(t, ValidateEmployeeRecordWithMinimum(rec, 0).OK, "non-positive minimum falls back to the default")
}

func TestValidateProfessionFields(t *testing.T) {
	assert.True(t, ValidateProfessionFields("2025-01-01", "", "1000", 600).OK)

	out := ValidateProfessionFields("2025-03-01", "2025-02-01", "abc", 600)
	want := []FieldProblem{
		{Field: FieldEndDate, Message: "End date must be after start date"},
		{Field: FieldSalary, Message: "Salary must be a valid number"},
	}
	if diff := cmp.Diff(want, out.Problems); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}
}
