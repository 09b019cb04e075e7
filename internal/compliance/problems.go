package compliance

// Logical field names used to tag problems. Presentation layers look problems up
// by these names, so they are part of the response contract.
const (
	FieldFirstName = "First Name"
	FieldLastName  = "Last Name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldBirthDate = "Birth Date"
	FieldStartDate = "Start Date"
	FieldEndDate   = "End Date"
	FieldSalary    = "salary"
)

// FieldProblem is one validation failure tagged by the field it concerns.
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationOutcome is the result of validating a record. OK is true iff Problems is empty.
type ValidationOutcome struct {
	OK       bool           `json:"ok"`
	Problems []FieldProblem `json:"problems"`
}

// FieldMessage returns the first problem message recorded for field.
func (o ValidationOutcome) FieldMessage(field string) (string, bool) {
	return FieldMessage(o.Problems, field)
}

// FieldMessage returns the first message in problems tagged with field, or "", false.
func FieldMessage(problems []FieldProblem, field string) (string, bool) {
	for _, p := range problems {
		if p.Field == field {
			return p.Message, true
		}
	}
	return "", false
}

func newOutcome(checks ...*FieldProblem) ValidationOutcome {
	problems := make([]FieldProblem, 0, len(checks))
	for _, p := range checks {
		if p != nil {
			problems = append(problems, *p)
		}
	}
	return ValidationOutcome{OK: len(problems) == 0, Problems: problems}
}

// Category identifies one compliance requirement.
type Category string

const (
	CategoryAge        Category = "age"
	CategorySalary     Category = "salary"
	CategoryIDDocument Category = "id_document"
)

// ComplianceFinding is a pass/fail judgment about one requirement.
// A finding is produced for every category on every call, satisfied or not.
type ComplianceFinding struct {
	Category  Category `json:"category"`
	Message   string   `json:"message"`
	Satisfied bool     `json:"satisfied"`
}

// ComplianceOutcome holds one finding per category in age, salary, id_document order.
type ComplianceOutcome struct {
	AllSatisfied bool                 `json:"all_satisfied"`
	Findings     [3]ComplianceFinding `json:"findings"`
}

// Finding returns the finding for category.
func (o ComplianceOutcome) Finding(category Category) (ComplianceFinding, bool) {
	for _, f := range o.Findings {
		if f.Category == category {
			return f, true
		}
	}
	return ComplianceFinding{}, false
}
