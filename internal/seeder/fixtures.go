package seeder

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the seed data file layout.
type Fixtures struct {
	Employees []EmployeeFixture `yaml:"employees"`
}

// EmployeeFixture describes one employee. Key is stable across runs and derives
// the record IDs, so seeding twice does not duplicate anything.
type EmployeeFixture struct {
	Key        string             `yaml:"key"`
	FirstName  string             `yaml:"first_name"`
	LastName   string             `yaml:"last_name"`
	BirthDate  string             `yaml:"birth_date"`
	Email      string             `yaml:"email"`
	Phone      string             `yaml:"phone"`
	Address    string             `yaml:"address"`
	Inactive   string             `yaml:"inactive_reason"`
	Profession *ProfessionFixture `yaml:"profession"`
	Timesheets []TimesheetFixture `yaml:"timesheets"`
}

type ProfessionFixture struct {
	JobTitle   string   `yaml:"job_title"`
	Department string   `yaml:"department"`
	Salary     *float64 `yaml:"salary"`
	StartDate  string   `yaml:"start_date"`
	EndDate    string   `yaml:"end_date"`
}

type TimesheetFixture struct {
	WorkDate    string   `yaml:"work_date"`
	StartTime   string   `yaml:"start_time"`
	EndTime     string   `yaml:"end_time"`
	HoursWorked *float64 `yaml:"hours_worked"`
	Notes       string   `yaml:"notes"`
	Status      string   `yaml:"status"`
}

// DefaultFixtures returns the embedded demo data.
func DefaultFixtures() (*Fixtures, error) {
	return LoadFixtures(bytes.NewReader(defaultFixtures))
}

// LoadFixtures decodes a fixtures document. Unknown keys are rejected.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &Fixtures{}, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Employees))
	for i, e := range f.Employees {
		if e.Key == "" {
			return nil, fmt.Errorf("employee %d: key is required", i)
		}
		if _, dup := seen[e.Key]; dup {
			return nil, fmt.Errorf("employee %q: duplicate key", e.Key)
		}
		seen[e.Key] = struct{}{}
	}
	return &f, nil
}
