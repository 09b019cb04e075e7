package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"hrcore/internal/compliance"
)

// checkFile is the layout of the records file `hrctl check` reads.
type checkFile struct {
	Records []checkRecord `yaml:"records"`
}

type checkRecord struct {
	compliance.EmployeeRecord `yaml:",inline"`
	HasIDDocument             bool `yaml:"has_id_document"`
}

type checkResult struct {
	Index      int                          `json:"index"`
	Name       string                       `json:"name"`
	Validation compliance.ValidationOutcome `json:"validation"`
	Compliance compliance.ComplianceOutcome `json:"compliance"`
}

type checkReport struct {
	AsOf    string        `json:"as_of"`
	Valid   int           `json:"valid"`
	Invalid int           `json:"invalid"`
	Results []checkResult `json:"results"`
}

func (c *cli) checkCmd() *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "check RECORDS.yaml",
		Short: "Validate employee records and evaluate compliance offline",
		Long: "Runs record validation and the compliance checks on every record in the file and " +
			"prints a JSON report. Exits 1 when any record fails validation.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if asOf != "" {
				t, ok := compliance.ParseDate(asOf)
				if !ok {
					return fmt.Errorf("invalid --as-of date %q, want YYYY-MM-DD", asOf)
				}
				now = t
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := decodeRecords(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			report := runChecks(records, now, c.cfg.Rules.MinimumWage)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if report.Invalid > 0 {
				return errRecordsInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "evaluate age as of this date (YYYY-MM-DD, default today)")
	return cmd
}

func decodeRecords(r io.Reader) ([]checkRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file checkFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return file.Records, nil
}

func runChecks(records []checkRecord, now time.Time, minimumWage float64) checkReport {
	report := checkReport{
		AsOf:    now.Format(time.DateOnly),
		Results: make([]checkResult, 0, len(records)),
	}
	for i, rec := range records {
		validation := compliance.ValidateEmployeeRecordWithMinimum(rec.EmployeeRecord, minimumWage)
		if validation.OK {
			report.Valid++
		} else {
			report.Invalid++
		}
		report.Results = append(report.Results, checkResult{
			Index:      i,
			Name:       rec.FirstName + " " + rec.LastName,
			Validation: validation,
			Compliance: compliance.CheckCompliance(compliance.ComplianceInput{
				BirthDate:     rec.BirthDate,
				Salary:        rec.Salary,
				HasIDDocument: rec.HasIDDocument,
				MinimumWage:   minimumWage,
			}, now),
		})
	}
	return report
}
