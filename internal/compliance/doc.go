// Package compliance implements the employee-record validation and compliance rules.
//
// Everything here is a pure function of its arguments. The same checks run when a
// client asks for a preview (POST /employees/validate) and again before a record is
// persisted, so both call sites must reach the same verdict for the same input.
// The evaluation time is always passed in; nothing reads the wall clock.
//
// Validation problems block persistence. Compliance findings are reported only.
package compliance
