package suppress

import (
	"encoding/json"
	"fmt"
)

// Axis identifies whether a violation concerns a row or a column.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	if a == AxisColumn {
		return "column"
	}
	return "row"
}

// MarshalJSON implements json.Marshaler for Axis.
func (a Axis) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler for Axis.
func (a *Axis) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "row":
		*a = AxisRow
	case "column":
		*a = AxisColumn
	default:
		return fmt.Errorf("unknown axis %q", s)
	}
	return nil
}

// ConfigurationError reports invalid run configuration or input that does
// not fit the configuration. It is returned before any masking happens.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// NoRepairCandidateError is returned when a row or column holds a single
// masked cell and no unmasked nonzero cell that could be masked alongside it.
type NoRepairCandidateError struct {
	Axis  Axis
	Index int
	// Name is the column name for column violations; empty for rows.
	Name string
}

func (e *NoRepairCandidateError) Error() string {
	if e.Axis == AxisColumn {
		return fmt.Sprintf("no repair candidate in column %d (%q): single masked cell with no unmasked nonzero cell to pair it with", e.Index, e.Name)
	}
	return fmt.Sprintf("no repair candidate in row %d: single masked cell with no unmasked nonzero cell to pair it with", e.Index)
}

// NonTerminationError is returned when the repair loop exceeds its
// iteration cap or its context is done before reaching a fixed point.
type NonTerminationError struct {
	Iterations int
	Err        error
}

func (e *NonTerminationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("suppression did not converge after %d iterations: %v", e.Iterations, e.Err)
	}
	return fmt.Sprintf("suppression did not converge after %d iterations", e.Iterations)
}

func (e *NonTerminationError) Unwrap() error {
	return e.Err
}
