package features

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrNoJoinedRows means no event matched a season row.
	ErrNoJoinedRows = errors.New("features: join produced no rows")
	// ErrNoUsableRows means every joined row had a missing feature value.
	ErrNoUsableRows = errors.New("features: no rows with complete features")
	// ErrMissingFeature means a required feature column is absent from both sources.
	ErrMissingFeature = errors.New("features: required feature column missing")
)

// MissingColumnError names the required feature columns neither source carries.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("features: required feature column(s) missing: %s", strings.Join(e.Columns, ", "))
}

// Is makes errors.Is(err, ErrMissingFeature) match.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingFeature
}

// IsEmpty reports whether err is one of the zero-row conditions that halt a
// run cleanly rather than fail it.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrNoJoinedRows) || errors.Is(err, ErrNoUsableRows)
}
