package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrTableNotFound reports a query or update against a table the
	// provider does not know about.
	ErrTableNotFound = errors.New("table not found")

	// ErrRowNotFound reports an update whose id matched no row.
	ErrRowNotFound = errors.New("row not found")
)

// UpstreamError carries a non-2xx response from a backing API. The
// message is the one the upstream returned, surfaced verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}
