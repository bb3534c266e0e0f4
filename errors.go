package main

import "errors"

var (
	// ErrNotConnected reports a data operation attempted outside the
	// connected state. Callers are expected to connect first; this is
	// a contract violation, not a condition that is retried.
	ErrNotConnected = errors.New("not connected to a database")

	// ErrValidation reports connection parameters rejected before any
	// I/O was attempted.
	ErrValidation = errors.New("invalid connection parameters")
)
