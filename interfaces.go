package main

import (
	"context"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// DataService is the facade the UI surfaces (CLI, HTTP, MCP) consume:
// a connection gate in front of table listing, schema lookup, querying
// and row updates.
type DataService interface {
	// Connect validates the parameters and establishes the backing
	// provider. Required fields are checked before any provider I/O.
	Connect(ctx context.Context, params tabular.ConnectParams) error
	// Disconnect releases the provider and leaves the connected state.
	Disconnect(ctx context.Context) error
	// IsConnected reports whether data operations are currently valid.
	IsConnected() bool
	// Tables lists the table names of the given database.
	Tables(ctx context.Context, database string) ([]string, error)
	// Schema returns the column schema of a table.
	Schema(ctx context.Context, table string) ([]tabular.Column, error)
	// Query applies filter, sort and pagination options to a table.
	Query(ctx context.Context, table string, opts tabular.QueryOptions) (*tabular.QueryResult, error)
	// Update merges partial data into the row identified by id.
	Update(ctx context.Context, table, id string, partial tabular.Row) error
}

// KVStore is the opaque key-value capability the session component
// persists through. The core never touches storage directly.
type KVStore interface {
	// Get returns the blob stored under key, reporting whether it exists.
	Get(key string) ([]byte, bool, error)
	// Put stores a blob under key, replacing any previous value.
	Put(key string, value []byte) error
	// Delete removes the blob stored under key, if any.
	Delete(key string) error
}
