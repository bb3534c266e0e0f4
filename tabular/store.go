package tabular

import (
	"fmt"
	"sort"
	"sync"
)

// identifyingColumn is the field used to locate a row for update when
// no column of the table is literally named that.
const identifyingColumn = "id"

type storedTable struct {
	columns []Column
	rows    []Row
}

// Store holds per-table schema and row data in memory. A single
// logical caller issues one operation at a time, but the HTTP server
// mode reaches the store from concurrent handlers, so access is
// guarded anyway.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*storedTable
}

func NewStore() *Store {
	return &Store{tables: make(map[string]*storedTable)}
}

// Load replaces the named table's schema and rows. Rows are deep
// copied so later caller mutations cannot leak in.
func (s *Store) Load(name string, columns []Column, rows []Row) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]Row, len(rows))
	for i, row := range rows {
		copied[i] = row.Clone()
	}
	s.tables[name] = &storedTable{
		columns: append([]Column(nil), columns...),
		rows:    copied,
	}
}

// Has reports whether the named table is loaded.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[name]
	return ok
}

// Tables returns the loaded table names in sorted order.
func (s *Store) Tables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the column schema of the named table.
func (s *Store) Schema(name string) ([]Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return append([]Column(nil), t.columns...), nil
}

// Snapshot returns a deep copy of the named table's schema and rows,
// safe for the caller to filter and sort without touching the store.
func (s *Store) Snapshot(name string) ([]Column, []Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}

	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		rows[i] = row.Clone()
	}
	return append([]Column(nil), t.columns...), rows, nil
}

// UpdateRow locates a row by its identifying field and shallow-merges
// the partial data into it. Fields present in partial overwrite
// same-named fields; absent fields stay untouched; incoming values are
// not validated against the schema (last write wins).
//
// The identifying field is the literal column name "id" even when the
// schema has no such column. When several rows share the same id
// value, the first match wins.
func (s *Store) UpdateRow(table string, id string, partial Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	for _, row := range t.rows {
		if row[identifyingColumn].String() != id {
			continue
		}
		for name, value := range partial {
			row[name] = value
		}
		return nil
	}

	return fmt.Errorf("%w: %s=%s in table %s", ErrRowNotFound, identifyingColumn, id, table)
}
