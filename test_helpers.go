package main

import (
	"context"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

// StubProvider is a hand-rolled tabular.Provider for testing the
// service gate without real data behind it.
type StubProvider struct {
	ConnectFunc func(ctx context.Context, params tabular.ConnectParams) error
	CloseFunc   func() error
	TablesFunc  func(ctx context.Context, database string) ([]string, error)
	SchemaFunc  func(ctx context.Context, table string) ([]tabular.Column, error)
	QueryFunc   func(ctx context.Context, table string, opts tabular.QueryOptions) (*tabular.QueryResult, error)
	UpdateFunc  func(ctx context.Context, table, id string, partial tabular.Row) error

	// Track calls for verification
	ConnectCalled bool
	CloseCalled   bool
	TablesCalled  bool
	SchemaCalled  bool
	QueryCalled   bool
	UpdateCalled  bool
}

func (p *StubProvider) Name() string {
	return "stub"
}

func (p *StubProvider) Connect(ctx context.Context, params tabular.ConnectParams) error {
	p.ConnectCalled = true
	if p.ConnectFunc != nil {
		return p.ConnectFunc(ctx, params)
	}
	return nil
}

func (p *StubProvider) Close() error {
	p.CloseCalled = true
	if p.CloseFunc != nil {
		return p.CloseFunc()
	}
	return nil
}

func (p *StubProvider) Tables(ctx context.Context, database string) ([]string, error) {
	p.TablesCalled = true
	if p.TablesFunc != nil {
		return p.TablesFunc(ctx, database)
	}
	return []string{}, nil
}

func (p *StubProvider) Schema(ctx context.Context, table string) ([]tabular.Column, error) {
	p.SchemaCalled = true
	if p.SchemaFunc != nil {
		return p.SchemaFunc(ctx, table)
	}
	return []tabular.Column{}, nil
}

func (p *StubProvider) Query(ctx context.Context, table string, opts tabular.QueryOptions) (*tabular.QueryResult, error) {
	p.QueryCalled = true
	if p.QueryFunc != nil {
		return p.QueryFunc(ctx, table, opts)
	}
	return &tabular.QueryResult{}, nil
}

func (p *StubProvider) Update(ctx context.Context, table, id string, partial tabular.Row) error {
	p.UpdateCalled = true
	if p.UpdateFunc != nil {
		return p.UpdateFunc(ctx, table, id, partial)
	}
	return nil
}

// newConnectedService builds a service over the mock provider and
// connects it with valid demo parameters.
func newConnectedService(ctx context.Context, database string) (*Service, error) {
	service := NewService(tabular.NewMockProvider())
	err := service.Connect(ctx, tabular.ConnectParams{
		Host:     "localhost",
		Port:     3306,
		Username: "root",
		Database: database,
	})
	return service, err
}
