package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

// connState tracks the connection gate's state machine:
// disconnected -> connecting -> connected, back to disconnected on
// explicit disconnect.
type connState int

const (
	stateDisconnected connState = iota
	stateConnecting
	stateConnected
)

// Service guards a data provider behind the connection gate. It is
// constructed explicitly at the composition root and handed to the
// CLI, HTTP and MCP surfaces; there is no package-level instance.
type Service struct {
	provider tabular.Provider

	mu     sync.Mutex
	state  connState
	params tabular.ConnectParams
}

func NewService(provider tabular.Provider) *Service {
	return &Service{provider: provider}
}

// Connect validates the required fields, then makes a single attempt
// against the provider. No retry, no backoff. Validation failures
// happen before any provider I/O.
func (s *Service) Connect(ctx context.Context, params tabular.ConnectParams) error {
	if err := validateParams(params); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state != stateDisconnected {
		s.mu.Unlock()
		return fmt.Errorf("already connected to %s", s.params.Host)
	}
	s.state = stateConnecting
	s.mu.Unlock()

	if err := s.provider.Connect(ctx, params); err != nil {
		s.mu.Lock()
		s.state = stateDisconnected
		s.mu.Unlock()
		return fmt.Errorf("failed to connect: %w", err)
	}

	s.mu.Lock()
	s.state = stateConnected
	s.params = params
	s.mu.Unlock()

	slog.Info("connected", "provider", s.provider.Name(), "host", params.Host, "database", params.Database)
	return nil
}

// Disconnect closes the provider and returns to the disconnected
// state. Disconnecting while already disconnected is a no-op.
func (s *Service) Disconnect(_ context.Context) error {
	s.mu.Lock()
	if s.state != stateConnected {
		s.mu.Unlock()
		return nil
	}
	s.state = stateDisconnected
	s.params = tabular.ConnectParams{}
	s.mu.Unlock()

	if err := s.provider.Close(); err != nil {
		return fmt.Errorf("failed to close provider: %w", err)
	}
	slog.Info("disconnected", "provider", s.provider.Name())
	return nil
}

func (s *Service) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateConnected
}

// Params returns the parameters of the active connection.
func (s *Service) Params() tabular.ConnectParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *Service) Tables(ctx context.Context, database string) ([]string, error) {
	if err := s.requireConnected(); err != nil {
		return nil, err
	}
	if database == "" {
		database = s.Params().Database
	}
	return s.provider.Tables(ctx, database)
}

func (s *Service) Schema(ctx context.Context, table string) ([]tabular.Column, error) {
	if err := s.requireConnected(); err != nil {
		return nil, err
	}
	return s.provider.Schema(ctx, table)
}

func (s *Service) Query(ctx context.Context, table string, opts tabular.QueryOptions) (*tabular.QueryResult, error) {
	if err := s.requireConnected(); err != nil {
		return nil, err
	}
	return s.provider.Query(ctx, table, opts)
}

func (s *Service) Update(ctx context.Context, table, id string, partial tabular.Row) error {
	if err := s.requireConnected(); err != nil {
		return err
	}
	return s.provider.Update(ctx, table, id, partial)
}

func (s *Service) requireConnected() error {
	if !s.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

func validateParams(params tabular.ConnectParams) error {
	var missing []string
	if params.Host == "" {
		missing = append(missing, "host")
	}
	if params.Username == "" {
		missing = append(missing, "username")
	}
	if params.Database == "" {
		missing = append(missing, "database")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrValidation, missing)
	}
	return nil
}
