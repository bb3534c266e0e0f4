package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

func TestServiceConnectValidatesBeforeProviderIO(t *testing.T) {
	tests := []struct {
		name   string
		params tabular.ConnectParams
	}{
		{"empty_host", tabular.ConnectParams{Host: "", Port: 3306, Username: "root", Database: "mydb"}},
		{"empty_username", tabular.ConnectParams{Host: "localhost", Port: 3306, Database: "mydb"}},
		{"empty_database", tabular.ConnectParams{Host: "localhost", Port: 3306, Username: "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &StubProvider{}
			service := NewService(stub)

			err := service.Connect(context.Background(), tt.params)
			assert.ErrorIs(t, err, ErrValidation)
			assert.False(t, stub.ConnectCalled, "provider must not be reached on validation failure")
			assert.False(t, service.IsConnected())
		})
	}
}

func TestServiceConnectStoresParams(t *testing.T) {
	stub := &StubProvider{}
	service := NewService(stub)

	params := tabular.ConnectParams{Host: "localhost", Port: 3306, Username: "root", Database: "mydb"}
	require.NoError(t, service.Connect(context.Background(), params))

	assert.True(t, service.IsConnected())
	assert.Equal(t, params, service.Params())
	assert.True(t, stub.ConnectCalled)
}

func TestServiceConnectProviderFailureResetsState(t *testing.T) {
	stub := &StubProvider{
		ConnectFunc: func(context.Context, tabular.ConnectParams) error {
			return fmt.Errorf("connection refused")
		},
	}
	service := NewService(stub)

	err := service.Connect(context.Background(), tabular.ConnectParams{
		Host: "localhost", Username: "root", Database: "mydb",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, service.IsConnected())
}

func TestServiceDoubleConnect(t *testing.T) {
	stub := &StubProvider{}
	service := NewService(stub)

	params := tabular.ConnectParams{Host: "localhost", Username: "root", Database: "mydb"}
	require.NoError(t, service.Connect(context.Background(), params))

	err := service.Connect(context.Background(), params)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already connected")
}

func TestServiceOperationsFailFastWhenDisconnected(t *testing.T) {
	stub := &StubProvider{}
	service := NewService(stub)
	ctx := context.Background()

	_, err := service.Tables(ctx, "mydb")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = service.Schema(ctx, "products")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = service.Query(ctx, "products", tabular.QueryOptions{})
	assert.ErrorIs(t, err, ErrNotConnected)

	err = service.Update(ctx, "products", "1", tabular.Row{"price": tabular.Number(1)})
	assert.ErrorIs(t, err, ErrNotConnected)

	assert.False(t, stub.TablesCalled)
	assert.False(t, stub.QueryCalled)
	assert.False(t, stub.UpdateCalled)
}

func TestServiceDisconnectReturnsToDisconnected(t *testing.T) {
	stub := &StubProvider{}
	service := NewService(stub)
	ctx := context.Background()

	require.NoError(t, service.Connect(ctx, tabular.ConnectParams{
		Host: "localhost", Username: "root", Database: "mydb",
	}))
	require.NoError(t, service.Disconnect(ctx))

	assert.True(t, stub.CloseCalled)
	assert.False(t, service.IsConnected())

	_, err := service.Tables(ctx, "mydb")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestServiceDisconnectWhenDisconnectedIsNoOp(t *testing.T) {
	stub := &StubProvider{}
	service := NewService(stub)

	require.NoError(t, service.Disconnect(context.Background()))
	assert.False(t, stub.CloseCalled)
}

func TestServiceTablesDefaultsToConnectedDatabase(t *testing.T) {
	var seenDatabase string
	stub := &StubProvider{
		TablesFunc: func(_ context.Context, database string) ([]string, error) {
			seenDatabase = database
			return []string{"products"}, nil
		},
	}
	service := NewService(stub)
	ctx := context.Background()

	require.NoError(t, service.Connect(ctx, tabular.ConnectParams{
		Host: "localhost", Username: "root", Database: "mydb",
	}))

	_, err := service.Tables(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "mydb", seenDatabase)

	_, err = service.Tables(ctx, "otherdb")
	require.NoError(t, err)
	assert.Equal(t, "otherdb", seenDatabase)
}

func TestServiceEndToEndWithMockProvider(t *testing.T) {
	ctx := context.Background()
	service, err := newConnectedService(ctx, "demo")
	require.NoError(t, err)

	tables, err := service.Tables(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, tables, "products")

	result, err := service.Query(ctx, "products", tabular.QueryOptions{
		Sort:     &tabular.SortSpec{Column: "price", Direction: tabular.Descending},
		Page:     0,
		PageSize: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, result.Total)
	assert.Len(t, result.Rows, 3)

	require.NoError(t, service.Update(ctx, "products", "8", tabular.Row{"price": tabular.Number(29.95)}))

	after, err := service.Query(ctx, "products", tabular.QueryOptions{
		Filters: map[string]string{"name": "Desk Lamp"},
	})
	require.NoError(t, err)
	require.Len(t, after.Rows, 1)
	assert.Equal(t, float64(29.95), after.Rows[0]["price"].Num)
}
