package tabular

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectGenerated(t *testing.T, seed int64) *GeneratedProvider {
	t.Helper()
	p := NewGeneratedProvider(seed)
	err := p.Connect(context.Background(), ConnectParams{
		Host:     "localhost",
		Username: "root",
		Database: "synth",
	})
	require.NoError(t, err)
	return p
}

func TestGeneratedProviderStableAcrossQueries(t *testing.T) {
	p := connectGenerated(t, 42)
	ctx := context.Background()

	first, err := p.Query(ctx, "customers", QueryOptions{})
	require.NoError(t, err)
	second, err := p.Query(ctx, "customers", QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, generatedRowCount, first.Total)
}

func TestGeneratedProviderSameSeedSameData(t *testing.T) {
	ctx := context.Background()

	a, err := connectGenerated(t, 7).Query(ctx, "products", QueryOptions{})
	require.NoError(t, err)
	b, err := connectGenerated(t, 7).Query(ctx, "products", QueryOptions{})
	require.NoError(t, err)

	assert.Equal(t, a.Rows, b.Rows)
}

func TestGeneratedProviderDifferentSeedsDiffer(t *testing.T) {
	ctx := context.Background()

	a, err := connectGenerated(t, 1).Query(ctx, "products", QueryOptions{})
	require.NoError(t, err)
	b, err := connectGenerated(t, 2).Query(ctx, "products", QueryOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, a.Rows, b.Rows)
}

func TestGeneratedProviderUpdateSurvivesRequery(t *testing.T) {
	p := connectGenerated(t, 42)
	ctx := context.Background()

	err := p.Update(ctx, "customers", "17", Row{"city": String("Reykjavik")})
	require.NoError(t, err)

	result, err := p.Query(ctx, "customers", QueryOptions{
		Filters: map[string]string{"city": "Reykjavik"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Rows)
	assert.Equal(t, float64(17), result.Rows[0]["id"].Num)
}

func TestGeneratedProviderUnknownTable(t *testing.T) {
	p := connectGenerated(t, 42)

	_, err := p.Query(context.Background(), "nope", QueryOptions{})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestGeneratedProviderTables(t *testing.T) {
	p := connectGenerated(t, 42)

	tables, err := p.Tables(context.Background(), "synth")
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "products", "transactions"}, tables)
}

func TestGeneratedProviderRowsMatchSchema(t *testing.T) {
	p := connectGenerated(t, 42)
	ctx := context.Background()

	for _, table := range []string{"customers", "products", "transactions"} {
		columns, err := p.Schema(ctx, table)
		require.NoError(t, err)

		result, err := p.Query(ctx, table, QueryOptions{Page: 0, PageSize: 10})
		require.NoError(t, err)

		for _, row := range result.Rows {
			assert.NoError(t, ValidateRow(columns, row), "table %s", table)
		}
	}
}

func TestGeneratedProviderRequiresConnect(t *testing.T) {
	p := NewGeneratedProvider(42)

	_, err := p.Query(context.Background(), "customers", QueryOptions{})
	assert.Error(t, err)
}
