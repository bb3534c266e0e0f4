package tabular

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testColumns() []Column {
	return []Column{
		{Name: "id", Type: "int", Nullable: false},
		{Name: "name", Type: "varchar", Nullable: false},
		{Name: "price", Type: "decimal", Nullable: false},
	}
}

func testRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			"id":    Number(float64(i + 1)),
			"name":  String(fmt.Sprintf("item-%02d", i+1)),
			"price": Number(float64((i*37)%100) + 0.5),
		}
	}
	return rows
}

func TestApplyOptionsPageLength(t *testing.T) {
	rows := testRows(10)

	for _, pageSize := range []int{1, 3, 10, 25} {
		result := ApplyOptions(testColumns(), rows, QueryOptions{Page: 0, PageSize: pageSize})
		expected := pageSize
		if expected > result.Total {
			expected = result.Total
		}
		assert.Len(t, result.Rows, expected, "pageSize=%d", pageSize)
		assert.Equal(t, 10, result.Total)
	}
}

func TestApplyOptionsTotalIgnoresPagination(t *testing.T) {
	rows := testRows(10)

	result := ApplyOptions(testColumns(), rows, QueryOptions{
		Filters:  map[string]string{"name": "item-0"},
		Page:     0,
		PageSize: 2,
	})

	// item-01 .. item-09 match
	assert.Equal(t, 9, result.Total)
	assert.Len(t, result.Rows, 2)
}

func TestApplyOptionsFilterCaseInsensitive(t *testing.T) {
	rows := []Row{
		{"id": Number(1), "name": String("Mechanical Keyboard"), "price": Number(10)},
		{"id": Number(2), "name": String("mouse"), "price": Number(20)},
	}

	result := ApplyOptions(testColumns(), rows, QueryOptions{
		Filters: map[string]string{"name": "KEYBOARD"},
	})

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Mechanical Keyboard", result.Rows[0]["name"].Str)
}

func TestApplyOptionsFiltersAreANDed(t *testing.T) {
	rows := []Row{
		{"id": Number(1), "name": String("alpha"), "price": Number(10)},
		{"id": Number(2), "name": String("alpha"), "price": Number(25)},
		{"id": Number(3), "name": String("beta"), "price": Number(25)},
	}

	result := ApplyOptions(testColumns(), rows, QueryOptions{
		Filters: map[string]string{"name": "alpha", "price": "25"},
	})

	require.Len(t, result.Rows, 1)
	assert.Equal(t, float64(2), result.Rows[0]["id"].Num)
}

func TestApplyOptionsEmptyFilterValueIsNoOp(t *testing.T) {
	rows := testRows(5)

	result := ApplyOptions(testColumns(), rows, QueryOptions{
		Filters: map[string]string{"name": ""},
	})

	assert.Equal(t, 5, result.Total)
	assert.Len(t, result.Rows, 5)
}

func TestApplyOptionsFilterOnMissingCell(t *testing.T) {
	rows := []Row{
		{"id": Number(1), "name": String("has-cell"), "price": Number(1)},
		{"id": Number(2), "price": Number(2)},
	}

	result := ApplyOptions(testColumns(), rows, QueryOptions{
		Filters: map[string]string{"name": "cell"},
	})

	assert.Equal(t, 1, result.Total)
}

func TestApplyOptionsFilterIdempotent(t *testing.T) {
	rows := testRows(20)
	opts := QueryOptions{Filters: map[string]string{"name": "item-1"}}

	once := ApplyOptions(testColumns(), rows, opts)
	twice := ApplyOptions(testColumns(), once.Rows, opts)

	assert.Equal(t, once.Total, twice.Total)
	assert.Equal(t, once.Rows, twice.Rows)
}

func TestApplyOptionsSortAscThenDescReverses(t *testing.T) {
	rows := []Row{
		{"id": Number(1), "name": String("c"), "price": Number(30)},
		{"id": Number(2), "name": String("a"), "price": Number(10)},
		{"id": Number(3), "name": String("b"), "price": Number(20)},
	}

	asc := ApplyOptions(testColumns(), rows, QueryOptions{
		Sort: &SortSpec{Column: "price", Direction: Ascending},
	})
	desc := ApplyOptions(testColumns(), rows, QueryOptions{
		Sort: &SortSpec{Column: "price", Direction: Descending},
	})

	require.Len(t, asc.Rows, 3)
	require.Len(t, desc.Rows, 3)
	for i := range asc.Rows {
		assert.Equal(t, asc.Rows[i]["id"], desc.Rows[len(desc.Rows)-1-i]["id"])
	}
}

func TestApplyOptionsSortNumbersNumerically(t *testing.T) {
	rows := []Row{
		{"id": Number(1), "name": String("x"), "price": Number(9)},
		{"id": Number(2), "name": String("y"), "price": Number(100)},
	}

	result := ApplyOptions(testColumns(), rows, QueryOptions{
		Sort: &SortSpec{Column: "price", Direction: Ascending},
	})

	// lexicographically "100" < "9"; numeric comparison keeps 9 first
	assert.Equal(t, float64(9), result.Rows[0]["price"].Num)
}

func TestApplyOptionsSortIsStable(t *testing.T) {
	rows := []Row{
		{"id": Number(1), "name": String("same"), "price": Number(5)},
		{"id": Number(2), "name": String("same"), "price": Number(5)},
		{"id": Number(3), "name": String("same"), "price": Number(5)},
	}

	result := ApplyOptions(testColumns(), rows, QueryOptions{
		Sort: &SortSpec{Column: "price", Direction: Ascending},
	})

	for i, row := range result.Rows {
		assert.Equal(t, float64(i+1), row["id"].Num)
	}
}

func TestApplyOptionsOutOfRangePage(t *testing.T) {
	rows := testRows(5)

	result := ApplyOptions(testColumns(), rows, QueryOptions{Page: 7, PageSize: 3})

	assert.Empty(t, result.Rows)
	assert.Equal(t, 5, result.Total)
}

func TestApplyOptionsLastPartialPage(t *testing.T) {
	rows := testRows(5)

	result := ApplyOptions(testColumns(), rows, QueryOptions{Page: 1, PageSize: 3})

	assert.Len(t, result.Rows, 2)
	assert.Equal(t, 5, result.Total)
}

func TestApplyOptionsZeroPageSizeReturnsAll(t *testing.T) {
	rows := testRows(8)

	result := ApplyOptions(testColumns(), rows, QueryOptions{})

	assert.Len(t, result.Rows, 8)
	assert.Equal(t, 8, result.Total)
}
