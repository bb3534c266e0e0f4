package tabular

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the scalar kind held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Value is a tagged union over the scalar kinds a cell can hold.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

func Null() Value {
	return Value{Kind: KindNull}
}

func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// GoValue returns the plain Go scalar behind the value, nil for null.
func (v Value) GoValue() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	}
	return nil
}

// String renders the value the way filtering and row matching see it.
// Null renders as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// Compare orders two values: numbers numerically, everything else by
// the stringified form. Null sorts before any non-null value.
func (v Value) Compare(other Value) int {
	if v.Kind == KindNull || other.Kind == KindNull {
		switch {
		case v.Kind == other.Kind:
			return 0
		case v.Kind == KindNull:
			return -1
		default:
			return 1
		}
	}
	if v.Kind == KindNumber && other.Kind == KindNumber {
		switch {
		case v.Num < other.Num:
			return -1
		case v.Num > other.Num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(v.String(), other.String())
}

// MarshalJSON encodes a value as the plain scalar it wraps.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.GoValue())
}

// UnmarshalJSON decodes a plain JSON scalar into a tagged value.
// Arrays and objects are rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = String(t)
	case float64:
		*v = Number(t)
	case bool:
		*v = Boolean(t)
	default:
		return fmt.Errorf("unsupported cell value of type %T", raw)
	}
	return nil
}

// Column describes one field of a table's schema.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Row maps column names to cell values.
type Row map[string]Value

// Clone returns a shallow-safe copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// TableInfo names a table together with the schema it belongs to.
type TableInfo struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
}

// TableInfos wraps table names in the fixed "public" schema. No
// provider derives real schema membership.
func TableInfos(names []string) []TableInfo {
	infos := make([]TableInfo, len(names))
	for i, name := range names {
		infos[i] = TableInfo{Name: name, Schema: "public"}
	}
	return infos
}

// Direction of a sort spec.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortSpec selects a single column to order by.
type SortSpec struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// QueryOptions carries the filter, sort and pagination parameters of a
// table query. A nil Sort means no ordering; a zero PageSize means no
// pagination.
type QueryOptions struct {
	Filters  map[string]string `json:"filters,omitempty"`
	Sort     *SortSpec         `json:"sort,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// QueryResult is the envelope returned by a table query. Total counts
// the rows matching the filters before pagination is applied.
type QueryResult struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Total   int      `json:"total"`
}

// expectedKind maps a free-form column type tag to the scalar kind a
// cell of that column is expected to hold.
func expectedKind(typeTag string) Kind {
	tag := strings.ToLower(typeTag)
	switch {
	case strings.HasPrefix(tag, "int"), strings.HasPrefix(tag, "bigint"),
		strings.HasPrefix(tag, "smallint"), strings.HasPrefix(tag, "decimal"),
		strings.HasPrefix(tag, "numeric"), strings.HasPrefix(tag, "float"),
		strings.HasPrefix(tag, "double"), strings.HasPrefix(tag, "real"):
		return KindNumber
	case strings.HasPrefix(tag, "bool"):
		return KindBool
	default:
		return KindString
	}
}

// ValidateRow checks a row coming from outside the system against the
// column schema: unknown columns are rejected, null cells must be
// nullable, and non-null cells must match the kind implied by the
// column type tag.
func ValidateRow(columns []Column, row Row) error {
	byName := make(map[string]Column, len(columns))
	for _, col := range columns {
		byName[col.Name] = col
	}

	for name, cell := range row {
		col, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown column %q", name)
		}
		if cell.Kind == KindNull {
			if !col.Nullable {
				return fmt.Errorf("column %q is not nullable", name)
			}
			continue
		}
		if want := expectedKind(col.Type); cell.Kind != want {
			return fmt.Errorf("column %q expects a %s value, got %s", name, want, cell.Kind)
		}
	}

	for _, col := range columns {
		if _, ok := row[col.Name]; !ok && !col.Nullable {
			return fmt.Errorf("missing value for column %q", col.Name)
		}
	}

	return nil
}
