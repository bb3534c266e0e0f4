package tabular

import (
	"fmt"
	"strings"
)

// FormatSchemaInfo formats a table schema as human-readable text.
func FormatSchemaInfo(table string, columns []Column) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Table: %s\n", table))
	sb.WriteString("Columns:\n")
	for _, col := range columns {
		nullable := "NOT NULL"
		if col.Nullable {
			nullable = "NULL"
		}
		sb.WriteString(fmt.Sprintf("  - %s %s %s\n", col.Name, strings.ToUpper(col.Type), nullable))
	}

	return sb.String()
}

// FormatQueryResult renders a result envelope as a plain text grid
// with a trailing row count line.
func FormatQueryResult(result *QueryResult) string {
	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = len(col.Name)
	}
	cells := make([][]string, len(result.Rows))
	for r, row := range result.Rows {
		cells[r] = make([]string, len(result.Columns))
		for i, col := range result.Columns {
			cell := row[col.Name].String()
			cells[r][i] = cell
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder

	for i, col := range result.Columns {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(pad(col.Name, widths[i]))
	}
	sb.WriteString("\n")

	for i, width := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", width))
	}
	sb.WriteString("\n")

	for _, row := range cells {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(pad(cell, widths[i]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n%d of %d row(s)\n", len(result.Rows), result.Total))

	return sb.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
