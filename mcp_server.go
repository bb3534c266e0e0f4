package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

// StartMCPServer exposes the data service as Model Context Protocol
// tools over stdio. The service is injected already connected; the
// tools only read and update data.
func StartMCPServer(service DataService) error {
	s := server.NewMCPServer(
		"mysql-connective",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	listTablesTool := mcp.NewTool("list_tables",
		mcp.WithDescription("List the table names visible in the connected database"),
		mcp.WithString("database",
			mcp.Description("Database name (defaults to the active connection's database)"),
		),
	)

	s.AddTool(listTablesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListTables(ctx, service, request)
	})

	getSchemaTool := mcp.NewTool("get_schema",
		mcp.WithDescription("Get the column schema of a table"),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Name of the table"),
		),
	)

	s.AddTool(getSchemaTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetSchema(ctx, service, request)
	})

	queryTableTool := mcp.NewTool("query_table",
		mcp.WithDescription("Query a table with optional filtering, sorting and pagination"),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Name of the table to query"),
		),
		mcp.WithString("filters",
			mcp.Description("JSON object mapping column names to case-insensitive substrings"),
		),
		mcp.WithString("sort_column",
			mcp.Description("Column to sort by"),
		),
		mcp.WithString("sort_direction",
			mcp.Description("Sort direction (default asc)"),
			mcp.Enum("asc", "desc"),
		),
		mcp.WithString("page",
			mcp.Description("Zero-based page number (default 0)"),
		),
		mcp.WithString("page_size",
			mcp.Description("Rows per page (default: all rows)"),
		),
	)

	s.AddTool(queryTableTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleQueryTable(ctx, service, request)
	})

	updateRowTool := mcp.NewTool("update_row",
		mcp.WithDescription("Merge partial data into the row identified by id"),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Name of the table"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Value of the row's id field"),
		),
		mcp.WithString("data",
			mcp.Required(),
			mcp.Description("JSON object of column values to merge into the row"),
		),
	)

	s.AddTool(updateRowTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleUpdateRow(ctx, service, request)
	})

	slog.Info("starting mysql-connective mcp server")
	return server.ServeStdio(s)
}

// handleListTables processes the list_tables tool request
func handleListTables(ctx context.Context, service DataService, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	database := request.GetString("database", "")

	tables, err := service.Tables(ctx, database)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := json.MarshalIndent(tabular.TableInfos(tables), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal tables: %v", err)), nil
	}

	return mcp.NewToolResultText(string(output)), nil
}

// handleGetSchema processes the get_schema tool request
func handleGetSchema(ctx context.Context, service DataService, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := request.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError("table parameter is required"), nil
	}

	columns, err := service.Schema(ctx, table)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(tabular.FormatSchemaInfo(table, columns)), nil
}

// handleQueryTable processes the query_table tool request
func handleQueryTable(ctx context.Context, service DataService, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := request.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError("table parameter is required"), nil
	}

	opts, err := buildQueryOptions(
		request.GetString("filters", ""),
		request.GetString("sort_column", ""),
		request.GetString("sort_direction", "asc"),
		request.GetString("page", ""),
		request.GetString("page_size", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := service.Query(ctx, table, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(output)), nil
}

// buildQueryOptions assembles query options from the tool's string
// parameters, separated for testing.
func buildQueryOptions(filters, sortColumn, sortDirection, page, pageSize string) (tabular.QueryOptions, error) {
	var opts tabular.QueryOptions

	if filters != "" {
		if err := json.Unmarshal([]byte(filters), &opts.Filters); err != nil {
			return opts, fmt.Errorf("filters must be a JSON object of strings: %v", err)
		}
	}

	if sortColumn != "" {
		direction := tabular.Ascending
		if sortDirection == "desc" {
			direction = tabular.Descending
		}
		opts.Sort = &tabular.SortSpec{Column: sortColumn, Direction: direction}
	}

	if page != "" {
		parsed, err := strconv.Atoi(page)
		if err != nil {
			return opts, fmt.Errorf("page must be an integer: %v", err)
		}
		opts.Page = parsed
	}

	if pageSize != "" {
		parsed, err := strconv.Atoi(pageSize)
		if err != nil {
			return opts, fmt.Errorf("page_size must be an integer: %v", err)
		}
		opts.PageSize = parsed
	}

	return opts, nil
}

// handleUpdateRow processes the update_row tool request
func handleUpdateRow(ctx context.Context, service DataService, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := request.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError("table parameter is required"), nil
	}

	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	data, err := request.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError("data parameter is required"), nil
	}

	var partial tabular.Row
	if err := json.Unmarshal([]byte(data), &partial); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("data must be a JSON object of scalars: %v", err)), nil
	}

	if err := service.Update(ctx, table, id, partial); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("row %s in table %s updated successfully", id, table)), nil
}
