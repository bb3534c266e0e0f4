package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

var (
	serveMode  bool
	mcpMode    bool
	jsonOutput bool
	configPath string

	providerName string
	databaseName string

	filterFlags []string
	sortColumn  string
	sortDesc    bool
	pageFlag    int
	pageSize    int
)

var rootCmd = &cobra.Command{
	Use:   "mysql-connective [table]",
	Short: "Browse and edit tabular data without a real database",
	Long: `mysql-connective is an administrative data browser backed by pluggable
data providers: canned demo data, deterministically generated data, or a
passthrough to a backing REST API. No real database is ever contacted.

Modes:
  query mode (default): query one table and print the rows
  serve mode (--serve): expose the service as an HTTP API
  mcp mode (--mcp): run as Model Context Protocol server`,
	Args: func(cmd *cobra.Command, args []string) error {
		if serveMode || mcpMode {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: runConnective,
}

func main() {
	if err := run(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	if rootCmd.Flags().Lookup("serve") == nil {
		rootCmd.Flags().BoolVar(&serveMode, "serve", false, "Expose the service as an HTTP API")
		rootCmd.Flags().BoolVar(&mcpMode, "mcp", false, "Run as Model Context Protocol server")
		rootCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Print query results as JSON")
		rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")
		rootCmd.Flags().StringVar(&providerName, "provider", "", "Data provider to use (mock, generated, rest)")
		rootCmd.Flags().StringVar(&databaseName, "database", "", "Database name to connect to")
		rootCmd.Flags().StringArrayVarP(&filterFlags, "filter", "f", nil, "Column filter as column=substring (repeatable)")
		rootCmd.Flags().StringVar(&sortColumn, "sort", "", "Column to sort by")
		rootCmd.Flags().BoolVar(&sortDesc, "desc", false, "Sort in descending order")
		rootCmd.Flags().IntVar(&pageFlag, "page", 0, "Zero-based page number")
		rootCmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (0 means all)")
	}

	return rootCmd.Execute()
}

func runConnective(cmd *cobra.Command, args []string) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if providerName != "" {
		cfg.Provider.Name = providerName
	}
	if databaseName != "" {
		cfg.Connection.Database = databaseName
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	provider, err := BuildProvider(cfg)
	if err != nil {
		slog.Error("failed to build provider", "error", err)
		os.Exit(1)
	}

	service := NewService(provider)
	book := NewConnectionBook(openSessionStore(cfg))

	ctx := context.Background()
	if err := service.Connect(ctx, cfg.ConnectParams()); err != nil {
		slog.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := service.Disconnect(ctx); err != nil {
			slog.Error("failed to disconnect", "error", err)
		}
	}()

	rememberConnection(book, cfg)

	switch {
	case mcpMode:
		slog.Info("starting mcp server")
		if err := StartMCPServer(service); err != nil {
			slog.Error("failed to start mcp server", "error", err)
			os.Exit(1)
		}
	case serveMode:
		api := NewAPIServer(service, book, cfg.Session.UserID, cfg.Serve.DefaultPageSize)
		if err := api.ListenAndServe(cfg.Serve.Addr); err != nil {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	default:
		if err := queryAndPrint(ctx, service, args[0]); err != nil {
			slog.Error("query failed", "error", err)
			os.Exit(1)
		}
	}
}

func openSessionStore(cfg Config) KVStore {
	if cfg.Session.File != "" {
		return NewFileKVStore(cfg.Session.File)
	}
	return NewMemKVStore()
}

func rememberConnection(book *ConnectionBook, cfg Config) {
	params := cfg.ConnectParams()
	saved := SavedConnection{
		ID:     fmt.Sprintf("%s/%s", params.Host, params.Database),
		Name:   fmt.Sprintf("%s/%s", params.Host, params.Database),
		Params: params,
	}
	if err := book.Remember(cfg.Session.UserID, saved); err != nil {
		slog.Error("failed to persist connection", "error", err)
	}
}

// queryAndPrint runs the one-shot query mode against the injected
// service and writes the result to stdout.
func queryAndPrint(ctx context.Context, service DataService, table string) error {
	opts, err := queryOptionsFromFlags()
	if err != nil {
		return err
	}

	result, err := service.Query(ctx, table, opts)
	if err != nil {
		return fmt.Errorf("failed to query table %s: %w", table, err)
	}

	if jsonOutput {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	fmt.Print(tabular.FormatQueryResult(result))
	return nil
}

func queryOptionsFromFlags() (tabular.QueryOptions, error) {
	opts := tabular.QueryOptions{
		Page:     pageFlag,
		PageSize: pageSize,
	}

	if len(filterFlags) > 0 {
		opts.Filters = make(map[string]string, len(filterFlags))
		for _, raw := range filterFlags {
			column, value, ok := strings.Cut(raw, "=")
			if !ok || column == "" {
				return opts, fmt.Errorf("invalid filter %q, expected column=substring", raw)
			}
			opts.Filters[column] = value
		}
	}

	if sortColumn != "" {
		direction := tabular.Ascending
		if sortDesc {
			direction = tabular.Descending
		}
		opts.Sort = &tabular.SortSpec{Column: sortColumn, Direction: direction}
	}

	return opts, nil
}
