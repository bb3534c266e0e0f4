package tabular

import "context"

// ConnectParams are the parameters of a connection attempt. Validation
// of required fields happens in the service layer before any provider
// sees them.
type ConnectParams struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// Provider defines the interface the data service variants implement:
// canned in-memory data, deterministically generated data, or a
// passthrough to a backing REST API.
type Provider interface {
	// Name returns the provider name for identification
	Name() string

	// Connect establishes the provider's backing resources. A single
	// attempt, no retry.
	Connect(ctx context.Context, params ConnectParams) error

	// Close releases whatever Connect acquired.
	Close() error

	// Tables lists the table names visible in the given database.
	Tables(ctx context.Context, database string) ([]string, error)

	// Schema returns the column schema of a table.
	Schema(ctx context.Context, table string) ([]Column, error)

	// Query applies the given options to a table and returns the
	// result envelope.
	Query(ctx context.Context, table string, opts QueryOptions) (*QueryResult, error)

	// Update merges partial data into the row identified by id.
	Update(ctx context.Context, table, id string, partial Row) error
}

// Registry manages the available data providers.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider to the registry.
func (r *Registry) Register(provider Provider) {
	r.providers[provider.Name()] = provider
}

// Get retrieves a provider by name.
func (r *Registry) Get(name string) (Provider, bool) {
	provider, exists := r.providers[name]
	return provider, exists
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
