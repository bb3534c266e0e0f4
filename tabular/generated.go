package tabular

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math/rand"
	"sync"
)

// generatedRowCount is how many rows each synthesized table gets.
const generatedRowCount = 100

// GeneratedProvider synthesizes table data from a seeded pseudo-random
// source. Each table is generated exactly once, on first access, and
// loaded into a persistent row store: repeated queries see the same
// rows and updates survive re-querying. The same seed always produces
// the same dataset.
type GeneratedProvider struct {
	seed int64

	mu    sync.Mutex
	store *Store
}

func NewGeneratedProvider(seed int64) *GeneratedProvider {
	return &GeneratedProvider{seed: seed}
}

func (p *GeneratedProvider) Name() string {
	return "generated"
}

func (p *GeneratedProvider) Connect(_ context.Context, params ConnectParams) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store = NewStore()
	slog.Debug("generated provider connected", "database", params.Database, "seed", p.seed)
	return nil
}

func (p *GeneratedProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store = nil
	return nil
}

func (p *GeneratedProvider) Tables(_ context.Context, _ string) ([]string, error) {
	if _, err := p.ensureConnected(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(generatedSchemas))
	for _, schema := range generatedSchemas {
		names = append(names, schema.name)
	}
	return names, nil
}

func (p *GeneratedProvider) Schema(_ context.Context, table string) ([]Column, error) {
	store, err := p.ensureTable(table)
	if err != nil {
		return nil, err
	}
	return store.Schema(table)
}

func (p *GeneratedProvider) Query(_ context.Context, table string, opts QueryOptions) (*QueryResult, error) {
	store, err := p.ensureTable(table)
	if err != nil {
		return nil, err
	}
	columns, rows, err := store.Snapshot(table)
	if err != nil {
		return nil, err
	}
	return ApplyOptions(columns, rows, opts), nil
}

func (p *GeneratedProvider) Update(_ context.Context, table, id string, partial Row) error {
	store, err := p.ensureTable(table)
	if err != nil {
		return err
	}
	return store.UpdateRow(table, id, partial)
}

func (p *GeneratedProvider) ensureConnected() (*Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store == nil {
		return nil, fmt.Errorf("generated provider is not connected")
	}
	return p.store, nil
}

// ensureTable generates the table into the store on first access.
func (p *GeneratedProvider) ensureTable(table string) (*Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store == nil {
		return nil, fmt.Errorf("generated provider is not connected")
	}
	if p.store.Has(table) {
		return p.store, nil
	}

	schema, ok := generatedSchemaFor(table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	rng := rand.New(rand.NewSource(p.seed ^ int64(hashTableName(table))))
	rows := make([]Row, generatedRowCount)
	for i := range rows {
		rows[i] = schema.generate(rng, i+1)
	}
	p.store.Load(table, schema.columns, rows)
	slog.Debug("generated table", "table", table, "rows", len(rows))

	return p.store, nil
}

func hashTableName(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}

type generatedSchema struct {
	name     string
	columns  []Column
	generate func(rng *rand.Rand, id int) Row
}

func generatedSchemaFor(table string) (generatedSchema, bool) {
	for _, schema := range generatedSchemas {
		if schema.name == table {
			return schema, true
		}
	}
	return generatedSchema{}, false
}

var firstNames = []string{"Alice", "Bruno", "Chen", "Dana", "Emil", "Farah", "Goran", "Hana", "Ivan", "Jade"}
var lastNames = []string{"Abadi", "Berg", "Costa", "Dahl", "Endo", "Fischer", "Gupta", "Hayes", "Ito", "Juma"}
var cities = []string{"Berlin", "Lisbon", "Nairobi", "Osaka", "Porto", "Quito", "Riga", "Seoul", "Tallinn", "Utrecht"}
var productWords = []string{"Atlas", "Beacon", "Cobalt", "Drift", "Ember", "Flux", "Granite", "Helix", "Ion", "Jet"}
var txStatuses = []string{"pending", "settled", "failed", "refunded"}

var generatedSchemas = []generatedSchema{
	{
		name: "customers",
		columns: []Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "name", Type: "varchar", Nullable: false},
			{Name: "city", Type: "varchar", Nullable: false},
			{Name: "balance", Type: "decimal", Nullable: false},
			{Name: "verified", Type: "boolean", Nullable: false},
		},
		generate: func(rng *rand.Rand, id int) Row {
			return Row{
				"id":       Number(float64(id)),
				"name":     String(firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]),
				"city":     String(cities[rng.Intn(len(cities))]),
				"balance":  Number(float64(rng.Intn(1000000)) / 100),
				"verified": Boolean(rng.Intn(4) != 0),
			}
		},
	},
	{
		name: "products",
		columns: []Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "name", Type: "varchar", Nullable: false},
			{Name: "price", Type: "decimal", Nullable: false},
			{Name: "in_stock", Type: "int", Nullable: false},
		},
		generate: func(rng *rand.Rand, id int) Row {
			return Row{
				"id":       Number(float64(id)),
				"name":     String(productWords[rng.Intn(len(productWords))] + " " + productWords[rng.Intn(len(productWords))]),
				"price":    Number(float64(rng.Intn(50000)) / 100),
				"in_stock": Number(float64(rng.Intn(200))),
			}
		},
	},
	{
		name: "transactions",
		columns: []Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "customer_id", Type: "int", Nullable: false},
			{Name: "amount", Type: "decimal", Nullable: false},
			{Name: "status", Type: "varchar", Nullable: false},
			{Name: "reference", Type: "varchar", Nullable: true},
		},
		generate: func(rng *rand.Rand, id int) Row {
			ref := Null()
			if rng.Intn(3) != 0 {
				ref = String(fmt.Sprintf("TX-%06d", rng.Intn(1000000)))
			}
			return Row{
				"id":          Number(float64(id)),
				"customer_id": Number(float64(rng.Intn(generatedRowCount) + 1)),
				"amount":      Number(float64(rng.Intn(200000)) / 100),
				"status":      String(txStatuses[rng.Intn(len(txStatuses))]),
				"reference":   ref,
			}
		},
	},
}
