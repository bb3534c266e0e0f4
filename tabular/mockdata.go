package tabular

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// MockProvider serves canned demo datasets from an in-memory row
// store. Connecting always succeeds; the dataset loaded depends on the
// database name, so a demo can show different flavors without a real
// backend.
type MockProvider struct {
	store *Store
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) Connect(_ context.Context, params ConnectParams) error {
	store := NewStore()
	if strings.Contains(strings.ToLower(params.Database), "sales") {
		loadSalesTables(store)
	} else {
		loadDefaultTables(store)
	}
	p.store = store
	slog.Debug("mock provider connected", "database", params.Database, "tables", store.Tables())
	return nil
}

func (p *MockProvider) Close() error {
	p.store = nil
	return nil
}

func (p *MockProvider) Tables(_ context.Context, _ string) ([]string, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	return p.store.Tables(), nil
}

func (p *MockProvider) Schema(_ context.Context, table string) ([]Column, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	return p.store.Schema(table)
}

func (p *MockProvider) Query(_ context.Context, table string, opts QueryOptions) (*QueryResult, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	columns, rows, err := p.store.Snapshot(table)
	if err != nil {
		return nil, err
	}
	return ApplyOptions(columns, rows, opts), nil
}

func (p *MockProvider) Update(_ context.Context, table, id string, partial Row) error {
	if err := p.ready(); err != nil {
		return err
	}
	return p.store.UpdateRow(table, id, partial)
}

func (p *MockProvider) ready() error {
	if p.store == nil {
		return fmt.Errorf("mock provider is not connected")
	}
	return nil
}

func loadDefaultTables(store *Store) {
	store.Load("products",
		[]Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "name", Type: "varchar", Nullable: false},
			{Name: "category", Type: "varchar", Nullable: false},
			{Name: "price", Type: "decimal", Nullable: false},
			{Name: "in_stock", Type: "int", Nullable: false},
			{Name: "active", Type: "boolean", Nullable: false},
		},
		[]Row{
			{"id": Number(1), "name": String("Mechanical Keyboard"), "category": String("peripherals"), "price": Number(129.99), "in_stock": Number(42), "active": Boolean(true)},
			{"id": Number(2), "name": String("Wireless Mouse"), "category": String("peripherals"), "price": Number(49.50), "in_stock": Number(120), "active": Boolean(true)},
			{"id": Number(3), "name": String("27in Monitor"), "category": String("displays"), "price": Number(319.00), "in_stock": Number(18), "active": Boolean(true)},
			{"id": Number(4), "name": String("USB-C Dock"), "category": String("accessories"), "price": Number(189.95), "in_stock": Number(33), "active": Boolean(true)},
			{"id": Number(5), "name": String("Laptop Stand"), "category": String("accessories"), "price": Number(39.99), "in_stock": Number(75), "active": Boolean(true)},
			{"id": Number(6), "name": String("Webcam 4K"), "category": String("peripherals"), "price": Number(99.00), "in_stock": Number(0), "active": Boolean(false)},
			{"id": Number(7), "name": String("Noise-Cancelling Headset"), "category": String("audio"), "price": Number(249.99), "in_stock": Number(27), "active": Boolean(true)},
			{"id": Number(8), "name": String("Desk Lamp"), "category": String("accessories"), "price": Number(24.95), "in_stock": Number(64), "active": Boolean(true)},
		})

	store.Load("users",
		[]Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "username", Type: "varchar", Nullable: false},
			{Name: "email", Type: "varchar", Nullable: false},
			{Name: "created_at", Type: "timestamp", Nullable: false},
			{Name: "active", Type: "boolean", Nullable: false},
		},
		[]Row{
			{"id": Number(1), "username": String("amartin"), "email": String("a.martin@example.com"), "created_at": String("2023-04-11 09:32:00"), "active": Boolean(true)},
			{"id": Number(2), "username": String("jchen"), "email": String("j.chen@example.com"), "created_at": String("2023-06-02 14:05:21"), "active": Boolean(true)},
			{"id": Number(3), "username": String("rpatel"), "email": String("r.patel@example.com"), "created_at": String("2023-09-18 17:44:10"), "active": Boolean(false)},
			{"id": Number(4), "username": String("slopez"), "email": String("s.lopez@example.com"), "created_at": String("2024-01-07 08:12:55"), "active": Boolean(true)},
			{"id": Number(5), "username": String("tnguyen"), "email": String("t.nguyen@example.com"), "created_at": String("2024-03-22 11:58:03"), "active": Boolean(true)},
		})

	store.Load("orders",
		[]Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "user_id", Type: "int", Nullable: false},
			{Name: "product_id", Type: "int", Nullable: false},
			{Name: "quantity", Type: "int", Nullable: false},
			{Name: "total", Type: "decimal", Nullable: false},
			{Name: "status", Type: "varchar", Nullable: false},
			{Name: "notes", Type: "varchar", Nullable: true},
		},
		[]Row{
			{"id": Number(1), "user_id": Number(2), "product_id": Number(1), "quantity": Number(1), "total": Number(129.99), "status": String("shipped"), "notes": Null()},
			{"id": Number(2), "user_id": Number(1), "product_id": Number(3), "quantity": Number(2), "total": Number(638.00), "status": String("pending"), "notes": String("deliver after 6pm")},
			{"id": Number(3), "user_id": Number(4), "product_id": Number(5), "quantity": Number(1), "total": Number(39.99), "status": String("delivered"), "notes": Null()},
			{"id": Number(4), "user_id": Number(2), "product_id": Number(7), "quantity": Number(1), "total": Number(249.99), "status": String("cancelled"), "notes": String("customer request")},
			{"id": Number(5), "user_id": Number(5), "product_id": Number(2), "quantity": Number(3), "total": Number(148.50), "status": String("shipped"), "notes": Null()},
			{"id": Number(6), "user_id": Number(3), "product_id": Number(8), "quantity": Number(2), "total": Number(49.90), "status": String("pending"), "notes": Null()},
		})
}

func loadSalesTables(store *Store) {
	store.Load("customers",
		[]Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "company", Type: "varchar", Nullable: false},
			{Name: "contact", Type: "varchar", Nullable: false},
			{Name: "region", Type: "varchar", Nullable: false},
			{Name: "lifetime_value", Type: "decimal", Nullable: false},
		},
		[]Row{
			{"id": Number(1), "company": String("Northwind Traders"), "contact": String("M. Fuller"), "region": String("EMEA"), "lifetime_value": Number(84200.00)},
			{"id": Number(2), "company": String("Contoso Ltd"), "contact": String("P. Duarte"), "region": String("AMER"), "lifetime_value": Number(132750.50)},
			{"id": Number(3), "company": String("Fabrikam Inc"), "contact": String("K. Tanaka"), "region": String("APAC"), "lifetime_value": Number(56900.25)},
			{"id": Number(4), "company": String("Litware"), "contact": String("D. Okafor"), "region": String("EMEA"), "lifetime_value": Number(20480.00)},
		})

	store.Load("deals",
		[]Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "customer_id", Type: "int", Nullable: false},
			{Name: "title", Type: "varchar", Nullable: false},
			{Name: "stage", Type: "varchar", Nullable: false},
			{Name: "amount", Type: "decimal", Nullable: false},
			{Name: "closed", Type: "boolean", Nullable: false},
		},
		[]Row{
			{"id": Number(1), "customer_id": Number(2), "title": String("Contoso renewal FY24"), "stage": String("won"), "amount": Number(48000.00), "closed": Boolean(true)},
			{"id": Number(2), "customer_id": Number(1), "title": String("Northwind expansion"), "stage": String("negotiation"), "amount": Number(27500.00), "closed": Boolean(false)},
			{"id": Number(3), "customer_id": Number(3), "title": String("Fabrikam pilot"), "stage": String("qualification"), "amount": Number(9800.00), "closed": Boolean(false)},
			{"id": Number(4), "customer_id": Number(4), "title": String("Litware starter pack"), "stage": String("lost"), "amount": Number(5200.00), "closed": Boolean(true)},
			{"id": Number(5), "customer_id": Number(2), "title": String("Contoso add-on seats"), "stage": String("proposal"), "amount": Number(16400.00), "closed": Boolean(false)},
		})

	store.Load("invoices",
		[]Column{
			{Name: "id", Type: "int", Nullable: false},
			{Name: "deal_id", Type: "int", Nullable: false},
			{Name: "issued_at", Type: "timestamp", Nullable: false},
			{Name: "amount", Type: "decimal", Nullable: false},
			{Name: "paid", Type: "boolean", Nullable: false},
		},
		[]Row{
			{"id": Number(1), "deal_id": Number(1), "issued_at": String("2024-02-01 00:00:00"), "amount": Number(24000.00), "paid": Boolean(true)},
			{"id": Number(2), "deal_id": Number(1), "issued_at": String("2024-08-01 00:00:00"), "amount": Number(24000.00), "paid": Boolean(false)},
			{"id": Number(3), "deal_id": Number(4), "issued_at": String("2024-03-15 00:00:00"), "amount": Number(5200.00), "paid": Boolean(true)},
		})
}
