package tabular

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// RESTProvider forwards every operation to a backing HTTP API and
// trusts its responses, validating returned rows against the returned
// schema at the decode boundary. It keeps no row data of its own.
type RESTProvider struct {
	baseURL string
	client  *http.Client
}

// NewRESTProvider builds a provider against the given base URL. A nil
// client falls back to http.DefaultClient, keeping whatever timeout
// the transport defaults to.
func NewRESTProvider(baseURL string, client *http.Client) *RESTProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *RESTProvider) Name() string {
	return "rest"
}

func (p *RESTProvider) Connect(ctx context.Context, params ConnectParams) error {
	var out struct {
		Connected bool `json:"connected"`
	}
	if err := p.do(ctx, http.MethodPost, "/connect", params, &out); err != nil {
		return err
	}
	if !out.Connected {
		return fmt.Errorf("upstream refused the connection")
	}
	slog.Debug("rest provider connected", "base", p.baseURL, "host", params.Host)
	return nil
}

func (p *RESTProvider) Close() error {
	return nil
}

func (p *RESTProvider) Tables(ctx context.Context, database string) ([]string, error) {
	path := "/tables"
	if database != "" {
		path += "?database=" + url.QueryEscape(database)
	}
	var tables []string
	if err := p.do(ctx, http.MethodGet, path, nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (p *RESTProvider) Schema(ctx context.Context, table string) ([]Column, error) {
	var columns []Column
	if err := p.do(ctx, http.MethodGet, "/schema/"+url.PathEscape(table), nil, &columns); err != nil {
		return nil, err
	}
	return columns, nil
}

func (p *RESTProvider) Query(ctx context.Context, table string, opts QueryOptions) (*QueryResult, error) {
	var result QueryResult
	if err := p.do(ctx, http.MethodPost, "/query/"+url.PathEscape(table), opts, &result); err != nil {
		return nil, err
	}
	for i, row := range result.Rows {
		if err := ValidateRow(result.Columns, row); err != nil {
			return nil, fmt.Errorf("upstream row %d is malformed: %w", i, err)
		}
	}
	return &result, nil
}

func (p *RESTProvider) Update(ctx context.Context, table, id string, partial Row) error {
	path := "/update/" + url.PathEscape(table) + "/" + url.PathEscape(id)
	var out struct {
		Updated bool `json:"updated"`
	}
	return p.do(ctx, http.MethodPut, path, partial, &out)
}

// do issues one request and decodes the response into out. A non-2xx
// response is surfaced as an UpstreamError carrying the message field
// of the JSON error body.
func (p *RESTProvider) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Message == "" {
		return "unexpected upstream response"
	}
	return payload.Message
}
