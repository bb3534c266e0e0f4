package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

// APIServer exposes the data service over the wire shape the rest
// provider consumes, so a served instance can back another one.
type APIServer struct {
	service         DataService
	book            *ConnectionBook
	userID          string
	defaultPageSize int
}

func NewAPIServer(service DataService, book *ConnectionBook, userID string, defaultPageSize int) *APIServer {
	return &APIServer{
		service:         service,
		book:            book,
		userID:          userID,
		defaultPageSize: defaultPageSize,
	}
}

// Handler builds the route table.
func (s *APIServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /connect", s.handleConnect)
	mux.HandleFunc("POST /disconnect", s.handleDisconnect)
	mux.HandleFunc("GET /tables", s.handleTables)
	mux.HandleFunc("GET /schema/{table}", s.handleSchema)
	mux.HandleFunc("POST /query/{table}", s.handleQuery)
	mux.HandleFunc("PUT /update/{table}/{id}", s.handleUpdate)
	return mux
}

// ListenAndServe blocks serving the API on addr.
func (s *APIServer) ListenAndServe(addr string) error {
	slog.Info("serving http api", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *APIServer) handleConnect(w http.ResponseWriter, r *http.Request) {
	var params tabular.ConnectParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := s.service.Connect(r.Context(), params); err != nil {
		writeServiceError(w, err)
		return
	}

	if s.book != nil {
		saved := SavedConnection{
			ID:     uuid.NewString(),
			Name:   fmt.Sprintf("%s/%s", params.Host, params.Database),
			Params: params,
		}
		if err := s.book.Remember(s.userID, saved); err != nil {
			slog.Error("failed to persist connection", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"connected": true})
}

func (s *APIServer) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Disconnect(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"connected": false})
}

func (s *APIServer) handleTables(w http.ResponseWriter, r *http.Request) {
	tables, err := s.service.Tables(r.Context(), r.URL.Query().Get("database"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if tables == nil {
		tables = []string{}
	}
	writeJSON(w, http.StatusOK, tables)
}

func (s *APIServer) handleSchema(w http.ResponseWriter, r *http.Request) {
	columns, err := s.service.Schema(r.Context(), r.PathValue("table"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, columns)
}

func (s *APIServer) handleQuery(w http.ResponseWriter, r *http.Request) {
	var opts tabular.QueryOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid query options: %w", err))
		return
	}
	if opts.PageSize == 0 {
		opts.PageSize = s.defaultPageSize
	}

	result, err := s.service.Query(r.Context(), r.PathValue("table"), opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *APIServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var partial tabular.Row
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid row data: %w", err))
		return
	}

	err := s.service.Update(r.Context(), r.PathValue("table"), r.PathValue("id"), partial)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

// writeServiceError maps the error taxonomy onto status codes:
// validation 400, not-connected 409, not-found 404, upstream 502,
// anything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var upstream *tabular.UpstreamError
	switch {
	case errors.Is(err, ErrValidation):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ErrNotConnected):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, tabular.ErrTableNotFound), errors.Is(err, tabular.ErrRowNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &upstream):
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	slog.Debug("request failed", "status", status, "error", err)
	writeJSON(w, status, map[string]string{"message": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
