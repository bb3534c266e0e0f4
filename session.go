package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/neriyabudraham/mysql-connective/tabular"
)

// MemKVStore is an in-memory KVStore, used in tests and as a fallback
// when no session file is configured.
type MemKVStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemKVStore() *MemKVStore {
	return &MemKVStore{data: make(map[string][]byte)}
}

func (s *MemKVStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemKVStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemKVStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// FileKVStore persists all keys as one JSON blob on disk, read fully
// on each Get and rewritten fully on each Put. The volumes involved
// (a connection list per user) make this fine.
type FileKVStore struct {
	mu   sync.Mutex
	path string
}

func NewFileKVStore(path string) *FileKVStore {
	return &FileKVStore{path: path}
}

func (s *FileKVStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := blob[key]
	return value, ok, nil
}

func (s *FileKVStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.read()
	if err != nil {
		return err
	}
	blob[key] = append([]byte(nil), value...)
	return s.write(blob)
}

func (s *FileKVStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.read()
	if err != nil {
		return err
	}
	delete(blob, key)
	return s.write(blob)
}

func (s *FileKVStore) read() (map[string]json.RawMessage, error) {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	blob := map[string]json.RawMessage{}
	if err := json.Unmarshal(content, &blob); err != nil {
		// The store imposes no schema on what it reads; a corrupt file
		// is treated as empty rather than fatal.
		slog.Warn("unreadable session file, starting empty", "path", s.path, "error", err)
		return map[string]json.RawMessage{}, nil
	}
	return blob, nil
}

func (s *FileKVStore) write(blob map[string]json.RawMessage) error {
	encoded, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}
	if err := os.WriteFile(s.path, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// SavedConnection is one entry of a user's connection list.
type SavedConnection struct {
	ID     string                `json:"id"`
	Name   string                `json:"name"`
	Params tabular.ConnectParams `json:"params"`
}

type sessionBlob struct {
	Connections []SavedConnection `json:"connections"`
	ActiveID    string            `json:"activeId"`
}

// ConnectionBook keeps each user's saved connections and active
// connection id in an injected KVStore, keyed by user id.
type ConnectionBook struct {
	store KVStore
}

func NewConnectionBook(store KVStore) *ConnectionBook {
	return &ConnectionBook{store: store}
}

func (b *ConnectionBook) key(userID string) string {
	return "connections/" + userID
}

// Load returns the user's saved connections and active id. A missing
// or undecodable entry yields an empty book.
func (b *ConnectionBook) Load(userID string) ([]SavedConnection, string, error) {
	raw, ok, err := b.store.Get(b.key(userID))
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", nil
	}

	var blob sessionBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		slog.Warn("discarding undecodable connection blob", "user", userID, "error", err)
		return nil, "", nil
	}
	return blob.Connections, blob.ActiveID, nil
}

// Save replaces the user's connection list and active id.
func (b *ConnectionBook) Save(userID string, connections []SavedConnection, activeID string) error {
	encoded, err := json.Marshal(sessionBlob{Connections: connections, ActiveID: activeID})
	if err != nil {
		return fmt.Errorf("failed to encode connections: %w", err)
	}
	return b.store.Put(b.key(userID), encoded)
}

// Remember upserts one connection by id and marks it active.
func (b *ConnectionBook) Remember(userID string, conn SavedConnection) error {
	connections, _, err := b.Load(userID)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range connections {
		if existing.ID == conn.ID {
			connections[i] = conn
			replaced = true
			break
		}
	}
	if !replaced {
		connections = append(connections, conn)
	}

	return b.Save(userID, connections, conn.ID)
}

// Forget removes a connection by id; when it was the active one, the
// active id is cleared.
func (b *ConnectionBook) Forget(userID, connID string) error {
	connections, activeID, err := b.Load(userID)
	if err != nil {
		return err
	}

	kept := connections[:0]
	for _, conn := range connections {
		if conn.ID != connID {
			kept = append(kept, conn)
		}
	}
	if activeID == connID {
		activeID = ""
	}

	return b.Save(userID, kept, activeID)
}
