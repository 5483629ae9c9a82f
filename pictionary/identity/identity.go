// Package identity persists the opaque per-client identifier and per-room
// display names, letting the authority recognize a returning participant
// across reconnects.
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const clientIDKey = "session_id"

// Store is a small durable key/value surface. Set is last-write-wins.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FileStore keeps all keys in one JSON document on disk.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// NewFileStore loads (or creates) the store at path.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create identity directory: %w", err)
	}
	s := &FileStore{path: path, data: map[string]string{}}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity file: %w", err)
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Set updates the in-memory map first, so a failed persist degrades to
// ephemeral storage for this process instead of losing the value.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal identity data: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}
	return nil
}

// MemoryStore is the ephemeral fallback used when durable storage is
// unavailable, and the storage of choice in tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Manager answers identity questions on top of a Store.
type Manager struct {
	store Store
}

// NewManager wraps an existing store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Open builds a manager over the file store at path. Storage failure
// degrades to an explicit in-memory store for this process; identity is
// then ephemeral but never silently lost mid-run.
func Open(path string) *Manager {
	s, err := NewFileStore(path)
	if err != nil {
		return &Manager{store: NewMemoryStore()}
	}
	return &Manager{store: s}
}

// DefaultPath returns the conventional identity file location under the
// user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pictionary", "identity.json"), nil
}

// ClientID returns the durable opaque client identifier, generating and
// persisting one on first use. It never returns two different values
// within one store lifetime; a failed persist keeps the generated value
// for this process.
func (m *Manager) ClientID() string {
	if v, ok := m.store.Get(clientIDKey); ok && v != "" {
		return v
	}
	id := uuid.NewString()
	_ = m.store.Set(clientIDKey, id)
	return id
}

// RememberDisplayName stores the name used in a room; last write wins.
func (m *Manager) RememberDisplayName(roomID, name string) {
	_ = m.store.Set(nameKey(roomID), name)
}

// RecallDisplayName returns the name last used in a room, if any.
func (m *Manager) RecallDisplayName(roomID string) (string, bool) {
	v, ok := m.store.Get(nameKey(roomID))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// NewRoomID generates an opaque room token for starting a new game.
func NewRoomID() string {
	return uuid.NewString()
}

func nameKey(roomID string) string {
	return "name-" + roomID
}
