package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIDStable(t *testing.T) {
	m := NewManager(NewMemoryStore())

	first := m.ClientID()
	require.NotEmpty(t, first)
	assert.Equal(t, first, m.ClientID(), "the identifier must never change in one storage context")
}

func TestClientIDRegeneratedAfterStorageCleared(t *testing.T) {
	m := NewManager(NewMemoryStore())
	first := m.ClientID()

	cleared := NewManager(NewMemoryStore())
	second := cleared.ClientID()

	assert.NotEqual(t, first, second)
}

func TestClientIDSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")

	first := Open(path).ClientID()
	second := Open(path).ClientID()

	assert.Equal(t, first, second, "the identifier is durable across sessions")
}

func TestDisplayNamesAreScopedPerRoom(t *testing.T) {
	m := NewManager(NewMemoryStore())

	_, ok := m.RecallDisplayName("room-a")
	assert.False(t, ok)

	m.RememberDisplayName("room-a", "alice")
	m.RememberDisplayName("room-b", "al")

	nameA, ok := m.RecallDisplayName("room-a")
	require.True(t, ok)
	assert.Equal(t, "alice", nameA)

	nameB, ok := m.RecallDisplayName("room-b")
	require.True(t, ok)
	assert.Equal(t, "al", nameB)

	// Last write wins.
	m.RememberDisplayName("room-a", "alice2")
	nameA, _ = m.RecallDisplayName("room-a")
	assert.Equal(t, "alice2", nameA)
}

func TestOpenFallsBackToMemoryOnBadPath(t *testing.T) {
	// A file where the parent directory should be forces the file store
	// to fail; the manager degrades to ephemeral in-memory identity.
	base := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o600))

	m := Open(filepath.Join(base, "sub", "identity.json"))
	id := m.ClientID()
	require.NotEmpty(t, id)
	assert.Equal(t, id, m.ClientID(), "ephemeral identity still stable for the process")
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v"))

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok := reloaded.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestNewRoomIDIsOpaqueAndUnique(t *testing.T) {
	a, b := NewRoomID(), NewRoomID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
