package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newMemory(t *testing.T, maxEntries int) *Memory {
	t.Helper()
	m, err := NewMemory(maxEntries)
	require.NoError(t, err)
	return m
}

func TestMemoryRoundTrip(t *testing.T) {
	m := newMemory(t, 8)
	require.NoError(t, m.Connect())
	defer m.Disconnect()

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.SetEx("a", time.Minute, []byte("one")))
	value, ok, err := m.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("one"), value)
}

func TestMemoryLastWriterWins(t *testing.T) {
	m := newMemory(t, 8)

	require.NoError(t, m.SetEx("a", time.Minute, []byte("first")))
	require.NoError(t, m.SetEx("a", time.Minute, []byte("second")))

	value, ok, _ := m.Get("a")
	require.True(t, ok)
	require.Equal(t, []byte("second"), value)
	require.Equal(t, 1, m.Len())
}

func TestMemoryExpiry(t *testing.T) {
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newMemory(t, 8)
	m.now = func() time.Time { return clock }

	require.NoError(t, m.SetEx("a", 30*time.Second, []byte("one")))

	_, ok, _ := m.Get("a")
	require.True(t, ok)

	clock = clock.Add(31 * time.Second)
	_, ok, _ = m.Get("a")
	require.False(t, ok, "expired entry should be a miss")
	require.Equal(t, 0, m.Len(), "expired entry should be evicted on read")
}

func TestMemoryBounded(t *testing.T) {
	m := newMemory(t, 2)

	require.NoError(t, m.SetEx("a", time.Minute, []byte("1")))
	require.NoError(t, m.SetEx("b", time.Minute, []byte("2")))
	require.NoError(t, m.SetEx("c", time.Minute, []byte("3")))

	require.Equal(t, 2, m.Len())
	_, ok, _ := m.Get("a")
	require.False(t, ok, "oldest entry should have been evicted")
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contexts.db")
	s := NewSQLite(path)
	require.NoError(t, s.Connect())
	defer s.Disconnect()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetEx("context:file:1:opts", time.Minute, []byte(`{"ok":true}`)))
	value, ok, err := s.Get("context:file:1:opts")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`{"ok":true}`), value)

	require.NoError(t, s.SetEx("context:file:1:opts", time.Minute, []byte(`{"ok":false}`)))
	value, ok, _ = s.Get("context:file:1:opts")
	require.True(t, ok)
	require.Equal(t, []byte(`{"ok":false}`), value)
}

func TestSQLiteExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contexts.db")
	s := NewSQLite(path)
	require.NoError(t, s.Connect())
	defer s.Disconnect()

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	require.NoError(t, s.SetEx("a", 30*time.Second, []byte("one")))
	_, ok, _ := s.Get("a")
	require.True(t, ok)

	clock = clock.Add(time.Minute)
	_, ok, err := s.Get("a")
	require.NoError(t, err)
	require.False(t, ok, "expired row should be a miss")
}

func TestSQLiteNotConnected(t *testing.T) {
	s := NewSQLite(filepath.Join(t.TempDir(), "contexts.db"))

	_, _, err := s.Get("a")
	require.Error(t, err)
	require.Error(t, s.SetEx("a", time.Minute, []byte("x")))
}
