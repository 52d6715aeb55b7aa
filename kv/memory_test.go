package kv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGetDel(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Set("k", "v", 0))

	got, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	key, err := m.Del("k")
	require.NoError(t, err)
	assert.Equal(t, "k", key)

	_, err = m.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = m.Del("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Set("k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := m.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
