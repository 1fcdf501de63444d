package geo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMaxMind_MissingFile(t *testing.T) {
	_, err := OpenMaxMind(filepath.Join(t.TempDir(), "missing.mmdb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open geolite2 database")
}

func TestOpenMaxMind_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mmdb")
	require.NoError(t, os.WriteFile(path, []byte("not a geolite2 database"), 0o644))

	_, err := OpenMaxMind(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open geolite2 database")
}

func TestMaxMindResolver_LoopbackSkipsDatabase(t *testing.T) {
	// Loopback short-circuits before the reader is consulted, so a
	// resolver without one still answers for local addresses.
	r := &MaxMindResolver{}

	for _, ip := range []string{"127.0.0.1", "::1"} {
		loc, err := r.Locate(context.Background(), ip)
		require.NoError(t, err)
		assert.Equal(t, Local, loc)
	}
}

func TestMaxMindResolver_UnparseableAddress(t *testing.T) {
	r := &MaxMindResolver{}

	_, err := r.Locate(context.Background(), "not-an-address")
	require.Error(t, err)
	assert.True(t, IsLookupError(err))
}

func TestMaxMindResolver_CancelledContext(t *testing.T) {
	r := &MaxMindResolver{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Locate(ctx, "203.0.113.7")
	require.Error(t, err)
	assert.True(t, IsLookupError(err))
}
