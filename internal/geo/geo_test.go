package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "Chicago, IL", Location{City: "Chicago", Region: "IL"}.String())
	assert.Equal(t, "Toronto, CA", Location{City: "Toronto", Region: "CA"}.String())
	assert.Equal(t, Unknown, Location{}.String())
	assert.Equal(t, "Local, HOST", Local.String())
}

func TestStaticResolver_LoopbackShortCircuits(t *testing.T) {
	// Even a resolver configured to fail never looks up loopback.
	r := StaticResolver{Err: errors.New("database gone")}

	for _, ip := range []string{"127.0.0.1", "::1"} {
		loc, err := r.Locate(context.Background(), ip)
		require.NoError(t, err, ip)
		assert.Equal(t, Local, loc, ip)
	}
}

func TestStaticResolver_ReturnsConfiguredLocation(t *testing.T) {
	r := StaticResolver{Location: Location{City: "Springfield", Region: "IL"}}

	loc, err := r.Locate(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "Springfield, IL", loc.String())
}

func TestStaticResolver_FailureIsLookupError(t *testing.T) {
	r := StaticResolver{Err: errors.New("no such address")}

	_, err := r.Locate(context.Background(), "203.0.113.7")
	require.Error(t, err)
	assert.True(t, IsLookupError(err))
}

func TestIsLookupError_WrappedAndPlain(t *testing.T) {
	le := &LookupError{IP: "203.0.113.7", Err: errors.New("boom")}
	assert.True(t, IsLookupError(le))
	assert.True(t, IsLookupError(errors.Join(errors.New("outer"), le)))
	assert.False(t, IsLookupError(errors.New("plain")))
}
