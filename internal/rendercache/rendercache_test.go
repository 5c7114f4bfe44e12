package rendercache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintChangesWithConfig(t *testing.T) {
	a := Fingerprint([]byte(`{"identifier":"/doc/acme"}`), "cfg-1")
	b := Fingerprint([]byte(`{"identifier":"/doc/acme"}`), "cfg-2")
	require.NotEqual(t, a, b)
	require.Equal(t, a, Fingerprint([]byte(`{"identifier":"/doc/acme"}`), "cfg-1"))
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := Open(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	fp := Fingerprint([]byte("content"), "cfg")
	require.False(t, cache.Unchanged("/doc/acme", fp))

	require.NoError(t, cache.Store("/doc/acme", fp))
	require.True(t, cache.Unchanged("/doc/acme", fp))

	updated := Fingerprint([]byte("content v2"), "cfg")
	require.False(t, cache.Unchanged("/doc/acme", updated))

	require.NoError(t, cache.Store("/doc/acme", updated))
	require.True(t, cache.Unchanged("/doc/acme", updated))
}
