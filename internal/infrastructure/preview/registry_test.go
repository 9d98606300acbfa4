package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry()

	h := r.Register([]byte("payload"), "image/png")
	require.NotEmpty(t, h.Token())
	assert.True(t, strings.HasPrefix(h.URL(), "/previews/"))

	data, mime, ok := r.Resolve(h.Token())
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ReleaseRevokesExactlyOnce(t *testing.T) {
	r := NewRegistry()
	h := r.Register([]byte("payload"), "image/png")

	assert.True(t, h.Release(), "first release performs the revocation")
	assert.False(t, h.Release(), "second release is a no-op")
	assert.Equal(t, 0, r.Len())

	_, _, ok := r.Resolve(h.Token())
	assert.False(t, ok, "released token must not resolve")
}

func TestRegistry_ReleaseIsIndependentPerHandle(t *testing.T) {
	r := NewRegistry()
	a := r.Register([]byte("a"), "image/png")
	b := r.Register([]byte("b"), "image/jpeg")

	require.True(t, a.Release())

	data, _, ok := r.Resolve(b.Token())
	require.True(t, ok)
	assert.Equal(t, []byte("b"), data)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_DistinctTokens(t *testing.T) {
	r := NewRegistry()
	a := r.Register([]byte("a"), "image/png")
	b := r.Register([]byte("a"), "image/png")
	assert.NotEqual(t, a.Token(), b.Token())
}

func TestHandle_NilReleaseIsSafe(t *testing.T) {
	var h *Handle
	assert.False(t, h.Release())
}
