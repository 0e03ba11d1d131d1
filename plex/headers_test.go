package plex

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeaderComposer(t *testing.T) {
	t.Run("explicit values", func(t *testing.T) {
		h := NewHeaderComposer("client-1", "Roulette", "2.0")
		assert.Equal(t, "client-1", h.ClientIdentifier)
		assert.Equal(t, "Roulette", h.Product)
		assert.Equal(t, "2.0", h.Version)
	})

	t.Run("defaults", func(t *testing.T) {
		h := NewHeaderComposer("", "", "")
		assert.Len(t, h.ClientIdentifier, 32)
		assert.NotContains(t, h.ClientIdentifier, "-")
		assert.Equal(t, defaultProduct, h.Product)
		assert.Equal(t, defaultVersion, h.Version)
	})

	t.Run("generated identifiers differ", func(t *testing.T) {
		a := NewHeaderComposer("", "", "")
		b := NewHeaderComposer("", "", "")
		assert.NotEqual(t, a.ClientIdentifier, b.ClientIdentifier)
	})
}

func TestHeaderComposerApply(t *testing.T) {
	h := NewHeaderComposer("client-1", "Roulette", "1")
	req := NewRequest("library/sections", "http://localhost:32400", http.MethodGet)

	h.Apply(req)
	first := req.Headers.Clone()
	firstContent := req.ContentHeaders.Clone()

	h.Apply(req)
	assert.Equal(t, first, req.Headers)
	assert.Equal(t, firstContent, req.ContentHeaders)

	expected := map[string]string{
		HeaderClientIdentifier: "client-1",
		HeaderProduct:          "Roulette",
		HeaderVersion:          "1",
		"Accept":               "application/json",
	}
	for key, value := range expected {
		require.Len(t, req.Headers.Values(key), 1, key)
		assert.Equal(t, value, req.Headers.Get(key), key)
	}
	require.Len(t, req.ContentHeaders.Values("Content-Type"), 1)
	assert.Equal(t, "application/json", req.ContentHeaders.Get("Content-Type"))
	assert.Empty(t, req.Headers.Get(HeaderToken))
}

func TestHeaderComposerApplyXML(t *testing.T) {
	h := NewHeaderComposer("client-1", "", "")
	req := NewRequest("https://plex.tv/pms/servers.xml", "", http.MethodGet)
	req.ContentType = ContentTypeXML

	h.Apply(req)

	assert.Equal(t, "application/xml", req.ContentHeaders.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Headers.Get("Accept"))
}

func TestHeaderComposerApplyWithToken(t *testing.T) {
	h := NewHeaderComposer("client-1", "Roulette", "1")
	req := NewRequest("library/sections", "http://localhost:32400", http.MethodGet)

	h.ApplyWithToken(req, "secret-token")

	assert.Equal(t, "secret-token", req.Headers.Get(HeaderToken))
	assert.Equal(t, "client-1", req.Headers.Get(HeaderClientIdentifier))
	assert.Equal(t, "Roulette", req.Headers.Get(HeaderProduct))
	assert.Equal(t, "1", req.Headers.Get(HeaderVersion))
	assert.Equal(t, "application/json", req.Headers.Get("Accept"))
	assert.Equal(t, "application/json", req.ContentHeaders.Get("Content-Type"))
}
