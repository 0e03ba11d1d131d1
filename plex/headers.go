package plex

import (
	"strings"

	"github.com/google/uuid"
)

// Plex identification headers
const (
	HeaderClientIdentifier = "X-Plex-Client-Identifier"
	HeaderProduct          = "X-Plex-Product"
	HeaderVersion          = "X-Plex-Version"
	HeaderToken            = "X-Plex-Token"
)

const (
	defaultProduct = "PlexRoulette"
	defaultVersion = "1"
)

// HeaderComposer adds the headers every Plex call carries.
type HeaderComposer struct {
	ClientIdentifier string
	Product          string
	Version          string
}

// NewHeaderComposer creates a composer, filling empty values with defaults.
// An empty client identifier is replaced by a freshly generated one.
func NewHeaderComposer(clientIdentifier, product, version string) HeaderComposer {
	if clientIdentifier == "" {
		clientIdentifier = strings.ReplaceAll(uuid.New().String(), "-", "")
	}
	if product == "" {
		product = defaultProduct
	}
	if version == "" {
		version = defaultVersion
	}

	return HeaderComposer{
		ClientIdentifier: clientIdentifier,
		Product:          product,
		Version:          version,
	}
}

// Apply sets the identification, content-type and accept headers.
// Values are replaced, so applying twice leaves each header present once.
func (h HeaderComposer) Apply(req *Request) {
	req.SetHeader(HeaderClientIdentifier, h.ClientIdentifier)
	req.SetHeader(HeaderProduct, h.Product)
	req.SetHeader(HeaderVersion, h.Version)
	req.SetContentHeader("Content-Type", req.ContentType.MIME())
	req.SetHeader("Accept", "application/json")
}

// ApplyWithToken sets the auth token header and then the standard set
func (h HeaderComposer) ApplyWithToken(req *Request, token string) {
	req.SetHeader(HeaderToken, token)
	h.Apply(req)
}
