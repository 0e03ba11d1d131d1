package plex

import (
	"net/http"
	"net/url"
	"strings"
)

// ContentType selects the serialization used for a request body and for
// decoding its response.
type ContentType int

const (
	// ContentTypeJSON encodes and decodes with encoding/json
	ContentTypeJSON ContentType = iota
	// ContentTypeXML decodes with encoding/xml
	ContentTypeXML
)

// MIME returns the media type sent in the Content-Type header
func (ct ContentType) MIME() string {
	if ct == ContentTypeXML {
		return "application/xml"
	}
	return "application/json"
}

// String returns the string representation of a ContentType
func (ct ContentType) String() string {
	switch ct {
	case ContentTypeJSON:
		return "json"
	case ContentTypeXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Request describes a single outbound call before it is sent.
type Request struct {
	// Target is either an absolute URL or a path relative to Host.
	Target string
	// Host is the base URL used when Target is relative.
	Host   string
	Method string

	Headers        http.Header
	ContentHeaders http.Header

	// JSONBody is serialized as the request payload when non-nil.
	JSONBody any

	ContentType ContentType

	// OnBeforeDecode receives the raw response text before JSON decoding.
	// It observes the body only; the decoded bytes are the bytes read.
	OnBeforeDecode func(raw string)
}

// NewRequest creates a request descriptor expecting a JSON response
func NewRequest(target, host, method string) *Request {
	return &Request{
		Target:         target,
		Host:           host,
		Method:         method,
		Headers:        make(http.Header),
		ContentHeaders: make(http.Header),
		ContentType:    ContentTypeJSON,
	}
}

// AddHeader appends a header value; existing values for the key are kept
func (r *Request) AddHeader(key, value string) {
	r.Headers.Add(key, value)
}

// SetHeader replaces any existing values for the key
func (r *Request) SetHeader(key, value string) {
	r.Headers.Set(key, value)
}

// AddContentHeader appends a content header value
func (r *Request) AddContentHeader(key, value string) {
	r.ContentHeaders.Add(key, value)
}

// SetContentHeader replaces any existing content header values for the key
func (r *Request) SetContentHeader(key, value string) {
	r.ContentHeaders.Set(key, value)
}

// AddJSONBody attaches a value to be serialized as the JSON payload
func (r *Request) AddJSONBody(body any) {
	r.JSONBody = body
}

// FullURI resolves the final URI. An absolute Target is returned verbatim;
// otherwise Host and Target are joined with exactly one slash.
func (r *Request) FullURI() string {
	if isAbsoluteURL(r.Target) {
		return r.Target
	}

	host := strings.TrimRight(r.Host, "/")
	target := strings.TrimLeft(r.Target, "/")

	switch {
	case host == "":
		return target
	case target == "":
		return host
	}
	return host + "/" + target
}

func isAbsoluteURL(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
