package plex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPDoer abstracts http.Client.Do for testing
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Transport sends Requests and decodes their responses.
type Transport struct {
	httpClient HTTPDoer
	jsonConfig JSONConfig
	logger     zerolog.Logger
}

// RawResponse is an undecoded response body
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// NewTransport creates a transport over the given HTTP backend
func NewTransport(httpClient HTTPDoer, jsonConfig JSONConfig, logger zerolog.Logger) *Transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Transport{
		httpClient: httpClient,
		jsonConfig: jsonConfig,
		logger:     logger,
	}
}

// Fetch sends the request and returns the raw body. A non-2xx status is
// reported as a *TransportError wrapping an *APIError.
func (t *Transport) Fetch(ctx context.Context, req *Request) (*RawResponse, error) {
	uri := req.FullURI()

	var body io.Reader
	if req.JSONBody != nil {
		data, err := json.Marshal(req.JSONBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, uri, body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: uri, Err: err}
	}

	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	for key, values := range req.ContentHeaders {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &CancelledError{Err: ctxErr}
		}
		return nil, &TransportError{Method: req.Method, URL: uri, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &CancelledError{Err: ctxErr}
		}
		return nil, &TransportError{Method: req.Method, URL: uri, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	t.logger.Debug().
		Str("method", req.Method).
		Str("url", uri).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("Plex API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Method:     req.Method,
			URL:        uri,
			StatusCode: resp.StatusCode,
			Err:        &APIError{StatusCode: resp.StatusCode, Body: truncateBody(data)},
		}
	}

	return &RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Execute sends the request and decodes the body into T using the decoder
// selected by the request's content type.
func Execute[T any](ctx context.Context, t *Transport, req *Request) (T, error) {
	var result T

	dec, err := decoderFor(req.ContentType, t.jsonConfig)
	if err != nil {
		return result, err
	}

	raw, err := t.Fetch(ctx, req)
	if err != nil {
		return result, err
	}

	if req.ContentType == ContentTypeJSON && req.OnBeforeDecode != nil {
		req.OnBeforeDecode(string(raw.Body))
	}

	if err := dec.decode(raw.Body, &result); err != nil {
		var zero T
		return zero, &DecodeError{
			ContentType: req.ContentType,
			Body:        truncateBody(raw.Body),
			Err:         err,
		}
	}

	return result, nil
}
