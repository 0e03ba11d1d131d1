package plex

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionalFields struct {
	Title string  `json:"title"`
	Year  int     `json:"year"`
	Extra *string `json:"extra"`
	Tags  []Tag   `json:"tags"`
}

type library struct {
	XMLName xml.Name `xml:"Library"`
	Name    string   `xml:"name,attr"`
	Items   []struct {
		Title string `xml:"title,attr"`
	} `xml:"Item"`
}

type noRoot struct {
	Name string `xml:"name,attr"`
}

type untaggedRoot struct {
	XMLName xml.Name
	Name    string `xml:"name,attr"`
}

func newTestTransport() *Transport {
	return NewTransport(http.DefaultClient, DefaultJSONConfig(), zerolog.Nop())
}

func stubServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJSONDecoderToleratesNull(t *testing.T) {
	dec := jsonDecoder{cfg: DefaultJSONConfig()}

	t.Run("explicit nulls", func(t *testing.T) {
		var out optionalFields
		err := dec.decode([]byte(`{"title":null,"year":null,"extra":null,"tags":null}`), &out)
		require.NoError(t, err)
		assert.Equal(t, optionalFields{}, out)
	})

	t.Run("encode then decode keeps unset field at default", func(t *testing.T) {
		data, err := json.Marshal(optionalFields{Title: "Heat", Year: 1995})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"extra":null`)

		var out optionalFields
		require.NoError(t, dec.decode(data, &out))
		assert.Equal(t, "Heat", out.Title)
		assert.Equal(t, 1995, out.Year)
		assert.Nil(t, out.Extra)
	})
}

func TestJSONDecoderConfig(t *testing.T) {
	data := []byte(`{"title":"Heat","unknown":1}`)

	var lenient optionalFields
	require.NoError(t, jsonDecoder{cfg: DefaultJSONConfig()}.decode(data, &lenient))
	assert.Equal(t, "Heat", lenient.Title)

	var strict optionalFields
	err := jsonDecoder{cfg: JSONConfig{DisallowUnknownFields: true}}.decode(data, &strict)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")

	var generic map[string]any
	require.NoError(t, jsonDecoder{cfg: JSONConfig{UseNumber: true}}.decode([]byte(`{"n":12}`), &generic))
	assert.Equal(t, json.Number("12"), generic["n"])
}

func TestXMLDecoder(t *testing.T) {
	dec := xmlDecoder{}

	t.Run("maps tags and attributes", func(t *testing.T) {
		var out library
		err := dec.decode([]byte(`<Library name="Movies"><Item title="Heat"/><Item title="Ronin"/></Library>`), &out)
		require.NoError(t, err)
		assert.Equal(t, "Movies", out.Name)
		require.Len(t, out.Items, 2)
		assert.Equal(t, "Ronin", out.Items[1].Title)
	})

	t.Run("mismatched root fails", func(t *testing.T) {
		var out library
		err := dec.decode([]byte(`<Server name="Movies"/>`), &out)
		require.Error(t, err)
	})

	t.Run("result without root element fails", func(t *testing.T) {
		var out noRoot
		err := dec.decode([]byte(`<Anything name="x"/>`), &out)
		require.ErrorIs(t, err, errNoRootElement)
	})

	t.Run("result with unnamed root element fails", func(t *testing.T) {
		var out untaggedRoot
		err := dec.decode([]byte(`<Anything name="x"/>`), &out)
		require.ErrorIs(t, err, errNoRootElement)
		assert.Empty(t, out.Name)
	})
}

func TestDecoderFor(t *testing.T) {
	dec, err := decoderFor(ContentTypeJSON, DefaultJSONConfig())
	require.NoError(t, err)
	assert.IsType(t, jsonDecoder{}, dec)

	dec, err = decoderFor(ContentTypeXML, DefaultJSONConfig())
	require.NoError(t, err)
	assert.IsType(t, xmlDecoder{}, dec)

	_, err = decoderFor(ContentType(7), DefaultJSONConfig())
	require.Error(t, err)
}

func TestExecuteJSON(t *testing.T) {
	server := stubServer(t, http.StatusOK, `{"title":"Heat","year":1995,"extra":null}`)

	out, err := Execute[optionalFields](context.Background(), newTestTransport(), NewRequest("movie", server.URL, http.MethodGet))
	require.NoError(t, err)
	assert.Equal(t, "Heat", out.Title)
	assert.Equal(t, 1995, out.Year)
	assert.Nil(t, out.Extra)
}

func TestExecuteSendsHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/sign_in.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, []string{"a", "b"}, r.Header.Values("X-Custom"))
		assert.Equal(t, "en", r.Header.Get("Content-Language"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"user":{"login":"u","password":"p"}}`, string(body))

		_, _ = w.Write([]byte(`{"authToken":"abc123"}`))
	}))
	defer server.Close()

	req := NewRequest(server.URL+"/users/sign_in.json", "http://unused.invalid", http.MethodPost)
	req.AddHeader("X-Custom", "a")
	req.AddHeader("X-Custom", "b")
	req.AddContentHeader("Content-Language", "en")
	req.AddJSONBody(signInRequest{User: userRequest{Login: "u", Password: "p"}})

	auth, err := Execute[Authentication](context.Background(), newTestTransport(), req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", auth.Token())
}

func TestExecuteXML(t *testing.T) {
	server := stubServer(t, http.StatusOK, `<?xml version="1.0" encoding="UTF-8"?><Library name="Movies"><Item title="Heat"/></Library>`)

	req := NewRequest("library", server.URL, http.MethodGet)
	req.ContentType = ContentTypeXML

	out, err := Execute[library](context.Background(), newTestTransport(), req)
	require.NoError(t, err)
	assert.Equal(t, "Movies", out.Name)
	require.Len(t, out.Items, 1)
}

func TestExecuteXMLShapeMismatch(t *testing.T) {
	server := stubServer(t, http.StatusOK, `<MediaContainer size="0"></MediaContainer>`)

	req := NewRequest("library", server.URL, http.MethodGet)
	req.ContentType = ContentTypeXML

	_, err := Execute[library](context.Background(), newTestTransport(), req)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, ContentTypeXML, decodeErr.ContentType)
	assert.Contains(t, decodeErr.Body, "MediaContainer")
}

func TestExecuteMalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "truncated object", body: `{not valid`},
		{name: "trailing text", body: `{"authToken":"abc123"} this is not json`},
		{name: "second value", body: `{"authToken":"abc123"}{"authToken":"def456"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := stubServer(t, http.StatusOK, tt.body)

			auth, err := Execute[Authentication](context.Background(), newTestTransport(), NewRequest("users/sign_in.json", server.URL, http.MethodGet))
			require.Error(t, err)
			assert.Empty(t, auth.Token())

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.body, decodeErr.Body)

			var transportErr *TransportError
			assert.False(t, errors.As(err, &transportErr))
		})
	}
}

func TestJSONDecoderAllowsTrailingWhitespace(t *testing.T) {
	var out optionalFields
	err := jsonDecoder{}.decode([]byte("{\"title\":\"Heat\"}\n  "), &out)
	require.NoError(t, err)
	assert.Equal(t, "Heat", out.Title)
}

func TestExecuteConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	host := server.URL
	server.Close()

	hookCalled := false
	req := NewRequest("library/sections", host, http.MethodGet)
	req.OnBeforeDecode = func(string) { hookCalled = true }

	_, err := Execute[Container](context.Background(), newTestTransport(), req)
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, 0, transportErr.StatusCode)
	assert.Equal(t, host+"/library/sections", transportErr.URL)
	assert.False(t, hookCalled, "decode must not be attempted")

	var decodeErr *DecodeError
	assert.False(t, errors.As(err, &decodeErr))
}

func TestExecuteNonSuccessStatus(t *testing.T) {
	server := stubServer(t, http.StatusUnauthorized, `<html>401 Unauthorized</html>`)

	hookCalled := false
	req := NewRequest("library/sections", server.URL, http.MethodGet)
	req.OnBeforeDecode = func(string) { hookCalled = true }

	_, err := Execute[Container](context.Background(), newTestTransport(), req)
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Contains(t, apiErr.Body, "401 Unauthorized")
	assert.False(t, hookCalled)
}

func TestExecuteCancelledContext(t *testing.T) {
	server := stubServer(t, http.StatusOK, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Execute[Container](ctx, newTestTransport(), NewRequest("library/sections", server.URL, http.MethodGet))
	require.Error(t, err)

	var cancelledErr *CancelledError
	require.ErrorAs(t, err, &cancelledErr)
	assert.ErrorIs(t, err, context.Canceled)

	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr))
}

func TestExecuteBeforeDecodeHook(t *testing.T) {
	server := stubServer(t, http.StatusOK, `{"title":"Heat"}`)

	var seen string
	req := NewRequest("movie", server.URL, http.MethodGet)
	req.OnBeforeDecode = func(raw string) { seen = raw }

	out, err := Execute[optionalFields](context.Background(), newTestTransport(), req)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Heat"}`, seen)
	assert.Equal(t, "Heat", out.Title)
}

func TestFetchReturnsRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer server.Close()

	raw, err := newTestTransport().Fetch(context.Background(), NewRequest("thumb", server.URL, http.MethodGet))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.Equal(t, "image/jpeg", raw.ContentType)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, raw.Body)
}

func TestErrorMessages(t *testing.T) {
	transportErr := &TransportError{Method: "GET", URL: "http://h/x", Err: errors.New("refused")}
	assert.Equal(t, "plex transport error: GET http://h/x: refused", transportErr.Error())

	apiErr := &APIError{StatusCode: 404}
	assert.Equal(t, "plex API error: status 404: Not Found", apiErr.Error())
	assert.True(t, apiErr.IsNotFound())
	assert.False(t, apiErr.IsUnauthorized())

	for _, code := range []int{401, 403} {
		assert.True(t, (&APIError{StatusCode: code}).IsUnauthorized())
	}

	assert.Len(t, truncateBody(make([]byte, maxErrorBody+10)), maxErrorBody)
}
