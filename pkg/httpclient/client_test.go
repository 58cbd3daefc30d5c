package httpclient

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	cfg.RetryMaxDelay = 5 * time.Millisecond
	return cfg
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, DefaultUserAgentHeader, r.Header.Get(HeaderUserAgent))
		w.Write([]byte(`ok`))
	}))
	defer server.Close()

	client := New(fastConfig())
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)

	body, err := client.ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestClient_StaticHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get(HeaderAuthorization))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := fastConfig()
	cfg.Headers = http.Header{HeaderAuthorization: []string{"Bearer abc"}}
	resp, err := New(cfg).Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestClient_RetriesWithBody(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "payload", string(body))
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(fastConfig())
	resp, err := client.Put(context.Background(), server.URL, "text/plain", []byte("payload"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_MaxRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := fastConfig()
	cfg.RetryAttempts = 1
	_, err := New(cfg).Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMaxRetries))
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestClient_NonRetryableStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(fastConfig())
	resp, err := client.Get(context.Background(), server.URL+"/missing?token=secret")
	require.NoError(t, err)

	_, err = client.ReadBody(resp)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.NotContains(t, statusErr.Error(), "secret")
}

func TestClient_MaxResponseSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 64))
	}))
	defer server.Close()

	cfg := fastConfig()
	cfg.MaxResponseSize = 16
	client := New(cfg)
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)

	_, err = client.ReadBody(resp)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
}

func TestClient_Decompression(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		encode   func(io.Writer) io.WriteCloser
	}{
		{"gzip", EncodingGzip, func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }},
		{"brotli", EncodingBrotli, func(w io.Writer) io.WriteCloser { return brotli.NewWriter(w) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set(HeaderContentEncoding, tt.encoding)
				enc := tt.encode(w)
				enc.Write([]byte("body { color: red; }"))
				enc.Close()
			}))
			defer server.Close()

			client := New(fastConfig())
			resp, err := client.Get(context.Background(), server.URL)
			require.NoError(t, err)
			body, err := client.ReadBody(resp)
			require.NoError(t, err)
			assert.Equal(t, "body { color: red; }", string(body))
		})
	}
}

func TestClient_CircuitOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := fastConfig()
	cfg.RetryAttempts = 0
	cfg.CircuitThreshold = 2
	cfg.CircuitTimeout = time.Hour
	client := New(cfg)

	for i := 0; i < 2; i++ {
		_, err := client.Get(context.Background(), server.URL)
		require.Error(t, err)
	}
	assert.Equal(t, CircuitOpen, client.CircuitState())

	_, err := client.Get(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrCircuitOpen)

	client.ResetCircuit()
	assert.Equal(t, CircuitClosed, client.CircuitState())
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(1, 0, 1)
	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())

	// Zero timeout moves straight to half-open.
	assert.True(t, cb.Allow())
	assert.Equal(t, CircuitHalfOpen, cb.State())
	assert.False(t, cb.Allow())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
	assert.Equal(t, 0, cb.Failures())
}

func TestObfuscateURL(t *testing.T) {
	u, err := url.Parse("https://user:pw@halo.example.com/api?token=abc&page=1")
	require.NoError(t, err)

	out := obfuscateURL(u)
	assert.NotContains(t, out, "abc")
	assert.NotContains(t, out, "pw")
	assert.Contains(t, out, "page=1")
	assert.Equal(t, "", obfuscateURL(nil))
}
