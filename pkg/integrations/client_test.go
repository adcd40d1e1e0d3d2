package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/addrscope/pkg/cache"
	"github.com/matzehuels/addrscope/pkg/observability"
)

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	client := NewClient(c, "test:", time.Hour, map[string]string{"X-Key": "k"})
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["X-Key"] != "k" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test:", time.Hour, nil)
	if _, ok := client.cache.(cache.NullCache); !ok {
		t.Errorf("nil cache should become NullCache, got %T", client.cache)
	}
}

func TestClientGet(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		gotHeader = r.Header.Get("X-Key")
		json.NewEncoder(w).Encode(map[string]string{"message": "hello"})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, map[string]string{"X-Key": "secret"})
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp["message"] != "hello" {
		t.Errorf("Get() message = %q, want hello", resp["message"])
	}
	if gotHeader != "secret" {
		t.Errorf("header = %q, want secret", gotHeader)
	}
}

func TestClientGetDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); err == nil {
		t.Error("Get() should fail on a non-JSON body")
	}
}

func TestClientGetNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	var resp map[string]string
	if err := client.Get(context.Background(), url, &resp); !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
}

func TestClientCached(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	client := NewClient(c, "test:", time.Hour, nil)

	type payload struct {
		Value string `json:"value"`
	}
	fetches := 0
	fetch := func(v *payload) func() error {
		return func() error {
			fetches++
			v.Value = "fetched"
			return nil
		}
	}

	var first payload
	if err := client.Cached(context.Background(), "k", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	var second payload
	if err := client.Cached(context.Background(), "k", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetches != 1 {
		t.Errorf("fetch count = %d, want 1", fetches)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want fetched", second.Value)
	}

	var third payload
	_ = client.Cached(context.Background(), "k", true, &third, fetch(&third))
	if fetches != 2 {
		t.Errorf("refresh should bypass the cache, fetch count = %d", fetches)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	client := NewClient(c, "test:", time.Hour, nil)

	var v string
	err := client.Cached(context.Background(), "k", false, &v, func() error { return ErrNotFound })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if _, hit, _ := c.Get(context.Background(), "test:k"); hit {
		t.Error("failed fetch should not be cached")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		wantErr  bool
		wantType error
	}{
		{"200 OK", 200, false, nil},
		{"204 No Content", 204, false, nil},
		{"404 Not Found", 404, true, ErrNotFound},
		{"429 Too Many Requests", 429, true, ErrNetwork},
		{"500 Internal Server Error", 500, true, ErrNetwork},
		{"403 Forbidden", 403, true, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
		})
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	requests  int
	responses []int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string, string) { h.requests++ }
func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _, _ string, code int, _ time.Duration) {
	h.responses = append(h.responses, code)
}

func TestClientReportsHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil)
	client.SetHTTPClient(server.Client())

	var v any
	_ = client.Get(context.Background(), server.URL+"/missing", &v)
	if hooks.requests != 1 || len(hooks.responses) != 1 || hooks.responses[0] != 404 {
		t.Errorf("hooks saw %d requests, responses %v", hooks.requests, hooks.responses)
	}
}
