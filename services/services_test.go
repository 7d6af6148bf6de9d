package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/config"
)

const (
	testAgentID  = "3f2b8c1e-5d4a-4c6b-9e7f-1a2b3c4d5e6f"
	testWalletID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	evmAddress   = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
	solAddress   = "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

// fakeAPI serves canned JSON per "METHOD /path" and records every request.
type fakeAPI struct {
	t         *testing.T
	mu        sync.Mutex
	responses map[string]string
	requests  []recordedRequest
}

func newFakeAPI(t *testing.T, responses map[string]string) (*fakeAPI, *client.APIClient) {
	t.Helper()
	api := &fakeAPI{t: t, responses: responses}
	server := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(server.Close)

	cfg := config.NewConfig()
	cfg.BaseURL = server.URL
	cfg.APIKey = "sponge_test_key"
	return api, client.NewAPIClient(cfg)
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
	for key := range r.URL.Query() {
		rec.Query[key] = r.URL.Query().Get(key)
	}
	if r.ContentLength > 0 {
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&rec.Body))
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	body, ok := f.responses[r.Method+" "+r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","message":"no route"}`))
		return
	}
	_, _ = w.Write([]byte(body))
}

func (f *fakeAPI) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func intPtr(v int) *int { return &v }
