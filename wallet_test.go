package spongewallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysponge/spongewallet-go/auth"
	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/models"
)

const (
	agentID    = "3f2b8c1e-5d4a-4c6b-9e7f-1a2b3c4d5e6f"
	newAgentID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

const walletsBody = `[
	{"id":"11111111-1111-4111-8111-111111111111","agentId":"` + agentID + `","chainId":8453,"chainName":"base","chainType":"evm","address":"0x742d35Cc6634C0532925a3b844Bc454e4438f44e","isActive":true,"createdAt":"2026-01-01T00:00:00Z"},
	{"id":"22222222-2222-4222-8222-222222222222","agentId":"` + agentID + `","chainId":101,"chainName":"solana","chainType":"solana","address":"7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV","isActive":true,"createdAt":"2026-01-01T00:00:00Z"}
]`

const agentBody = `{"id":"` + agentID + `","name":"Default Agent","description":null,"status":"active",
	"dailySpendingLimit":null,"weeklySpendingLimit":null,"monthlySpendingLimit":null,
	"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"}`

type seenRequest struct {
	Method string
	Path   string
	Auth   string
}

type fakeServer struct {
	*httptest.Server

	mu        sync.Mutex
	routes    map[string]func(w http.ResponseWriter, r *http.Request)
	requests  []seenRequest
	tokenPoll int
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{routes: map[string]func(http.ResponseWriter, *http.Request){}}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.requests = append(fs.requests, seenRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")})
		route, ok := fs.routes[r.Method+" "+r.URL.Path]
		fs.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not_found","message":"no route"}`))
			return
		}
		route(w, r)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) reply(route string, status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.routes[route] = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (fs *fakeServer) seen() []seenRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]seenRequest(nil), fs.requests...)
}

func (fs *fakeServer) count(method, path string) int {
	n := 0
	for _, req := range fs.seen() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

type memoryStore struct {
	mu    sync.Mutex
	creds *models.Credentials
	saved int
}

func (m *memoryStore) Load() *models.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds
}

func (m *memoryStore) Save(creds *models.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	m.saved++
	return nil
}

func (m *memoryStore) Path() string {
	return filepath.Join("/tmp", "spongewallet-test", "credentials.json")
}

type instantClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *instantClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *instantClock) Sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return nil
}

func testConfig(fs *fakeServer) *config.Config {
	cfg := config.NewConfig()
	cfg.BaseURL = fs.URL
	return cfg
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SPONGE_API_KEY", "SPONGE_AGENT_ID", "SPONGE_BASE_URL", "SPONGE_MASTER_KEY", "SPONGE_TESTNET"} {
		t.Setenv(key, "")
	}
}

func TestConnectWithExplicitKeyAndAgent(t *testing.T) {
	clearEnv(t)
	fs := newFakeServer(t)
	store := &memoryStore{}

	cfg := testConfig(fs)
	cfg.APIKey = "sponge_explicit"
	cfg.AgentID = agentID

	w, err := Connect(context.Background(), cfg, WithCredentialStore(store))
	require.NoError(t, err)
	assert.Equal(t, agentID, w.AgentID())
	assert.Empty(t, fs.seen())
	assert.Zero(t, store.saved)
}

func TestConnectEnvKeyTakesAgentFromMatchingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPONGE_API_KEY", "sponge_env")
	fs := newFakeServer(t)
	store := &memoryStore{creds: &models.Credentials{APIKey: "sponge_env", AgentID: agentID, CreatedAt: time.Now()}}

	w, err := Connect(context.Background(), testConfig(fs), WithCredentialStore(store))
	require.NoError(t, err)
	assert.Equal(t, agentID, w.AgentID())
	assert.Equal(t, "Bearer sponge_env", w.MCP().Headers["Authorization"])
	assert.Empty(t, fs.seen())
}

func TestConnectExplicitKeyBeatsEnvAndFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPONGE_API_KEY", "sponge_env")
	fs := newFakeServer(t)
	fs.reply("GET /api/agents/me", http.StatusOK, agentBody)
	store := &memoryStore{creds: &models.Credentials{APIKey: "sponge_file", AgentID: newAgentID, CreatedAt: time.Now()}}

	cfg := testConfig(fs)
	cfg.APIKey = "sponge_explicit"

	w, err := Connect(context.Background(), cfg, WithCredentialStore(store))
	require.NoError(t, err)

	// The stored agent belongs to another key, so the server is asked.
	assert.Equal(t, agentID, w.AgentID())
	reqs := fs.seen()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer sponge_explicit", reqs[0].Auth)
}

func TestConnectLooksUpAgentAndSavesCredentials(t *testing.T) {
	clearEnv(t)
	fs := newFakeServer(t)
	fs.reply("GET /api/agents/me", http.StatusOK, agentBody)
	store := &memoryStore{}

	cfg := testConfig(fs)
	cfg.APIKey = "sponge_explicit"
	cfg.Testnet = true

	w, err := Connect(context.Background(), cfg, WithCredentialStore(store))
	require.NoError(t, err)
	assert.Equal(t, agentID, w.AgentID())

	require.NotNil(t, store.creds)
	assert.Equal(t, "sponge_explicit", store.creds.APIKey)
	assert.Equal(t, agentID, store.creds.AgentID)
	assert.Equal(t, "Default Agent", store.creds.AgentName)
	assert.True(t, store.creds.Testnet)
	assert.Equal(t, fs.URL, store.creds.BaseURL)
}

func TestConnectInvalidKey(t *testing.T) {
	clearEnv(t)
	fs := newFakeServer(t)
	fs.reply("GET /api/agents/me", http.StatusUnauthorized, `{"error":"unauthorized","message":"Invalid API key"}`)

	cfg := testConfig(fs)
	cfg.APIKey = "sponge_revoked"

	_, err := Connect(context.Background(), cfg, WithCredentialStore(&memoryStore{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAgentLookup)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestConnectFallsBackToDeviceFlow(t *testing.T) {
	clearEnv(t)
	fs := newFakeServer(t)
	fs.reply("POST /api/oauth/device/authorization", http.StatusOK,
		`{"deviceCode":"dev-1","userCode":"ABCD-1234","verificationUri":"https://wallet.paysponge.com/device","expiresIn":600,"interval":5}`)
	fs.reply("POST /api/oauth/device/token", http.StatusOK,
		`{"accessToken":"at","tokenType":"Bearer","apiKey":"sponge_device","agentId":"`+agentID+`","keyType":"agent"}`)
	store := &memoryStore{}

	w, err := Connect(context.Background(), testConfig(fs),
		WithCredentialStore(store),
		WithDeviceFlowOptions(
			auth.WithClock(&instantClock{now: time.Now()}),
			auth.WithClipboard(auth.NoopClipboard{}),
			auth.WithBrowserOpener(auth.NoopBrowser{}),
		),
	)
	require.NoError(t, err)
	assert.Equal(t, agentID, w.AgentID())
	assert.Equal(t, "sponge_device", store.creds.APIKey)
	assert.Zero(t, fs.count(http.MethodGet, "/api/agents/me"))
	assert.Equal(t, "Bearer sponge_device", w.MCP().Headers["Authorization"])
}

func TestConnectRejectsBadConfig(t *testing.T) {
	clearEnv(t)
	cfg := config.NewConfig()
	cfg.AgentID = "agent-1"
	cfg.APIKey = "sponge_explicit"

	_, err := Connect(context.Background(), cfg, WithCredentialStore(&memoryStore{}))
	assert.Error(t, err)
}

func connectedWallet(t *testing.T, fs *fakeServer) *Wallet {
	t.Helper()
	clearEnv(t)
	cfg := testConfig(fs)
	cfg.APIKey = "sponge_explicit"
	cfg.AgentID = agentID

	w, err := Connect(context.Background(), cfg, WithCredentialStore(&memoryStore{}))
	require.NoError(t, err)
	return w
}

func TestAddressCache(t *testing.T) {
	fs := newFakeServer(t)
	fs.reply("GET /api/wallets", http.StatusOK, walletsBody)
	w := connectedWallet(t, fs)

	_, ok := w.Address(models.ChainBase)
	assert.False(t, ok)

	first, err := w.GetAddresses(context.Background())
	require.NoError(t, err)
	second, err := w.GetAddresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fs.count(http.MethodGet, "/api/wallets"))

	address, ok := w.Address(models.ChainSolana)
	assert.True(t, ok)
	assert.Equal(t, "7EcDhSYGxXyscszYEp35KHN8vvw3svAuLKTzXwCFLtV", address)

	address, err = w.GetAddress(context.Background(), models.ChainBase)
	require.NoError(t, err)
	assert.Equal(t, "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", address)
	assert.Equal(t, 1, fs.count(http.MethodGet, "/api/wallets"))

	first[models.ChainBase] = "tampered"
	address, _ = w.Address(models.ChainBase)
	assert.Equal(t, "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", address)
}

func TestGetAddressDoesNotCompleteCache(t *testing.T) {
	fs := newFakeServer(t)
	fs.reply("GET /api/wallets", http.StatusOK, walletsBody)
	w := connectedWallet(t, fs)

	_, err := w.GetAddress(context.Background(), models.ChainBase)
	require.NoError(t, err)

	all, err := w.GetAddresses(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, fs.count(http.MethodGet, "/api/wallets"))
}

func TestConcurrentGetAddresses(t *testing.T) {
	fs := newFakeServer(t)
	fs.reply("GET /api/wallets", http.StatusOK, walletsBody)
	w := connectedWallet(t, fs)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			addresses, err := w.GetAddresses(context.Background())
			assert.NoError(t, err)
			assert.Len(t, addresses, 2)
		}()
	}
	wg.Wait()
}

func TestGetBalance(t *testing.T) {
	fs := newFakeServer(t)
	fs.reply("GET /api/wallets", http.StatusOK, walletsBody)
	fs.reply("GET /api/wallets/11111111-1111-4111-8111-111111111111/balance", http.StatusOK,
		`{"walletId":"11111111-1111-4111-8111-111111111111","address":"0x742d35Cc6634C0532925a3b844Bc454e4438f44e","chainId":8453,"balance":"1000000000000000000","balanceFormatted":"1.0","symbol":"ETH"}`)
	w := connectedWallet(t, fs)

	balance, err := w.GetBalance(context.Background(), models.ChainBase)
	require.NoError(t, err)
	assert.Equal(t, models.Balance{"ETH": "1.0"}, balance)

	balance, err = w.GetBalance(context.Background(), models.ChainTempo)
	require.NoError(t, err)
	assert.Empty(t, balance)
}

func TestMCPConfig(t *testing.T) {
	fs := newFakeServer(t)
	w := connectedWallet(t, fs)

	mcp := w.MCP()
	assert.Equal(t, fs.URL+"/mcp", mcp.URL)
	assert.Equal(t, map[string]string{"Authorization": "Bearer sponge_explicit"}, mcp.Headers)

	raw, err := json.Marshal(NewMCPConfig("k", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://api.wallet.paysponge.com/mcp","headers":{"Authorization":"Bearer k"}}`, string(raw))
}

func TestToolsShareSession(t *testing.T) {
	fs := newFakeServer(t)
	fs.reply("GET /api/balances", http.StatusOK, `{}`)
	w := connectedWallet(t, fs)

	result := w.Tools().Execute(context.Background(), "get_balance", nil)
	require.True(t, result.OK(), result.Error)

	reqs := fs.seen()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer sponge_explicit", reqs[0].Auth)
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
