package spongewallet

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysponge/spongewallet-go/auth"
	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/models"
)

func TestNewAdminRequiresKey(t *testing.T) {
	_, err := NewAdmin(config.NewConfig())
	assert.Error(t, err)
}

func TestAdminCreateWallet(t *testing.T) {
	clearEnv(t)
	fs := newFakeServer(t)
	fs.reply("POST /api/agents", http.StatusOK, `{"agent":{"id":"`+newAgentID+`","name":"bot","description":null,"status":"active",
		"dailySpendingLimit":null,"weeklySpendingLimit":null,"monthlySpendingLimit":null,
		"createdAt":"2026-01-01T00:00:00Z","updatedAt":"2026-01-01T00:00:00Z"},"mcpApiKey":"sponge_new_agent"}`)
	fs.reply("GET /api/wallets", http.StatusOK, `[]`)

	cfg := testConfig(fs)
	cfg.APIKey = "sponge_master"
	admin, err := NewAdmin(cfg)
	require.NoError(t, err)

	w, err := admin.CreateWallet(context.Background(), models.CreateAgentRequest{Name: "bot"})
	require.NoError(t, err)
	assert.Equal(t, newAgentID, w.AgentID())

	_, err = w.GetAddresses(context.Background())
	require.NoError(t, err)

	reqs := fs.seen()
	require.Len(t, reqs, 2)
	assert.Equal(t, "Bearer sponge_master", reqs[0].Auth)
	assert.Equal(t, "Bearer sponge_new_agent", reqs[1].Auth)
}

func TestAdminListAndDelete(t *testing.T) {
	clearEnv(t)
	fs := newFakeServer(t)
	fs.reply("GET /api/agents", http.StatusOK, `[`+agentBody+`]`)
	fs.reply("DELETE /api/agents/"+agentID, http.StatusNoContent, ``)

	cfg := testConfig(fs)
	cfg.APIKey = "sponge_master"
	admin, err := NewAdmin(cfg)
	require.NoError(t, err)

	agents, err := admin.ListAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, agentID, agents[0].ID)

	require.NoError(t, admin.DeleteAgent(context.Background(), agentID))
}

func TestConnectAdminIgnoresAgentKeyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPONGE_API_KEY", "sponge_agent")
	t.Setenv(MasterKeyEnv, "sponge_master")
	fs := newFakeServer(t)
	fs.reply("GET /api/agents", http.StatusOK, `[]`)

	admin, err := ConnectAdmin(context.Background(), testConfig(fs))
	require.NoError(t, err)

	_, err = admin.ListAgents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer sponge_master", fs.seen()[0].Auth)
}

func TestConnectAdminDeviceFlowRequestsMasterKey(t *testing.T) {
	clearEnv(t)
	fs := newFakeServer(t)
	fs.mu.Lock()
	fs.routes["POST /api/oauth/device/authorization"] = func(w http.ResponseWriter, r *http.Request) {
		var req models.DeviceCodeRequest
		if err := decodeJSON(r, &req); err != nil || req.KeyType != models.KeyTypeMaster {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_request","message":"expected master key type"}`))
			return
		}
		_, _ = w.Write([]byte(`{"deviceCode":"dev-1","userCode":"ABCD-1234","verificationUri":"https://wallet.paysponge.com/device","expiresIn":600,"interval":5}`))
	}
	fs.mu.Unlock()
	fs.reply("POST /api/oauth/device/token", http.StatusOK, `{"accessToken":"at","tokenType":"Bearer","apiKey":"sponge_master","keyType":"master"}`)
	fs.reply("GET /api/agents", http.StatusOK, `[]`)

	admin, err := ConnectAdmin(context.Background(), testConfig(fs),
		WithDeviceFlowOptions(
			auth.WithClock(&instantClock{now: time.Now()}),
			auth.WithClipboard(auth.NoopClipboard{}),
			auth.WithBrowserOpener(auth.NoopBrowser{}),
		),
	)
	require.NoError(t, err)

	_, err = admin.ListAgents(context.Background())
	require.NoError(t, err)
	reqs := fs.seen()
	assert.Equal(t, "Bearer sponge_master", reqs[len(reqs)-1].Auth)
}
