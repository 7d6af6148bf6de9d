package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/config"
)

const testAgentID = "3f2b8c1e-5d4a-4c6b-9e7f-1a2b3c4d5e6f"

type call struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]interface{}
}

type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) all() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func newTestExecutor(t *testing.T, responses map[string]string) (*Executor, *recorder) {
	t.Helper()
	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
		for key := range r.URL.Query() {
			c.Query[key] = r.URL.Query().Get(key)
		}
		if r.ContentLength > 0 {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&c.Body))
		}
		rec.mu.Lock()
		rec.calls = append(rec.calls, c)
		rec.mu.Unlock()

		body, ok := responses[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not_found","message":"no route"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	cfg := config.NewConfig()
	cfg.BaseURL = server.URL
	cfg.APIKey = "sponge_test_key"
	return NewExecutor(client.NewAPIClient(cfg), testAgentID), rec
}

func TestExecuteUnknownTool(t *testing.T) {
	exec, rec := newTestExecutor(t, nil)

	result := exec.Execute(context.Background(), "mint_money", nil)
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "Unknown tool: mint_money", result.Error)
	assert.Nil(t, result.Data)
	assert.Empty(t, rec.all())
}

func TestExecuteStatusRequiresChainWithoutNetwork(t *testing.T) {
	exec, rec := newTestExecutor(t, nil)

	result := exec.Execute(context.Background(), "get_transaction_status", map[string]interface{}{"txHash": "0xabc"})
	assert.False(t, result.OK())
	assert.Contains(t, result.Error, "chain is required")

	result = exec.Execute(context.Background(), "get_transaction_status", map[string]interface{}{"chain": "base"})
	assert.Contains(t, result.Error, "txHash is required")

	assert.Empty(t, rec.all())
}

func TestExecuteStatusAcceptsTransactionHashAlias(t *testing.T) {
	exec, rec := newTestExecutor(t, map[string]string{
		"GET /api/transactions/status/0xabc": `{"transactionHash":"0xabc","status":"confirmed","blockNumber":19000000,"confirmations":12,"gasUsed":"21000","effectiveGasPrice":"1500000000"}`,
	})

	result := exec.Execute(context.Background(), "get_transaction_status", `{"transaction_hash":"0xabc","chain":"base"}`)
	require.True(t, result.OK(), result.Error)
	assert.JSONEq(t, `{"transactionHash":"0xabc","status":"confirmed","blockNumber":19000000,"confirmations":12,"gasUsed":"21000","effectiveGasPrice":"1500000000"}`, string(result.Data))
	assert.Equal(t, "base", rec.all()[0].Query["chain"])
}

func TestExecuteGetBalanceParams(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  map[string]string
	}{
		{"nil input", nil, map[string]string{"chain": "all"}},
		{"array of chains", map[string]interface{}{"allowedChains": []interface{}{"base", "solana"}, "onlyUsdc": true}, map[string]string{"chain": "all", "allowedChains": "base,solana", "onlyUsdc": "true"}},
		{"joined chains", json.RawMessage(`{"chain":"base","allowedChains":"base,tempo"}`), map[string]string{"chain": "base", "allowedChains": "base,tempo"}},
		{"usdc off", map[string]interface{}{"onlyUsdc": false}, map[string]string{"chain": "all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, rec := newTestExecutor(t, map[string]string{"GET /api/balances": `{}`})

			result := exec.Execute(context.Background(), "get_balance", tt.input)
			require.True(t, result.OK(), result.Error)
			assert.JSONEq(t, `{}`, string(result.Data))

			calls := rec.all()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.want, calls[0].Query)
		})
	}
}

func TestExecuteClaimSignupBonus(t *testing.T) {
	exec, rec := newTestExecutor(t, map[string]string{
		"POST /api/signup-bonus/claim": `{"success":true,"message":"claimed","amount":"1","currency":"USDC","chain":"base"}`,
	})

	result := exec.Execute(context.Background(), "claim_signup_bonus", map[string]interface{}{})
	require.True(t, result.OK(), result.Error)

	calls := rec.all()
	require.Len(t, calls, 1)
	assert.Equal(t, "POST", calls[0].Method)
	assert.Equal(t, map[string]interface{}{}, calls[0].Body)
}

func TestExecuteStoreKey(t *testing.T) {
	exec, rec := newTestExecutor(t, map[string]string{"POST /api/agent-keys": `{"success":true}`})

	result := exec.Execute(context.Background(), "store_key", map[string]interface{}{
		"service":  "openai",
		"key":      "sk-test",
		"label":    "primary",
		"metadata": map[string]interface{}{"team": "research"},
	})
	require.True(t, result.OK(), result.Error)
	assert.JSONEq(t, `{"success":true}`, string(result.Data))

	assert.Equal(t, map[string]interface{}{
		"service":  "openai",
		"key":      "sk-test",
		"label":    "primary",
		"metadata": map[string]interface{}{"team": "research"},
	}, rec.all()[0].Body)
}

func TestExecuteKeyLookups(t *testing.T) {
	exec, rec := newTestExecutor(t, map[string]string{
		"GET /api/agent-keys":       `{"keys":[]}`,
		"GET /api/agent-keys/value": `{"service":"openai","key":"sk-test"}`,
	})

	require.True(t, exec.Execute(context.Background(), "get_key_list", nil).OK())
	result := exec.Execute(context.Background(), "get_key_value", map[string]interface{}{"service": "openai"})
	require.True(t, result.OK(), result.Error)

	calls := rec.all()
	require.Len(t, calls, 2)
	assert.Equal(t, "/api/agent-keys", calls[0].Path)
	assert.Equal(t, "/api/agent-keys/value", calls[1].Path)
	assert.Equal(t, map[string]string{"service": "openai"}, calls[1].Query)
}

func TestExecuteSwapAliasesAndNumbers(t *testing.T) {
	exec, rec := newTestExecutor(t, map[string]string{
		"POST /api/transactions/swap": `{"signature":"5sig","inputToken":"SOL","outputToken":"USDC","inputAmount":"1","outputAmount":"150"}`,
	})

	result := exec.Execute(context.Background(), "solana_swap", map[string]interface{}{
		"chain":        "solana",
		"input_token":  "SOL",
		"output_token": "USDC",
		"amount":       1.5,
		"slippage_bps": "100",
	})
	require.True(t, result.OK(), result.Error)

	assert.Equal(t, map[string]interface{}{
		"chain":       "solana",
		"inputToken":  "SOL",
		"outputToken": "USDC",
		"amount":      "1.5",
		"slippageBps": float64(100),
	}, rec.all()[0].Body)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Data, &data))
	assert.Equal(t, "5sig", data["signature"])
	assert.Equal(t, "1", data["inputAmount"])
	assert.Equal(t, "150", data["outputAmount"])
}

func TestExecuteSwapRejectsOverflowingSlippage(t *testing.T) {
	exec, rec := newTestExecutor(t, map[string]string{
		"POST /api/transactions/swap": `{"signature":"5sig"}`,
	})

	result := exec.Execute(context.Background(), "solana_swap", map[string]interface{}{
		"chain":       "solana",
		"inputToken":  "SOL",
		"outputToken": "USDC",
		"amount":      "1",
		"slippageBps": "18446744073709551666",
	})
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Error, "out of range")
	assert.Empty(t, rec.all())
}

func TestExecuteRecoversHandlerPanic(t *testing.T) {
	exec := &Executor{}

	result := exec.Execute(context.Background(), "get_key_list", nil)
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Error, "tool get_key_list failed")
	assert.Nil(t, result.Data)
}

func TestExecuteCanonicalNameWins(t *testing.T) {
	args := Args{"inputToken": "SOL", "input_token": "BONK"}
	args.alias("inputToken", "input_token")
	assert.Equal(t, "SOL", args["inputToken"])
}

func TestExecuteValidationErrorIsData(t *testing.T) {
	exec, rec := newTestExecutor(t, nil)

	result := exec.Execute(context.Background(), "evm_transfer", map[string]interface{}{
		"chain": "solana", "to": "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", "amount": "1", "currency": "ETH",
	})
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Error, "not an EVM transfer chain")
	assert.Empty(t, rec.all())
}

func TestExecuteRejectsNonObjectInput(t *testing.T) {
	exec, _ := newTestExecutor(t, nil)

	result := exec.Execute(context.Background(), "get_balance", `["base"]`)
	assert.False(t, result.OK())
	assert.Contains(t, result.Error, "must be a JSON object")
}

func TestExecuteAPIErrorIsData(t *testing.T) {
	exec, _ := newTestExecutor(t, nil)

	result := exec.Execute(context.Background(), "get_key_list", nil)
	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Error, "not_found")
}

func TestExecuteDoesNotMutateCallerInput(t *testing.T) {
	exec, _ := newTestExecutor(t, map[string]string{
		"POST /api/transactions/swap": `{"signature":"5sig"}`,
	})
	input := map[string]interface{}{"chain": "solana", "input_token": "SOL", "output_token": "USDC", "amount": "1"}

	exec.Execute(context.Background(), "solana_swap", input)
	assert.NotContains(t, input, "inputToken")
}

func TestResultJSON(t *testing.T) {
	raw, err := json.Marshal(Result{Status: StatusError, Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","error":"boom"}`, string(raw))

	raw, err = json.Marshal(Result{Status: StatusSuccess, Data: json.RawMessage(`{"a":1}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","data":{"a":1}}`, string(raw))
}
