// Package spongewallet connects an agent to the Sponge wallet service and
// exposes its wallets, transfers, swaps and LLM tools through one session.
package spongewallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/paysponge/spongewallet-go/auth"
	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/models"
	"github.com/paysponge/spongewallet-go/services"
	"github.com/paysponge/spongewallet-go/tools"
)

// ErrAgentLookup is returned when an API key cannot be resolved to its agent.
var ErrAgentLookup = errors.New("failed to get agent info, the API key may be invalid or expired")

// Wallet is a session bound to one authenticated agent.
type Wallet struct {
	client  *client.APIClient
	agentID string

	agents       *services.AgentService
	wallets      *services.WalletService
	transactions *services.TransactionService
	public       *services.PublicToolsService
	trading      *services.TradingService
	keys         *services.KeyService

	mu        sync.RWMutex
	addresses map[models.Chain]string
	complete  bool
}

// Connect opens a session. The API key comes from cfg, then SPONGE_API_KEY,
// then the credentials file, then an interactive device-flow login. The agent
// ID comes from cfg, then the credentials file when it holds the same key,
// then the server, in which case the credentials are saved for next time.
func Connect(ctx context.Context, cfg *config.Config, opts ...Option) (*Wallet, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	resolved := *cfg
	resolved.LoadFromEnvironment()
	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	o, err := buildOptions(&resolved, opts)
	if err != nil {
		return nil, err
	}
	c := o.newClient(&resolved)

	apiKey := resolved.APIKey
	agentID := resolved.AgentID

	if apiKey == "" {
		if creds := o.store.Load(); creds != nil {
			logger.Debug("Using credentials from %s", o.store.Path())
			apiKey = creds.APIKey
			if agentID == "" {
				agentID = creds.AgentID
			}
		}
	} else if agentID == "" {
		if creds := o.store.Load(); creds != nil && creds.APIKey == apiKey {
			agentID = creds.AgentID
		}
	}

	if apiKey == "" {
		agentName := resolved.AgentName
		if agentName == "" {
			agentName = config.DefaultAgentName
		}
		token, err := auth.NewDeviceFlow(c, o.store, o.flow...).Run(ctx, auth.LoginOptions{
			Testnet:   resolved.Testnet,
			AgentName: agentName,
			KeyType:   models.KeyTypeAgent,
			NoBrowser: resolved.NoBrowser,
		})
		if err != nil {
			return nil, err
		}
		apiKey = token.APIKey
		if token.AgentID != nil {
			agentID = *token.AgentID
		}
	}

	c = c.WithAPIKey(apiKey)

	if agentID == "" {
		agent, err := services.NewAgentService(c).GetCurrent(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAgentLookup, err)
		}
		agentID = agent.ID

		creds := &models.Credentials{
			APIKey:    apiKey,
			AgentID:   agent.ID,
			AgentName: agent.Name,
			Testnet:   resolved.Testnet,
			CreatedAt: time.Now().UTC(),
		}
		if !resolved.IsDefaultBaseURL() {
			creds.BaseURL = c.BaseURL()
		}
		if err := o.store.Save(creds); err != nil {
			logger.Warn("Failed to save credentials: %v", err)
		}
	}

	logger.Info("Connected as agent %s", agentID)
	return newWallet(c, agentID), nil
}

func newWallet(c *client.APIClient, agentID string) *Wallet {
	return &Wallet{
		client:       c,
		agentID:      agentID,
		agents:       services.NewAgentService(c),
		wallets:      services.NewWalletService(c),
		transactions: services.NewTransactionService(c, agentID),
		public:       services.NewPublicToolsService(c),
		trading:      services.NewTradingService(c),
		keys:         services.NewKeyService(c),
	}
}

// AgentID returns the agent this session acts for.
func (w *Wallet) AgentID() string {
	return w.agentID
}

// BaseURL returns the API root the session talks to.
func (w *Wallet) BaseURL() string {
	return w.client.BaseURL()
}

// Address returns the cached address on chain without a network call.
// It reports false until the address was fetched by GetAddress or GetAddresses.
func (w *Wallet) Address(chain models.Chain) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	address, ok := w.addresses[chain]
	return address, ok
}

// GetAddress returns the agent's address on chain, or "" when it has no wallet there.
func (w *Wallet) GetAddress(ctx context.Context, chain models.Chain) (string, error) {
	if address, ok := w.Address(chain); ok {
		return address, nil
	}

	address, err := w.wallets.GetAddress(ctx, w.agentID, chain)
	if err != nil {
		return "", err
	}
	if address != "" {
		w.mu.Lock()
		if w.addresses == nil {
			w.addresses = make(map[models.Chain]string)
		}
		w.addresses[chain] = address
		w.mu.Unlock()
	}
	return address, nil
}

// GetAddresses returns every address of the agent. The first call fills the
// session cache; later calls are served from it.
func (w *Wallet) GetAddresses(ctx context.Context) (map[models.Chain]string, error) {
	w.mu.RLock()
	complete, cached := w.complete, copyAddresses(w.addresses)
	w.mu.RUnlock()
	if complete {
		return cached, nil
	}

	addresses, err := w.wallets.GetAllAddresses(ctx, w.agentID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.addresses = addresses
	w.complete = true
	return copyAddresses(addresses), nil
}

func copyAddresses(src map[models.Chain]string) map[models.Chain]string {
	dst := make(map[models.Chain]string, len(src))
	for chain, address := range src {
		dst[chain] = address
	}
	return dst
}

// GetBalance returns the balance of the agent's wallet on chain, empty when there is none.
func (w *Wallet) GetBalance(ctx context.Context, chain models.Chain) (models.Balance, error) {
	if !chain.Valid() {
		return nil, models.Invalid("unknown chain: %s", chain)
	}

	list, err := w.wallets.List(ctx, w.agentID, models.ListWalletsOptions{})
	if err != nil {
		return nil, err
	}
	for _, wallet := range list {
		if wallet.ChainName == string(chain) {
			return w.wallets.GetBalance(ctx, wallet.ID, 0)
		}
	}
	return models.Balance{}, nil
}

// GetBalances returns one balance per chain the agent has a wallet on.
func (w *Wallet) GetBalances(ctx context.Context) (map[models.Chain]models.Balance, error) {
	return w.wallets.GetAllBalances(ctx, w.agentID)
}

func (w *Wallet) GetDetailedBalances(ctx context.Context, q models.BalanceQuery) (models.DetailedBalances, error) {
	return w.public.GetDetailedBalances(ctx, q)
}

// Transfer sends tokens, picking the endpoint from the chain and currency.
func (w *Wallet) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransactionResult, error) {
	return w.transactions.Transfer(ctx, req)
}

func (w *Wallet) EVMTransfer(ctx context.Context, req models.TransferRequest) (*models.SubmitTransaction, error) {
	return w.public.EVMTransfer(ctx, req)
}

func (w *Wallet) SolanaTransfer(ctx context.Context, req models.TransferRequest) (*models.SubmitTransaction, error) {
	return w.public.SolanaTransfer(ctx, req)
}

func (w *Wallet) Swap(ctx context.Context, req models.SwapRequest) (*models.TransactionResult, error) {
	return w.transactions.Swap(ctx, req)
}

func (w *Wallet) GetTransactionStatus(ctx context.Context, txHash string, chain models.Chain) (*models.TransactionStatus, error) {
	return w.transactions.GetStatus(ctx, txHash, chain)
}

func (w *Wallet) GetTransactionHistory(ctx context.Context, opts models.HistoryOptions) ([]models.TransactionStatus, error) {
	return w.transactions.GetHistory(ctx, opts)
}

func (w *Wallet) GetTransactionHistoryDetailed(ctx context.Context, opts models.DetailedHistoryOptions) (*models.TransactionHistoryDetailed, error) {
	return w.public.GetTransactionHistoryDetailed(ctx, opts)
}

func (w *Wallet) GetSolanaTokens(ctx context.Context, chain models.Chain) (*models.SolanaTokensResponse, error) {
	return w.public.GetSolanaTokens(ctx, chain)
}

func (w *Wallet) SearchSolanaTokens(ctx context.Context, query string, limit int) (*models.SolanaTokenSearchResponse, error) {
	return w.public.SearchSolanaTokens(ctx, query, limit)
}

func (w *Wallet) RequestFunding(ctx context.Context, req models.FundingRequest) (*models.FundingRequestResponse, error) {
	return w.public.RequestFunding(ctx, req)
}

func (w *Wallet) WithdrawToMainWallet(ctx context.Context, req models.WithdrawRequest) (*models.SubmitTransaction, error) {
	return w.public.WithdrawToMainWallet(ctx, req)
}

func (w *Wallet) CreateOnrampLink(ctx context.Context, req models.OnrampRequest) (*models.OnrampResponse, error) {
	return w.public.CreateOnrampLink(ctx, req)
}

func (w *Wallet) ClaimSignupBonus(ctx context.Context) (*models.SignupBonusClaimResponse, error) {
	return w.public.ClaimSignupBonus(ctx)
}

// Sponge runs a paid task such as search or image generation.
func (w *Wallet) Sponge(ctx context.Context, request map[string]any) (*models.SpongeResponse, error) {
	return w.public.Sponge(ctx, request)
}

func (w *Wallet) CreateX402Payment(ctx context.Context, req models.X402PaymentRequest) (*models.X402PaymentResponse, error) {
	return w.public.CreateX402Payment(ctx, req)
}

func (w *Wallet) Hyperliquid(ctx context.Context, args map[string]any) (json.RawMessage, error) {
	return w.trading.Hyperliquid(ctx, args)
}

func (w *Wallet) SubmitPlan(ctx context.Context, plan models.PlanRequest) (json.RawMessage, error) {
	return w.trading.SubmitPlan(ctx, plan)
}

func (w *Wallet) ApprovePlan(ctx context.Context, planID string) (json.RawMessage, error) {
	return w.trading.ApprovePlan(ctx, planID)
}

func (w *Wallet) ProposeTrade(ctx context.Context, trade models.TradeProposal) (json.RawMessage, error) {
	return w.trading.ProposeTrade(ctx, trade)
}

func (w *Wallet) StoreKey(ctx context.Context, req models.StoreKeyRequest) (json.RawMessage, error) {
	return w.keys.Store(ctx, req)
}

func (w *Wallet) ListKeys(ctx context.Context) (json.RawMessage, error) {
	return w.keys.List(ctx)
}

func (w *Wallet) GetKeyValue(ctx context.Context, service string) (json.RawMessage, error) {
	return w.keys.Value(ctx, service)
}

// CreateAgent creates another agent owned by the same user.
func (w *Wallet) CreateAgent(ctx context.Context, req models.CreateAgentRequest) (*models.Agent, error) {
	created, err := w.agents.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return &created.Agent, nil
}

// GetAgents lists every agent of the user.
func (w *Wallet) GetAgents(ctx context.Context) ([]models.Agent, error) {
	return w.agents.List(ctx)
}

// GetAgent returns the agent this session acts for.
func (w *Wallet) GetAgent(ctx context.Context) (*models.Agent, error) {
	return w.agents.GetCurrent(ctx)
}

// MCP returns the hosted MCP server entry authenticated as this agent.
func (w *Wallet) MCP() MCPConfig {
	return NewMCPConfig(w.client.APIKey(), w.client.BaseURL())
}

// Tools returns an executor for LLM tool calls made on behalf of this agent.
func (w *Wallet) Tools() *tools.Executor {
	return tools.NewExecutor(w.client, w.agentID)
}
