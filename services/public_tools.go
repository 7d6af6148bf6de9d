package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/models"
)

const maxTokenSearchLimit = 20

// PublicToolsService wraps the agent-facing REST helpers that back the tool catalog
type PublicToolsService struct {
	client *client.APIClient
}

// NewPublicToolsService creates a new public tools service
func NewPublicToolsService(client *client.APIClient) *PublicToolsService {
	return &PublicToolsService{
		client: client,
	}
}

// BalanceParams builds the /api/balances query. An empty chain means "all".
func BalanceParams(q models.BalanceQuery) client.Params {
	chain := q.Chain
	if chain == "" {
		chain = "all"
	}
	params := client.Params{"chain": chain}

	if len(q.AllowedChains) > 0 {
		names := make([]string, len(q.AllowedChains))
		for i, c := range q.AllowedChains {
			names[i] = string(c)
		}
		params["allowedChains"] = strings.Join(names, ",")
	}
	if q.OnlyUSDC {
		params["onlyUsdc"] = "true"
	}
	return params
}

// GetDetailedBalances returns per-token balances keyed by chain
func (s *PublicToolsService) GetDetailedBalances(ctx context.Context, q models.BalanceQuery) (models.DetailedBalances, error) {
	if q.Chain != "" && q.Chain != "all" {
		if err := validateChain(models.Chain(q.Chain)); err != nil {
			return nil, err
		}
	}
	for _, c := range q.AllowedChains {
		if err := validateChain(c); err != nil {
			return nil, err
		}
	}

	var balances models.DetailedBalances
	if err := s.client.Get(ctx, "/api/balances", BalanceParams(q), &balances); err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	if balances == nil {
		balances = models.DetailedBalances{}
	}
	return balances, nil
}

// EVMTransfer sends ETH or USDC on an EVM chain
func (s *PublicToolsService) EVMTransfer(ctx context.Context, req models.TransferRequest) (*models.SubmitTransaction, error) {
	if !req.Chain.IsEVM() {
		return nil, models.Invalid("%s is not an EVM transfer chain", req.Chain)
	}
	if !models.IsEVMAddress(req.To) {
		return nil, models.Invalid("invalid Ethereum address %q", req.To)
	}
	if req.Currency != models.CurrencyETH && req.Currency != models.CurrencyUSDC {
		return nil, models.Invalid("currency %s not supported on %s", req.Currency, req.Chain)
	}
	if err := validateAmount("amount", req.Amount); err != nil {
		return nil, err
	}

	response, err := submit(ctx, s.client, "/api/transfers/evm", req)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer on %s: %w", req.Chain, err)
	}
	return response, nil
}

// SolanaTransfer sends SOL or USDC on a Solana chain
func (s *PublicToolsService) SolanaTransfer(ctx context.Context, req models.TransferRequest) (*models.SubmitTransaction, error) {
	if !req.Chain.IsSolana() {
		return nil, models.Invalid("%s is not a Solana chain", req.Chain)
	}
	if !models.IsSolanaAddress(req.To) {
		return nil, models.Invalid("invalid Solana address %q", req.To)
	}
	if req.Currency != models.CurrencySOL && req.Currency != models.CurrencyUSDC {
		return nil, models.Invalid("currency %s not supported on %s", req.Currency, req.Chain)
	}
	if err := validateAmount("amount", req.Amount); err != nil {
		return nil, err
	}

	response, err := submit(ctx, s.client, "/api/transfers/solana", req)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer on %s: %w", req.Chain, err)
	}
	return response, nil
}

// GetSolanaTokens lists SPL tokens held by the agent's Solana wallet
func (s *PublicToolsService) GetSolanaTokens(ctx context.Context, chain models.Chain) (*models.SolanaTokensResponse, error) {
	if !chain.IsSolana() {
		return nil, models.Invalid("%s is not a Solana chain", chain)
	}

	response, err := client.Fetch[models.SolanaTokensResponse](ctx, s.client, http.MethodGet, "/api/solana/tokens", client.Params{"chain": string(chain)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get Solana tokens: %w", err)
	}
	if response == nil {
		return nil, fmt.Errorf("failed to get Solana tokens: empty response")
	}
	return response, nil
}

// SearchSolanaTokens searches the token list by symbol or name. limit 0 uses the server default.
func (s *PublicToolsService) SearchSolanaTokens(ctx context.Context, query string, limit int) (*models.SolanaTokenSearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.Invalid("query is required")
	}
	if limit < 0 || limit > maxTokenSearchLimit {
		return nil, models.Invalid("limit must be between 0 and %d, got %d", maxTokenSearchLimit, limit)
	}

	params := client.Params{"query": query}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	response, err := client.Fetch[models.SolanaTokenSearchResponse](ctx, s.client, http.MethodGet, "/api/solana/tokens/search", params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search Solana tokens: %w", err)
	}
	if response == nil {
		return &models.SolanaTokenSearchResponse{}, nil
	}
	return response, nil
}

// GetTransactionHistoryDetailed returns history with direction, token and chain per entry
func (s *PublicToolsService) GetTransactionHistoryDetailed(ctx context.Context, opts models.DetailedHistoryOptions) (*models.TransactionHistoryDetailed, error) {
	params := client.Params{}
	if opts.Limit != nil {
		params["limit"] = strconv.Itoa(*opts.Limit)
	}
	if opts.Chain != "" {
		if err := validateChain(opts.Chain); err != nil {
			return nil, err
		}
		params["chain"] = string(opts.Chain)
	}

	response, err := client.Fetch[models.TransactionHistoryDetailed](ctx, s.client, http.MethodGet, "/api/transactions/history", params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	if response == nil {
		return &models.TransactionHistoryDetailed{}, nil
	}
	return response, nil
}

// RequestFunding asks the owner for funds
func (s *PublicToolsService) RequestFunding(ctx context.Context, req models.FundingRequest) (*models.FundingRequestResponse, error) {
	if err := validateAmount("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.Chain != "" {
		if err := validateChain(req.Chain); err != nil {
			return nil, err
		}
	}

	response, err := client.Fetch[models.FundingRequestResponse](ctx, s.client, http.MethodPost, "/api/funding-requests", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to request funding: %w", err)
	}
	if response == nil {
		return nil, fmt.Errorf("failed to request funding: empty response")
	}
	return response, nil
}

// WithdrawToMainWallet returns funds to the owner's main wallet
func (s *PublicToolsService) WithdrawToMainWallet(ctx context.Context, req models.WithdrawRequest) (*models.SubmitTransaction, error) {
	if err := validateChain(req.Chain); err != nil {
		return nil, err
	}
	if err := validateAmount("amount", req.Amount); err != nil {
		return nil, err
	}
	switch req.Currency {
	case "", models.WithdrawNative, models.WithdrawUSDC:
	default:
		return nil, models.Invalid("withdraw currency must be native or USDC, got %q", req.Currency)
	}

	response, err := client.Fetch[models.SubmitTransaction](ctx, s.client, http.MethodPost, "/api/wallets/withdraw-to-main", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw on %s: %w", req.Chain, err)
	}
	if response == nil {
		return nil, fmt.Errorf("failed to withdraw on %s: empty response", req.Chain)
	}
	return response, nil
}

// CreateOnrampLink creates a fiat-to-USDC checkout link for the agent wallet
func (s *PublicToolsService) CreateOnrampLink(ctx context.Context, req models.OnrampRequest) (*models.OnrampResponse, error) {
	if !models.IsAddress(req.WalletAddress) {
		return nil, models.Invalid("invalid wallet address %q", req.WalletAddress)
	}
	switch req.Provider {
	case "", "auto", "stripe", "coinbase":
	default:
		return nil, models.Invalid("unknown onramp provider %q", req.Provider)
	}
	switch req.Chain {
	case "", "base", "solana", "polygon":
	default:
		return nil, models.Invalid("onramp chain must be base, solana or polygon, got %q", req.Chain)
	}
	if req.FiatAmount != "" {
		if err := validateAmount("fiat amount", req.FiatAmount); err != nil {
			return nil, err
		}
	}

	response, err := client.Fetch[models.OnrampResponse](ctx, s.client, http.MethodPost, "/api/onramp/crypto", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create onramp link: %w", err)
	}
	if response == nil || response.URL == "" {
		return nil, fmt.Errorf("failed to create onramp link: %w", models.Invalid("onramp response is missing a URL"))
	}
	return response, nil
}

// ClaimSignupBonus claims the one-time signup bonus
func (s *PublicToolsService) ClaimSignupBonus(ctx context.Context) (*models.SignupBonusClaimResponse, error) {
	response, err := client.Fetch[models.SignupBonusClaimResponse](ctx, s.client, http.MethodPost, "/api/signup-bonus/claim", nil, struct{}{})
	if err != nil {
		return nil, fmt.Errorf("failed to claim signup bonus: %w", err)
	}
	if response == nil {
		return nil, fmt.Errorf("failed to claim signup bonus: empty response")
	}
	return response, nil
}

// Sponge forwards a paid task request to the provider router unchanged
func (s *PublicToolsService) Sponge(ctx context.Context, request map[string]any) (*models.SpongeResponse, error) {
	if request == nil {
		request = map[string]any{}
	}

	response, err := client.Fetch[models.SpongeResponse](ctx, s.client, http.MethodPost, "/api/sponge", nil, request)
	if err != nil {
		return nil, fmt.Errorf("failed to run sponge task: %w", err)
	}
	if response == nil {
		return nil, fmt.Errorf("failed to run sponge task: empty response")
	}
	switch response.Status {
	case "success", "payment_required", "error":
	default:
		return nil, fmt.Errorf("failed to run sponge task: %w", models.Invalid("unknown status %q", response.Status))
	}
	return response, nil
}

// CreateX402Payment builds a signed x402 payment payload
func (s *PublicToolsService) CreateX402Payment(ctx context.Context, req models.X402PaymentRequest) (*models.X402PaymentResponse, error) {
	if err := validateChain(req.Chain); err != nil {
		return nil, err
	}
	if req.To == "" {
		return nil, models.Invalid("payment recipient is required")
	}
	if err := validateAmount("amount", req.Amount); err != nil {
		return nil, err
	}
	switch req.HTTPMethod {
	case "", http.MethodGet, http.MethodPost:
	default:
		return nil, models.Invalid("http method must be GET or POST, got %q", req.HTTPMethod)
	}

	response, err := client.Fetch[models.X402PaymentResponse](ctx, s.client, http.MethodPost, "/api/x402/payments", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create x402 payment: %w", err)
	}
	if response == nil || response.PaymentPayloadBase64 == "" {
		return nil, fmt.Errorf("failed to create x402 payment: %w", models.Invalid("payment response is missing a payload"))
	}
	return response, nil
}
