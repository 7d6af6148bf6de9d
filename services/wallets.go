package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/models"
)

// WalletService reads an agent's per-chain wallets
type WalletService struct {
	client *client.APIClient
}

// NewWalletService creates a new wallet service
func NewWalletService(client *client.APIClient) *WalletService {
	return &WalletService{
		client: client,
	}
}

// List returns the agent's wallets, optionally enriched with balances
func (s *WalletService) List(ctx context.Context, agentID string, opts models.ListWalletsOptions) ([]models.Wallet, error) {
	params := client.Params{"agentId": agentID}
	if opts.IncludeBalances {
		params["includeBalances"] = "true"
	}

	var wallets []models.Wallet
	if err := s.client.Get(ctx, "/api/wallets", params, &wallets); err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	for i := range wallets {
		if err := validateWallet(&wallets[i]); err != nil {
			return nil, fmt.Errorf("failed to list wallets: %w", err)
		}
	}
	return wallets, nil
}

// Get retrieves one wallet by id
func (s *WalletService) Get(ctx context.Context, walletID string) (*models.Wallet, error) {
	wallet, err := client.Fetch[models.Wallet](ctx, s.client, http.MethodGet, "/api/wallets/"+client.PathEscape(walletID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet %s: %w", walletID, err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("failed to get wallet %s: empty response", walletID)
	}
	if err := validateWallet(wallet); err != nil {
		return nil, fmt.Errorf("failed to get wallet %s: %w", walletID, err)
	}
	return wallet, nil
}

// GetBalance flattens the native and token balances of a wallet into symbol -> formatted amount.
// A zero chainID lets the server pick the wallet's own chain.
func (s *WalletService) GetBalance(ctx context.Context, walletID string, chainID int64) (models.Balance, error) {
	params := client.Params{}
	if chainID != 0 {
		params["chainId"] = strconv.FormatInt(chainID, 10)
	}

	response, err := client.Fetch[models.WalletBalanceResponse](ctx, s.client, http.MethodGet, "/api/wallets/"+client.PathEscape(walletID)+"/balance", params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for wallet %s: %w", walletID, err)
	}
	if response == nil || response.Symbol == "" {
		return nil, fmt.Errorf("failed to get balance for wallet %s: %w", walletID, models.Invalid("balance response is missing a symbol"))
	}

	balance := models.Balance{response.Symbol: response.BalanceFormatted}
	for _, token := range response.TokenBalances {
		balance[token.Symbol] = token.Formatted
	}
	return balance, nil
}

// GetAllBalances returns one balance per chain. Wallets on chains this SDK
// does not know are skipped.
func (s *WalletService) GetAllBalances(ctx context.Context, agentID string) (map[models.Chain]models.Balance, error) {
	wallets, err := s.List(ctx, agentID, models.ListWalletsOptions{IncludeBalances: true})
	if err != nil {
		return nil, err
	}

	balances := make(map[models.Chain]models.Balance, len(wallets))
	for _, wallet := range wallets {
		chain, ok := models.ChainFromID(wallet.ChainID)
		if !ok {
			logger.Debug("Skipping wallet %s on unknown chain id %d", wallet.ID, wallet.ChainID)
			continue
		}

		balance := models.Balance{}
		if wallet.Symbol != "" && wallet.Balance != "" {
			balance[wallet.Symbol] = wallet.Balance
		}
		balances[chain] = balance
	}
	return balances, nil
}

// GetAddress returns the agent's address on chain, or "" when it has no wallet there.
func (s *WalletService) GetAddress(ctx context.Context, agentID string, chain models.Chain) (string, error) {
	if err := validateChain(chain); err != nil {
		return "", err
	}

	wallets, err := s.List(ctx, agentID, models.ListWalletsOptions{})
	if err != nil {
		return "", err
	}

	for _, wallet := range wallets {
		if wallet.ChainID == chain.ID() {
			return wallet.Address, nil
		}
	}
	return "", nil
}

// GetAllAddresses maps every known chain the agent has a wallet on to its address.
func (s *WalletService) GetAllAddresses(ctx context.Context, agentID string) (map[models.Chain]string, error) {
	wallets, err := s.List(ctx, agentID, models.ListWalletsOptions{})
	if err != nil {
		return nil, err
	}

	addresses := make(map[models.Chain]string, len(wallets))
	for _, wallet := range wallets {
		chain, ok := models.ChainFromID(wallet.ChainID)
		if !ok {
			logger.Debug("Skipping wallet %s on unknown chain id %d", wallet.ID, wallet.ChainID)
			continue
		}
		addresses[chain] = wallet.Address
	}
	return addresses, nil
}

func validateWallet(wallet *models.Wallet) error {
	if err := validateUUID("wallet ID", wallet.ID); err != nil {
		return err
	}
	if wallet.Address == "" {
		return models.Invalid("wallet %s has no address", wallet.ID)
	}
	switch wallet.ChainType {
	case "", models.ChainTypeEVM, models.ChainTypeSolana:
	default:
		return models.Invalid("wallet %s has unknown chain type %q", wallet.ID, wallet.ChainType)
	}
	return nil
}
