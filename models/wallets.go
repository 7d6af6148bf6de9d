package models

import "time"

type Wallet struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agentId"`
	ChainID   int64     `json:"chainId"`
	ChainName string    `json:"chainName"`
	ChainType ChainType `json:"chainType,omitempty"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	// Populated when listed with includeBalances
	Balance         string `json:"balance,omitempty"`
	BalanceUSDValue string `json:"balanceUsdValue,omitempty"`
	Symbol          string `json:"symbol,omitempty"`
}

type TokenBalance struct {
	TokenAddress string `json:"tokenAddress"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Decimals     int    `json:"decimals"`
	Balance      string `json:"balance"`
	Formatted    string `json:"formatted"`
	USDValue     string `json:"usdValue,omitempty"`
}

type WalletBalanceResponse struct {
	WalletID         string         `json:"walletId"`
	Address          string         `json:"address"`
	ChainID          int64          `json:"chainId"`
	Balance          string         `json:"balance"`
	BalanceFormatted string         `json:"balanceFormatted"`
	Symbol           string         `json:"symbol"`
	TokenBalances    []TokenBalance `json:"tokenBalances,omitempty"`
}

// Balance maps a token symbol to a formatted amount, e.g. {"ETH": "0.5"}.
type Balance map[string]string

// ListWalletsOptions controls wallet listing.
type ListWalletsOptions struct {
	IncludeBalances bool
}
