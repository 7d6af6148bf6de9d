package models

import "encoding/json"

type DetailedTokenBalance struct {
	Token    string `json:"token"`
	Amount   string `json:"amount"`
	USDValue string `json:"usdValue,omitempty"`
}

type DetailedChainBalance struct {
	Address  string                 `json:"address"`
	Balances []DetailedTokenBalance `json:"balances"`
}

// DetailedBalances is keyed by chain name.
type DetailedBalances map[string]DetailedChainBalance

// BalanceQuery filters GetDetailedBalances. An empty Chain means all chains.
type BalanceQuery struct {
	Chain         string
	AllowedChains []Chain
	OnlyUSDC      bool
}

type SolanaToken struct {
	Mint     string  `json:"mint"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Balance  string  `json:"balance,omitempty"`
	Decimals int     `json:"decimals"`
	LogoURI  *string `json:"logoURI"`
	Verified bool    `json:"verified"`
}

type SolanaTokensResponse struct {
	Address string        `json:"address"`
	Tokens  []SolanaToken `json:"tokens"`
}

type SolanaTokenSearchResponse struct {
	Tokens []SolanaToken `json:"tokens"`
}

type DetailedHistoryOptions struct {
	Limit *int
	Chain Chain
}

type HistoryEntry struct {
	TxHash    *string `json:"txHash"`
	Status    string  `json:"status"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Value     string  `json:"value"`
	Token     string  `json:"token"`
	Direction string  `json:"direction"`
	Chain     string  `json:"chain"`
	Timestamp string  `json:"timestamp"`
}

type TransactionHistoryDetailed struct {
	Transactions []HistoryEntry `json:"transactions"`
	Total        int            `json:"total"`
	HasMore      bool           `json:"hasMore"`
}

type FundingRequest struct {
	Amount   string `json:"amount"`
	Reason   string `json:"reason,omitempty"`
	Chain    Chain  `json:"chain,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type FundingRequestResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

// WithdrawCurrency is "native" or "USDC".
type WithdrawCurrency string

const (
	WithdrawNative WithdrawCurrency = "native"
	WithdrawUSDC   WithdrawCurrency = "USDC"
)

type WithdrawRequest struct {
	Chain    Chain            `json:"chain"`
	Amount   string           `json:"amount"`
	Currency WithdrawCurrency `json:"currency,omitempty"`
}

type OnrampRequest struct {
	WalletAddress     string `json:"wallet_address"`
	Provider          string `json:"provider,omitempty"`
	Chain             string `json:"chain,omitempty"`
	FiatAmount        string `json:"fiat_amount,omitempty"`
	FiatCurrency      string `json:"fiat_currency,omitempty"`
	LockWalletAddress *bool  `json:"lock_wallet_address,omitempty"`
	RedirectURL       string `json:"redirect_url,omitempty"`
}

type OnrampResponse struct {
	Success             bool   `json:"success"`
	Provider            string `json:"provider"`
	URL                 string `json:"url"`
	SessionID           string `json:"sessionId"`
	Status              string `json:"status"`
	DestinationChain    string `json:"destinationChain"`
	DestinationAddress  string `json:"destinationAddress"`
	DestinationCurrency string `json:"destinationCurrency"`
	ClientSecret        string `json:"clientSecret,omitempty"`
}

type SignupBonusClaimResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	Chain            string `json:"chain"`
	RecipientAddress string `json:"recipientAddress"`
	TransactionHash  string `json:"transactionHash"`
	ExplorerURL      string `json:"explorerUrl"`
}

type SpongePayment struct {
	Chain     string `json:"chain"`
	To        string `json:"to"`
	Token     string `json:"token"`
	Amount    string `json:"amount"`
	RawAmount string `json:"raw_amount"`
	Decimals  int    `json:"decimals"`
}

type SpongePaymentMade struct {
	Chain     string `json:"chain"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// SpongeResponse is the result of a provider-routed paid task.
type SpongeResponse struct {
	Summary         string             `json:"summary,omitempty"`
	Status          string             `json:"status"`
	Task            string             `json:"task"`
	Provider        string             `json:"provider"`
	Data            json.RawMessage    `json:"data,omitempty"`
	ImageData       string             `json:"image_data,omitempty"`
	ImageMimeType   string             `json:"image_mime_type,omitempty"`
	Payment         *SpongePayment     `json:"payment,omitempty"`
	PaymentMade     *SpongePaymentMade `json:"payment_made,omitempty"`
	WalletBalance   DetailedBalances   `json:"wallet_balance,omitempty"`
	NextStep        string             `json:"next_step,omitempty"`
	Error           string             `json:"error,omitempty"`
	APIErrorDetails json.RawMessage    `json:"api_error_details,omitempty"`
	Receipt         json.RawMessage    `json:"receipt,omitempty"`
}

type X402PaymentRequest struct {
	Chain               Chain  `json:"chain"`
	To                  string `json:"to"`
	Token               string `json:"token,omitempty"`
	Amount              string `json:"amount"`
	Decimals            *int   `json:"decimals,omitempty"`
	ValidForSeconds     *int   `json:"valid_for_seconds,omitempty"`
	ResourceURL         string `json:"resource_url,omitempty"`
	ResourceDescription string `json:"resource_description,omitempty"`
	FeePayer            string `json:"fee_payer,omitempty"`
	HTTPMethod          string `json:"http_method,omitempty"`
}

type X402PaymentRequirements struct {
	Scheme            string `json:"scheme"`
	Network           string `json:"network"`
	MaxAmountRequired string `json:"maxAmountRequired"`
	Asset             string `json:"asset"`
	PayTo             string `json:"payTo"`
}

type X402PaymentResponse struct {
	PaymentPayload       json.RawMessage         `json:"paymentPayload"`
	PaymentPayloadBase64 string                  `json:"paymentPayloadBase64"`
	HeaderName           string                  `json:"headerName,omitempty"`
	PaymentRequirements  X402PaymentRequirements `json:"paymentRequirements"`
	ExpiresAt            string                  `json:"expiresAt"`
}

type PlanStep struct {
	Type             string `json:"type"`
	InputToken       string `json:"input_token,omitempty"`
	OutputToken      string `json:"output_token,omitempty"`
	Amount           string `json:"amount"`
	Reason           string `json:"reason"`
	Chain            string `json:"chain,omitempty"`
	To               string `json:"to,omitempty"`
	Currency         string `json:"currency,omitempty"`
	SourceChain      string `json:"source_chain,omitempty"`
	DestinationChain string `json:"destination_chain,omitempty"`
	Token            string `json:"token,omitempty"`
	DestinationToken string `json:"destination_token,omitempty"`
}

type PlanRequest struct {
	Title     string     `json:"title"`
	Reasoning string     `json:"reasoning,omitempty"`
	Steps     []PlanStep `json:"steps"`
}

type TradeProposal struct {
	InputToken  string `json:"input_token"`
	OutputToken string `json:"output_token"`
	Amount      string `json:"amount"`
	Reason      string `json:"reason"`
}

type StoreKeyRequest struct {
	Service  string         `json:"service"`
	Key      string         `json:"key"`
	Label    string         `json:"label,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
