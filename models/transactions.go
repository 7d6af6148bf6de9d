package models

import "time"

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
	TxStatusUnknown   TxStatus = "unknown"
)

type TransferRequest struct {
	Chain    Chain    `json:"chain"`
	To       string   `json:"to"`
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

type TempoTransferRequest struct {
	Chain             Chain  `json:"chain"`
	To                string `json:"to"`
	Amount            string `json:"amount"`
	UseGasSponsorship bool   `json:"use_gas_sponsorship"`
}

// SubmitTransaction is what every transfer endpoint answers with.
type SubmitTransaction struct {
	TransactionHash string `json:"transactionHash"`
	Status          string `json:"status"`
	ExplorerURL     string `json:"explorerUrl,omitempty"`
	Message         string `json:"message,omitempty"`
}

type TransactionResult struct {
	TxHash      string   `json:"txHash"`
	Status      TxStatus `json:"status"`
	ExplorerURL string   `json:"explorerUrl,omitempty"`
	ChainID     int64    `json:"chainId,omitempty"`
}

type TransactionStatus struct {
	TxHash        string   `json:"txHash"`
	Status        TxStatus `json:"status"`
	BlockNumber   *int64   `json:"blockNumber"`
	Confirmations *int64   `json:"confirmations"`
	ErrorMessage  *string  `json:"errorMessage"`
}

// SwapRequest describes a Solana swap. From and To are symbols or mint addresses.
type SwapRequest struct {
	Chain       Chain
	From        string
	To          string
	Amount      string
	SlippageBps *int
}

type SwapPayload struct {
	Chain       Chain  `json:"chain"`
	InputToken  string `json:"inputToken"`
	OutputToken string `json:"outputToken"`
	Amount      string `json:"amount"`
	SlippageBps *int   `json:"slippageBps,omitempty"`
}

type SwapResponse struct {
	Signature    string `json:"signature"`
	InputToken   string `json:"inputToken"`
	OutputToken  string `json:"outputToken"`
	InputAmount  string `json:"inputAmount"`
	OutputAmount string `json:"outputAmount"`
	ExplorerURL  string `json:"explorerUrl,omitempty"`
}

type TransactionStatusResponse struct {
	TransactionHash   string   `json:"transactionHash"`
	Status            TxStatus `json:"status"`
	Confirmations     *int64   `json:"confirmations"`
	BlockNumber       *int64   `json:"blockNumber"`
	GasUsed           *string  `json:"gasUsed"`
	EffectiveGasPrice *string  `json:"effectiveGasPrice"`
}

type TransactionRecord struct {
	ID          string    `json:"id"`
	TxHash      *string   `json:"txHash"`
	TxStatus    string    `json:"txStatus"`
	FromAddress string    `json:"fromAddress"`
	ToAddress   string    `json:"toAddress"`
	Value       string    `json:"value"`
	ChainID     int64     `json:"chainId"`
	TxType      string    `json:"txType"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TransactionHistoryResponse struct {
	Items      []TransactionRecord `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"perPage"`
	TotalPages int                 `json:"totalPages"`
}

type HistoryOptions struct {
	Limit  *int
	Offset *int
}
