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

const maxSlippageBps = 10000

// TransactionService submits and inspects transfers for one agent
type TransactionService struct {
	client  *client.APIClient
	agentID string
}

// NewTransactionService creates a new transaction service bound to agentID
func NewTransactionService(client *client.APIClient, agentID string) *TransactionService {
	return &TransactionService{
		client:  client,
		agentID: agentID,
	}
}

// Transfer routes a transfer to the Solana, Tempo or EVM endpoint depending on
// chain and currency. Unsupported pairs are rejected before any request.
func (s *TransactionService) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransactionResult, error) {
	if err := validateTransfer(req); err != nil {
		return nil, err
	}

	chainID, ok := models.ChainIDs[req.Chain]
	if !ok {
		return nil, models.Invalid("unknown chain: %s", req.Chain)
	}

	var (
		endpoint string
		payload  interface{}
	)

	switch {
	case req.Chain.IsSolana():
		if req.Currency != models.CurrencySOL && req.Currency != models.CurrencyUSDC {
			return nil, models.Invalid("currency %s not supported on %s", req.Currency, req.Chain)
		}
		endpoint, payload = "/api/transfers/solana", req

	case req.Chain.IsTempo() || req.Currency == models.CurrencyPathUSD:
		if !req.Chain.IsTempo() || req.Currency != models.CurrencyPathUSD {
			return nil, models.Invalid("pathUSD transfers are only supported on Tempo chains")
		}
		endpoint = "/api/transfers/tempo"
		payload = models.TempoTransferRequest{
			Chain:             req.Chain,
			To:                req.To,
			Amount:            req.Amount,
			UseGasSponsorship: true,
		}

	default:
		if req.Currency != models.CurrencyETH && req.Currency != models.CurrencyUSDC {
			return nil, models.Invalid("currency %s not supported on %s", req.Currency, req.Chain)
		}
		endpoint, payload = "/api/transfers/evm", req
	}

	logger.Debug("Submitting %s %s transfer on %s via %s", req.Amount, req.Currency, req.Chain, endpoint)
	submitted, err := submit(ctx, s.client, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to transfer on %s: %w", req.Chain, err)
	}

	return toTransactionResult(submitted, chainID), nil
}

// Swap exchanges tokens on Solana. The provider answers once the swap landed,
// so the result is always confirmed.
func (s *TransactionService) Swap(ctx context.Context, req models.SwapRequest) (*models.TransactionResult, error) {
	response, err := s.SwapDetails(ctx, req)
	if err != nil {
		return nil, err
	}
	return &models.TransactionResult{
		TxHash:      response.Signature,
		Status:      models.TxStatusConfirmed,
		ExplorerURL: response.ExplorerURL,
	}, nil
}

// SwapDetails runs a swap and returns the provider's answer including the
// token amounts.
func (s *TransactionService) SwapDetails(ctx context.Context, req models.SwapRequest) (*models.SwapResponse, error) {
	if err := validateSwap(req); err != nil {
		return nil, err
	}

	payload := models.SwapPayload{
		Chain:       req.Chain,
		InputToken:  req.From,
		OutputToken: req.To,
		Amount:      req.Amount,
		SlippageBps: req.SlippageBps,
	}

	response, err := client.Fetch[models.SwapResponse](ctx, s.client, http.MethodPost, "/api/transactions/swap", nil, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to swap %s to %s: %w", req.From, req.To, err)
	}
	if response == nil || response.Signature == "" {
		return nil, fmt.Errorf("failed to swap %s to %s: %w", req.From, req.To, models.Invalid("swap response is missing a signature"))
	}
	return response, nil
}

// GetStatus looks up a transaction hash or signature on chain.
func (s *TransactionService) GetStatus(ctx context.Context, txHash string, chain models.Chain) (*models.TransactionStatus, error) {
	response, err := s.GetStatusDetails(ctx, txHash, chain)
	if err != nil {
		return nil, err
	}

	switch response.Status {
	case models.TxStatusPending, models.TxStatusConfirmed, models.TxStatusFailed:
	default:
		return nil, fmt.Errorf("failed to get status of %s: %w", txHash, models.Invalid("unknown transaction status %q", response.Status))
	}

	return &models.TransactionStatus{
		TxHash:        response.TransactionHash,
		Status:        response.Status,
		BlockNumber:   response.BlockNumber,
		Confirmations: response.Confirmations,
	}, nil
}

// GetStatusDetails is GetStatus without reshaping, so gas figures are kept.
func (s *TransactionService) GetStatusDetails(ctx context.Context, txHash string, chain models.Chain) (*models.TransactionStatusResponse, error) {
	if txHash == "" {
		return nil, models.Invalid("txHash is required")
	}
	if chain == "" {
		return nil, models.Invalid("chain is required")
	}
	if err := validateChain(chain); err != nil {
		return nil, err
	}

	endpoint := "/api/transactions/status/" + client.PathEscape(txHash)
	response, err := client.Fetch[models.TransactionStatusResponse](ctx, s.client, http.MethodGet, endpoint, client.Params{"chain": string(chain)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get status of %s: %w", txHash, err)
	}
	if response == nil {
		return nil, fmt.Errorf("failed to get status of %s: empty response", txHash)
	}
	return response, nil
}

// GetHistory lists the agent's transactions, newest first as the server orders them.
func (s *TransactionService) GetHistory(ctx context.Context, opts models.HistoryOptions) ([]models.TransactionStatus, error) {
	params := client.Params{"agentId": s.agentID}
	if opts.Limit != nil {
		params["limit"] = strconv.Itoa(*opts.Limit)
	}
	if opts.Offset != nil {
		params["offset"] = strconv.Itoa(*opts.Offset)
	}

	response, err := client.Fetch[models.TransactionHistoryResponse](ctx, s.client, http.MethodGet, "/api/transactions", params, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	if response == nil {
		return []models.TransactionStatus{}, nil
	}

	history := make([]models.TransactionStatus, 0, len(response.Items))
	for _, item := range response.Items {
		txHash := ""
		if item.TxHash != nil {
			txHash = *item.TxHash
		}
		history = append(history, models.TransactionStatus{
			TxHash: txHash,
			Status: models.TxStatus(item.TxStatus),
		})
	}
	return history, nil
}

func submit(ctx context.Context, c *client.APIClient, endpoint string, payload interface{}) (*models.SubmitTransaction, error) {
	response, err := client.Fetch[models.SubmitTransaction](ctx, c, http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return nil, err
	}
	if response == nil || response.TransactionHash == "" {
		return nil, models.Invalid("transfer response is missing a transaction hash")
	}
	return response, nil
}

// toTransactionResult maps pending and submitted to pending and everything else to confirmed.
// Failed submissions arrive as API errors.
func toTransactionResult(submitted *models.SubmitTransaction, chainID int64) *models.TransactionResult {
	status := models.TxStatusConfirmed
	if submitted.Status == "pending" || submitted.Status == "submitted" {
		status = models.TxStatusPending
	}
	return &models.TransactionResult{
		TxHash:      submitted.TransactionHash,
		Status:      status,
		ExplorerURL: submitted.ExplorerURL,
		ChainID:     chainID,
	}
}

func validateTransfer(req models.TransferRequest) error {
	if err := validateChain(req.Chain); err != nil {
		return err
	}
	if !req.Currency.Valid() {
		return models.Invalid("unknown currency: %s", req.Currency)
	}
	if !models.IsAddress(req.To) {
		return models.Invalid("invalid recipient address %q", req.To)
	}
	if !models.ValidAddressFor(req.Chain, req.To) {
		return models.Invalid("address %s is not valid on %s", req.To, req.Chain)
	}
	return validateAmount("amount", req.Amount)
}

func validateSwap(req models.SwapRequest) error {
	if !req.Chain.IsSolana() {
		return models.Invalid("swaps are only supported on Solana chains, got %s", req.Chain)
	}
	if req.From == "" || req.To == "" {
		return models.Invalid("swap needs both an input and an output token")
	}
	if err := validateAmount("amount", req.Amount); err != nil {
		return err
	}
	if req.SlippageBps != nil && (*req.SlippageBps < 0 || *req.SlippageBps > maxSlippageBps) {
		return models.Invalid("slippage must be between 0 and %d bps, got %d", maxSlippageBps, *req.SlippageBps)
	}
	return nil
}
