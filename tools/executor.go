package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/models"
	"github.com/paysponge/spongewallet-go/services"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is what a tool call hands back to the model. Exactly one of Data and
// Error is meaningful, selected by Status.
type Result struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

type handler func(e *Executor, ctx context.Context, args Args) (interface{}, error)

var handlers = map[ToolName]handler{
	GetBalance:            (*Executor).getBalance,
	EVMTransfer:           (*Executor).evmTransfer,
	SolanaTransfer:        (*Executor).solanaTransfer,
	SolanaSwap:            (*Executor).solanaSwap,
	GetSolanaTokens:       (*Executor).getSolanaTokens,
	SearchSolanaTokens:    (*Executor).searchSolanaTokens,
	GetTransactionStatus:  (*Executor).getTransactionStatus,
	GetTransactionHistory: (*Executor).getTransactionHistory,
	RequestFunding:        (*Executor).requestFunding,
	WithdrawToMainWallet:  (*Executor).withdrawToMainWallet,
	CreateCryptoOnramp:    (*Executor).createCryptoOnramp,
	ClaimSignupBonus:      (*Executor).claimSignupBonus,
	Sponge:                (*Executor).sponge,
	CreateX402Payment:     (*Executor).createX402Payment,
	Hyperliquid:           (*Executor).hyperliquid,
	StoreKey:              (*Executor).storeKey,
	GetKeyList:            (*Executor).getKeyList,
	GetKeyValue:           (*Executor).getKeyValue,
	SubmitPlan:            (*Executor).submitPlan,
	ApprovePlan:           (*Executor).approvePlan,
	ProposeTrade:          (*Executor).proposeTrade,
}

// Executor runs catalog tools for one agent against the REST API.
type Executor struct {
	public       *services.PublicToolsService
	transactions *services.TransactionService
	trading      *services.TradingService
	keys         *services.KeyService
}

// NewExecutor creates an executor authenticated by c and bound to agentID
func NewExecutor(c *client.APIClient, agentID string) *Executor {
	return &Executor{
		public:       services.NewPublicToolsService(c),
		transactions: services.NewTransactionService(c, agentID),
		trading:      services.NewTradingService(c),
		keys:         services.NewKeyService(c),
	}
}

// Definitions returns the tool catalog to advertise to a model.
func (e *Executor) Definitions() []ToolDefinition {
	return Definitions()
}

// Execute runs one tool. Every failure, including an unknown name, comes back
// as an error Result rather than a Go error.
func (e *Executor) Execute(ctx context.Context, name string, input interface{}) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Tool %s panicked: %v", name, r)
			result = Result{Status: StatusError, Error: fmt.Sprintf("tool %s failed: %v", name, r)}
		}
	}()

	data, err := e.call(ctx, name, input)
	if err != nil {
		logger.Debug("Tool %s failed: %v", name, err)
		return Result{Status: StatusError, Error: err.Error()}
	}
	return Result{Status: StatusSuccess, Data: data}
}

func (e *Executor) call(ctx context.Context, name string, input interface{}) (json.RawMessage, error) {
	def, ok := Lookup(name)
	if !ok {
		return nil, errors.New("Unknown tool: " + name)
	}
	run, ok := handlers[def.Name]
	if !ok {
		return nil, fmt.Errorf("tool not implemented: %s", name)
	}

	args, err := parseArgs(input)
	if err != nil {
		return nil, err
	}

	logger.Debug("Executing tool %s", name)
	result, err := run(e, ctx, args)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s result: %w", name, err)
	}
	return data, nil
}

type transferArgs struct {
	Chain    models.Chain    `json:"chain"`
	To       string          `json:"to"`
	Amount   Number          `json:"amount"`
	Currency models.Currency `json:"currency"`
}

func (a transferArgs) request() models.TransferRequest {
	return models.TransferRequest{Chain: a.Chain, To: a.To, Amount: a.Amount.String(), Currency: a.Currency}
}

func (e *Executor) getBalance(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		Chain         string    `json:"chain"`
		AllowedChains ChainList `json:"allowedChains"`
		OnlyUSDC      Flag      `json:"onlyUsdc"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.public.GetDetailedBalances(ctx, models.BalanceQuery{
		Chain:         in.Chain,
		AllowedChains: in.AllowedChains,
		OnlyUSDC:      bool(in.OnlyUSDC),
	})
}

func (e *Executor) evmTransfer(ctx context.Context, args Args) (interface{}, error) {
	var in transferArgs
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.public.EVMTransfer(ctx, in.request())
}

func (e *Executor) solanaTransfer(ctx context.Context, args Args) (interface{}, error) {
	var in transferArgs
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.public.SolanaTransfer(ctx, in.request())
}

func (e *Executor) solanaSwap(ctx context.Context, args Args) (interface{}, error) {
	args.alias("inputToken", "input_token")
	args.alias("outputToken", "output_token")
	args.alias("slippageBps", "slippage_bps")

	var in struct {
		Chain       models.Chain `json:"chain"`
		InputToken  string       `json:"inputToken"`
		OutputToken string       `json:"outputToken"`
		Amount      Number       `json:"amount"`
		SlippageBps Number       `json:"slippageBps"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	slippage, err := in.SlippageBps.Int()
	if err != nil {
		return nil, err
	}
	return e.transactions.SwapDetails(ctx, models.SwapRequest{
		Chain:       in.Chain,
		From:        in.InputToken,
		To:          in.OutputToken,
		Amount:      in.Amount.String(),
		SlippageBps: slippage,
	})
}

func (e *Executor) getSolanaTokens(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		Chain models.Chain `json:"chain"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.public.GetSolanaTokens(ctx, in.Chain)
}

func (e *Executor) searchSolanaTokens(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		Query string `json:"query"`
		Limit Number `json:"limit"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	limit, err := in.Limit.Int()
	if err != nil {
		return nil, err
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	return e.public.SearchSolanaTokens(ctx, in.Query, n)
}

func (e *Executor) getTransactionStatus(ctx context.Context, args Args) (interface{}, error) {
	args.alias("txHash", "transaction_hash")

	var in struct {
		TxHash string       `json:"txHash"`
		Chain  models.Chain `json:"chain"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.transactions.GetStatusDetails(ctx, in.TxHash, in.Chain)
}

func (e *Executor) getTransactionHistory(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		Limit Number       `json:"limit"`
		Chain models.Chain `json:"chain"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	limit, err := in.Limit.Int()
	if err != nil {
		return nil, err
	}
	return e.public.GetTransactionHistoryDetailed(ctx, models.DetailedHistoryOptions{Limit: limit, Chain: in.Chain})
}

func (e *Executor) requestFunding(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		Amount   Number       `json:"amount"`
		Reason   string       `json:"reason"`
		Chain    models.Chain `json:"chain"`
		Currency string       `json:"currency"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.public.RequestFunding(ctx, models.FundingRequest{
		Amount:   in.Amount.String(),
		Reason:   in.Reason,
		Chain:    in.Chain,
		Currency: in.Currency,
	})
}

func (e *Executor) withdrawToMainWallet(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		Chain    models.Chain            `json:"chain"`
		Amount   Number                  `json:"amount"`
		Currency models.WithdrawCurrency `json:"currency"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.public.WithdrawToMainWallet(ctx, models.WithdrawRequest{
		Chain:    in.Chain,
		Amount:   in.Amount.String(),
		Currency: in.Currency,
	})
}

func (e *Executor) createCryptoOnramp(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		WalletAddress     string `json:"wallet_address"`
		Provider          string `json:"provider"`
		Chain             string `json:"chain"`
		FiatAmount        Number `json:"fiat_amount"`
		FiatCurrency      string `json:"fiat_currency"`
		LockWalletAddress *bool  `json:"lock_wallet_address"`
		RedirectURL       string `json:"redirect_url"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.public.CreateOnrampLink(ctx, models.OnrampRequest{
		WalletAddress:     in.WalletAddress,
		Provider:          in.Provider,
		Chain:             in.Chain,
		FiatAmount:        in.FiatAmount.String(),
		FiatCurrency:      in.FiatCurrency,
		LockWalletAddress: in.LockWalletAddress,
		RedirectURL:       in.RedirectURL,
	})
}

func (e *Executor) claimSignupBonus(ctx context.Context, _ Args) (interface{}, error) {
	return e.public.ClaimSignupBonus(ctx)
}

// sponge forwards the whole argument bag; its shape depends on the task.
func (e *Executor) sponge(ctx context.Context, args Args) (interface{}, error) {
	if task, _ := args["task"].(string); task == "" {
		return nil, models.Invalid("task is required")
	}
	return e.public.Sponge(ctx, args)
}

func (e *Executor) createX402Payment(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		Chain               models.Chain `json:"chain"`
		To                  string       `json:"to"`
		Token               string       `json:"token"`
		Amount              Number       `json:"amount"`
		Decimals            Number       `json:"decimals"`
		ValidForSeconds     Number       `json:"valid_for_seconds"`
		ResourceURL         string       `json:"resource_url"`
		ResourceDescription string       `json:"resource_description"`
		FeePayer            string       `json:"fee_payer"`
		HTTPMethod          string       `json:"http_method"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	decimals, err := in.Decimals.Int()
	if err != nil {
		return nil, err
	}
	validFor, err := in.ValidForSeconds.Int()
	if err != nil {
		return nil, err
	}
	return e.public.CreateX402Payment(ctx, models.X402PaymentRequest{
		Chain:               in.Chain,
		To:                  in.To,
		Token:               in.Token,
		Amount:              in.Amount.String(),
		Decimals:            decimals,
		ValidForSeconds:     validFor,
		ResourceURL:         in.ResourceURL,
		ResourceDescription: in.ResourceDescription,
		FeePayer:            in.FeePayer,
		HTTPMethod:          in.HTTPMethod,
	})
}

func (e *Executor) hyperliquid(ctx context.Context, args Args) (interface{}, error) {
	return e.trading.Hyperliquid(ctx, args)
}

func (e *Executor) storeKey(ctx context.Context, args Args) (interface{}, error) {
	var in models.StoreKeyRequest
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.keys.Store(ctx, in)
}

func (e *Executor) getKeyList(ctx context.Context, _ Args) (interface{}, error) {
	return e.keys.List(ctx)
}

func (e *Executor) getKeyValue(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		Service string `json:"service"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.keys.Value(ctx, in.Service)
}

func (e *Executor) submitPlan(ctx context.Context, args Args) (interface{}, error) {
	var in models.PlanRequest
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.trading.SubmitPlan(ctx, in)
}

func (e *Executor) approvePlan(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		PlanID string `json:"plan_id"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.trading.ApprovePlan(ctx, in.PlanID)
}

func (e *Executor) proposeTrade(ctx context.Context, args Args) (interface{}, error) {
	var in struct {
		InputToken  string `json:"input_token"`
		OutputToken string `json:"output_token"`
		Amount      Number `json:"amount"`
		Reason      string `json:"reason"`
	}
	if err := args.decode(&in); err != nil {
		return nil, err
	}
	return e.trading.ProposeTrade(ctx, models.TradeProposal{
		InputToken:  in.InputToken,
		OutputToken: in.OutputToken,
		Amount:      in.Amount.String(),
		Reason:      in.Reason,
	})
}
