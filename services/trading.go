package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/models"
)

const maxPlanSteps = 20

var hyperliquidActions = map[string]bool{
	"status": true, "order": true, "cancel": true, "cancel_all": true,
	"set_leverage": true, "positions": true, "orders": true, "fills": true,
	"markets": true, "ticker": true, "orderbook": true, "funding": true,
	"withdraw": true, "transfer": true,
}

// TradingService covers Hyperliquid, multi-step plans and trade proposals.
// Their response shapes are owned by the server and returned raw.
type TradingService struct {
	client *client.APIClient
}

// NewTradingService creates a new trading service
func NewTradingService(client *client.APIClient) *TradingService {
	return &TradingService{
		client: client,
	}
}

// Hyperliquid runs one Hyperliquid action. args must contain "action".
func (s *TradingService) Hyperliquid(ctx context.Context, args map[string]any) (json.RawMessage, error) {
	action, _ := args["action"].(string)
	if !hyperliquidActions[action] {
		return nil, models.Invalid("unknown hyperliquid action %q", action)
	}
	return s.post(ctx, "/api/hyperliquid", args, "run hyperliquid "+action)
}

// SubmitPlan submits a multi-step plan for user review
func (s *TradingService) SubmitPlan(ctx context.Context, plan models.PlanRequest) (json.RawMessage, error) {
	if plan.Title == "" {
		return nil, models.Invalid("plan title is required")
	}
	if len(plan.Steps) < 1 || len(plan.Steps) > maxPlanSteps {
		return nil, models.Invalid("plan must have 1-%d steps, got %d", maxPlanSteps, len(plan.Steps))
	}
	for i, step := range plan.Steps {
		switch step.Type {
		case "swap", "transfer", "bridge":
		default:
			return nil, models.Invalid("step %d has unknown type %q", i+1, step.Type)
		}
		if step.Amount == "" || step.Reason == "" {
			return nil, models.Invalid("step %d needs an amount and a reason", i+1)
		}
	}
	return s.post(ctx, "/api/plans/submit", plan, "submit plan")
}

// ApprovePlan approves and executes a submitted plan
func (s *TradingService) ApprovePlan(ctx context.Context, planID string) (json.RawMessage, error) {
	if planID == "" {
		return nil, models.Invalid("plan_id is required")
	}
	return s.post(ctx, "/api/plans/approve", map[string]string{"plan_id": planID}, "approve plan "+planID)
}

// ProposeTrade creates a pending single-swap proposal
func (s *TradingService) ProposeTrade(ctx context.Context, trade models.TradeProposal) (json.RawMessage, error) {
	if trade.InputToken == "" || trade.OutputToken == "" {
		return nil, models.Invalid("trade needs both an input and an output token")
	}
	if trade.Reason == "" {
		return nil, models.Invalid("trade reason is required")
	}
	if err := validateAmount("amount", trade.Amount); err != nil {
		return nil, err
	}
	return s.post(ctx, "/api/trades/propose", trade, "propose trade")
}

func (s *TradingService) post(ctx context.Context, endpoint string, body interface{}, what string) (json.RawMessage, error) {
	var raw json.RawMessage
	ok, err := s.client.Do(ctx, http.MethodPost, endpoint, nil, body, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", what, err)
	}
	if !ok {
		return nil, nil
	}
	return raw, nil
}
