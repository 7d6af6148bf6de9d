package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/models"
)

// AgentService manages agents owned by the authenticated user
type AgentService struct {
	client *client.APIClient
}

// NewAgentService creates a new agent service
func NewAgentService(client *client.APIClient) *AgentService {
	return &AgentService{
		client: client,
	}
}

// Create creates an agent. The returned API key belongs to the new agent.
func (s *AgentService) Create(ctx context.Context, req models.CreateAgentRequest) (*models.CreatedAgent, error) {
	if err := validateCreateAgent(req); err != nil {
		return nil, err
	}

	response, err := client.Fetch[models.CreateAgentResponse](ctx, s.client, http.MethodPost, "/api/agents", nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	if response == nil {
		return nil, fmt.Errorf("failed to create agent: empty response")
	}
	if err := validateAgent(&response.Agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	if response.MCPAPIKey == "" {
		return nil, fmt.Errorf("failed to create agent: %w", models.Invalid("response is missing the agent API key"))
	}

	logger.Debug("Created agent %s (%s)", response.Agent.Name, response.Agent.ID)
	return &models.CreatedAgent{Agent: response.Agent, APIKey: response.MCPAPIKey}, nil
}

// List returns every agent of the user
func (s *AgentService) List(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	if err := s.client.Get(ctx, "/api/agents", nil, &agents); err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	for i := range agents {
		if err := validateAgent(&agents[i]); err != nil {
			return nil, fmt.Errorf("failed to list agents: %w", err)
		}
	}
	return agents, nil
}

// Get retrieves one agent by id
func (s *AgentService) Get(ctx context.Context, agentID string) (*models.Agent, error) {
	if err := validateUUID("agent ID", agentID); err != nil {
		return nil, err
	}
	return s.fetchAgent(ctx, "/api/agents/"+client.PathEscape(agentID))
}

// GetCurrent resolves the agent behind the API key in use
func (s *AgentService) GetCurrent(ctx context.Context) (*models.Agent, error) {
	return s.fetchAgent(ctx, "/api/agents/me")
}

// Update applies a partial update
func (s *AgentService) Update(ctx context.Context, agentID string, req models.UpdateAgentRequest) (*models.Agent, error) {
	if err := validateUUID("agent ID", agentID); err != nil {
		return nil, err
	}
	if err := validateUpdateAgent(req); err != nil {
		return nil, err
	}

	agent, err := client.Fetch[models.Agent](ctx, s.client, http.MethodPut, "/api/agents/"+client.PathEscape(agentID), nil, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update agent %s: %w", agentID, err)
	}
	if agent == nil {
		return nil, fmt.Errorf("failed to update agent %s: empty response", agentID)
	}
	if err := validateAgent(agent); err != nil {
		return nil, fmt.Errorf("failed to update agent %s: %w", agentID, err)
	}
	return agent, nil
}

// Delete removes an agent
func (s *AgentService) Delete(ctx context.Context, agentID string) error {
	if err := validateUUID("agent ID", agentID); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, "/api/agents/"+client.PathEscape(agentID), nil); err != nil {
		return fmt.Errorf("failed to delete agent %s: %w", agentID, err)
	}
	return nil
}

func (s *AgentService) fetchAgent(ctx context.Context, endpoint string) (*models.Agent, error) {
	agent, err := client.Fetch[models.Agent](ctx, s.client, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	if agent == nil {
		return nil, fmt.Errorf("failed to get agent: empty response")
	}
	if err := validateAgent(agent); err != nil {
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return agent, nil
}

func validateAgentName(name string) error {
	if len(name) < 1 || len(name) > 255 {
		return models.Invalid("agent name must be 1-255 characters, got %d", len(name))
	}
	return nil
}

// validateLimit accepts an empty limit or a non-negative decimal.
func validateLimit(field, limit string) error {
	if limit == "" {
		return nil
	}
	d, err := decimal.NewFromString(limit)
	if err != nil || d.IsNegative() {
		return models.Invalid("%s must be a non-negative decimal, got %q", field, limit)
	}
	return nil
}

func validateCreateAgent(req models.CreateAgentRequest) error {
	if err := validateAgentName(req.Name); err != nil {
		return err
	}
	if err := validateLimit("daily spending limit", req.DailySpendingLimit); err != nil {
		return err
	}
	if err := validateLimit("weekly spending limit", req.WeeklySpendingLimit); err != nil {
		return err
	}
	return validateLimit("monthly spending limit", req.MonthlySpendingLimit)
}

func validateUpdateAgent(req models.UpdateAgentRequest) error {
	if req.Name != nil {
		if err := validateAgentName(*req.Name); err != nil {
			return err
		}
	}
	limits := map[string]*string{
		"daily spending limit":   req.DailySpendingLimit,
		"weekly spending limit":  req.WeeklySpendingLimit,
		"monthly spending limit": req.MonthlySpendingLimit,
	}
	for field, limit := range limits {
		if limit == nil {
			continue
		}
		if err := validateLimit(field, *limit); err != nil {
			return err
		}
	}
	return nil
}

func validateAgent(agent *models.Agent) error {
	if err := validateUUID("agent ID", agent.ID); err != nil {
		return err
	}
	switch agent.Status {
	case models.AgentStatusActive, models.AgentStatusPaused, models.AgentStatusSuspended:
	default:
		return models.Invalid("agent %s has unknown status %q", agent.ID, agent.Status)
	}
	return nil
}
