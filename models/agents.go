package models

import "time"

type AgentStatus string

const (
	AgentStatusActive    AgentStatus = "active"
	AgentStatusPaused    AgentStatus = "paused"
	AgentStatusSuspended AgentStatus = "suspended"
)

// Agent owns one wallet per supported chain.
type Agent struct {
	ID                   string      `json:"id"`
	Name                 string      `json:"name"`
	Description          *string     `json:"description"`
	Status               AgentStatus `json:"status"`
	DailySpendingLimit   *string     `json:"dailySpendingLimit"`
	WeeklySpendingLimit  *string     `json:"weeklySpendingLimit"`
	MonthlySpendingLimit *string     `json:"monthlySpendingLimit"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

type CreateAgentRequest struct {
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	DailySpendingLimit   string `json:"dailySpendingLimit,omitempty"`
	WeeklySpendingLimit  string `json:"weeklySpendingLimit,omitempty"`
	MonthlySpendingLimit string `json:"monthlySpendingLimit,omitempty"`
}

// CreateAgentResponse is the wire shape; MCPAPIKey belongs to the new agent.
type CreateAgentResponse struct {
	Agent     Agent  `json:"agent"`
	MCPAPIKey string `json:"mcpApiKey"`
}

// CreatedAgent is returned to callers after creating an agent.
type CreatedAgent struct {
	Agent  Agent
	APIKey string
}

// UpdateAgentRequest is a partial update; nil fields are left unchanged.
type UpdateAgentRequest struct {
	Name                 *string `json:"name,omitempty"`
	Description          *string `json:"description,omitempty"`
	DailySpendingLimit   *string `json:"dailySpendingLimit,omitempty"`
	WeeklySpendingLimit  *string `json:"weeklySpendingLimit,omitempty"`
	MonthlySpendingLimit *string `json:"monthlySpendingLimit,omitempty"`
}
