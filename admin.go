package spongewallet

import (
	"context"
	"errors"
	"os"

	"github.com/paysponge/spongewallet-go/auth"
	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/models"
	"github.com/paysponge/spongewallet-go/services"
)

// MasterKeyEnv holds a master key for ConnectAdmin.
const MasterKeyEnv = "SPONGE_MASTER_KEY"

// Admin manages a user's agents with a master key.
type Admin struct {
	client *client.APIClient
	agents *services.AgentService
}

// ConnectAdmin authenticates with cfg.APIKey, then SPONGE_MASTER_KEY, then a
// device-flow login for a master key. Master keys are never written to disk.
func ConnectAdmin(ctx context.Context, cfg *config.Config, opts ...Option) (*Admin, error) {
	resolved, err := resolveAdminConfig(cfg)
	if err != nil {
		return nil, err
	}
	if resolved.APIKey != "" {
		return NewAdmin(resolved, opts...)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	token, err := auth.NewDeviceFlow(o.newClient(resolved), nil, o.flow...).Run(ctx, auth.LoginOptions{
		KeyType:   models.KeyTypeMaster,
		NoBrowser: resolved.NoBrowser,
	})
	if err != nil {
		return nil, err
	}

	resolved.APIKey = token.APIKey
	return NewAdmin(resolved, opts...)
}

// NewAdmin wraps an existing master key.
func NewAdmin(cfg *config.Config, opts ...Option) (*Admin, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("a master API key is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	c := o.newClient(cfg)

	return &Admin{
		client: c,
		agents: services.NewAgentService(c),
	}, nil
}

// resolveAdminConfig applies the environment without letting SPONGE_API_KEY,
// an agent key, stand in for the master key.
func resolveAdminConfig(cfg *config.Config) (*config.Config, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	resolved := *cfg
	explicitKey := resolved.APIKey
	resolved.LoadFromEnvironment()
	resolved.APIKey = explicitKey
	if resolved.APIKey == "" {
		resolved.APIKey = os.Getenv(MasterKeyEnv)
	}
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return &resolved, nil
}

// CreateAgent creates an agent and returns it with its own API key.
func (a *Admin) CreateAgent(ctx context.Context, req models.CreateAgentRequest) (*models.CreatedAgent, error) {
	return a.agents.Create(ctx, req)
}

func (a *Admin) ListAgents(ctx context.Context) ([]models.Agent, error) {
	return a.agents.List(ctx)
}

func (a *Admin) DeleteAgent(ctx context.Context, agentID string) error {
	return a.agents.Delete(ctx, agentID)
}

// CreateWallet creates an agent and opens a session authenticated as it.
func (a *Admin) CreateWallet(ctx context.Context, req models.CreateAgentRequest) (*Wallet, error) {
	created, err := a.CreateAgent(ctx, req)
	if err != nil {
		return nil, err
	}
	return newWallet(a.client.WithAPIKey(created.APIKey), created.Agent.ID), nil
}
