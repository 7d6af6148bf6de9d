package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/models"
)

// KeyService stores third-party service keys for the agent, encrypted server-side
type KeyService struct {
	client *client.APIClient
}

// NewKeyService creates a new key service
func NewKeyService(client *client.APIClient) *KeyService {
	return &KeyService{
		client: client,
	}
}

// Store saves or replaces the key for a service
func (s *KeyService) Store(ctx context.Context, req models.StoreKeyRequest) (json.RawMessage, error) {
	if req.Service == "" || req.Key == "" {
		return nil, models.Invalid("service and key are required")
	}
	return s.do(ctx, http.MethodPost, "/api/agent-keys", nil, req, "store key for "+req.Service)
}

// List returns key metadata without decrypted values
func (s *KeyService) List(ctx context.Context) (json.RawMessage, error) {
	return s.do(ctx, http.MethodGet, "/api/agent-keys", nil, nil, "list keys")
}

// Value returns the decrypted key for one service
func (s *KeyService) Value(ctx context.Context, service string) (json.RawMessage, error) {
	if service == "" {
		return nil, models.Invalid("service is required")
	}
	return s.do(ctx, http.MethodGet, "/api/agent-keys/value", client.Params{"service": service}, nil, "get key for "+service)
}

func (s *KeyService) do(ctx context.Context, method, endpoint string, params client.Params, body interface{}, what string) (json.RawMessage, error) {
	var raw json.RawMessage
	ok, err := s.client.Do(ctx, method, endpoint, params, body, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", what, err)
	}
	if !ok {
		return nil, nil
	}
	return raw, nil
}
