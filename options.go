package spongewallet

import (
	"net/http"

	"github.com/paysponge/spongewallet-go/auth"
	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/internal/storage"
	"github.com/paysponge/spongewallet-go/models"
)

// CredentialStore persists the agent session between runs.
type CredentialStore interface {
	auth.CredentialSaver
	Load() *models.Credentials
}

// Option customizes Connect, ConnectAdmin and NewAdmin.
type Option func(*options)

type options struct {
	store      CredentialStore
	httpClient *http.Client
	flow       []auth.Option
}

// WithCredentialStore replaces the ~/.spongewallet credentials file.
func WithCredentialStore(store CredentialStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithHTTPClient sends every request through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithDeviceFlowOptions configures the interactive login, e.g. its presenter.
func WithDeviceFlowOptions(opts ...auth.Option) Option {
	return func(o *options) {
		o.flow = append(o.flow, opts...)
	}
}

func buildOptions(cfg *config.Config, opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		store, err := storage.NewFileStore(cfg.CredentialsDir)
		if err != nil {
			return nil, err
		}
		o.store = store
	}
	return o, nil
}

func (o *options) newClient(cfg *config.Config) *client.APIClient {
	c := client.NewAPIClient(cfg)
	if o.httpClient != nil {
		c = c.WithHTTPClient(o.httpClient)
	}
	return c
}
