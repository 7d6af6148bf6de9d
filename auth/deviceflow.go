package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/paysponge/spongewallet-go/client"
	"github.com/paysponge/spongewallet-go/config"
	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/models"
)

const (
	ClientID            = "spongewallet-sdk"
	Scope               = "wallet:read wallet:write transaction:sign"
	DeviceCodeGrantType = "urn:ietf:params:oauth:grant-type:device_code"

	// SlowDownIncrement is added to the poll interval on every slow_down.
	SlowDownIncrement = 5 * time.Second

	defaultPollInterval = 5 * time.Second
)

// Token endpoint error codes.
const (
	codeAuthorizationPending = "authorization_pending"
	codeSlowDown             = "slow_down"
	codeAccessDenied         = "access_denied"
	codeExpiredToken         = "expired_token"
)

var (
	ErrAccessDenied = errors.New("access denied by user")
	ErrExpiredToken = errors.New("device code expired, please try again")
	ErrDeviceFlow   = errors.New("authentication failed")
)

// State is a step of the device authorization handshake.
type State string

const (
	StateInit             State = "init"
	StateCodeRequested    State = "code_requested"
	StateAwaitingApproval State = "awaiting_approval"
	StateSucceeded        State = "succeeded"
	StateDenied           State = "denied"
	StateExpired          State = "expired"
	StateFailed           State = "failed"
)

// CredentialSaver persists the session after an agent login.
type CredentialSaver interface {
	Save(creds *models.Credentials) error
	Path() string
}

// LoginOptions are hints sent with the device authorization request.
type LoginOptions struct {
	Testnet   bool
	AgentName string
	KeyType   models.KeyType
	NoBrowser bool
}

// DeviceFlow runs one device authorization login. It is single-shot: create a
// new DeviceFlow for every login.
type DeviceFlow struct {
	client    *client.APIClient
	store     CredentialSaver
	clipboard Clipboard
	browser   BrowserOpener
	presenter Presenter
	clock     Clock
	state     State
}

type Option func(*DeviceFlow)

func WithClipboard(c Clipboard) Option {
	return func(f *DeviceFlow) { f.clipboard = c }
}

func WithBrowserOpener(b BrowserOpener) Option {
	return func(f *DeviceFlow) { f.browser = b }
}

func WithPresenter(p Presenter) Option {
	return func(f *DeviceFlow) { f.presenter = p }
}

func WithClock(c Clock) Option {
	return func(f *DeviceFlow) { f.clock = c }
}

// NewDeviceFlow prepares a login against the client's base URL. The client's
// API key is not sent. store may be nil to skip persistence.
func NewDeviceFlow(c *client.APIClient, store CredentialSaver, opts ...Option) *DeviceFlow {
	f := &DeviceFlow{
		client:    c.WithAPIKey(""),
		store:     store,
		clipboard: SystemClipboard{},
		browser:   SystemBrowser{},
		presenter: NopPresenter{},
		clock:     realClock{},
		state:     StateInit,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns where the flow currently is.
func (f *DeviceFlow) State() State {
	return f.state
}

// Run requests a device code, shows it, polls until the user approves and
// saves agent credentials.
func (f *DeviceFlow) Run(ctx context.Context, opts LoginOptions) (*models.TokenResponse, error) {
	if f.state != StateInit {
		return nil, fmt.Errorf("%w: device flow already used", ErrDeviceFlow)
	}

	code, err := f.requestDeviceCode(ctx, opts)
	if err != nil {
		f.state = StateFailed
		return nil, err
	}
	f.state = StateCodeRequested

	f.present(code, opts)
	f.state = StateAwaitingApproval

	token, err := f.pollForToken(ctx, code)
	if err != nil {
		return nil, err
	}
	f.state = StateSucceeded

	savedPath := ""
	if token.AgentID != nil && *token.AgentID != "" && f.store != nil {
		creds := &models.Credentials{
			APIKey:    token.APIKey,
			AgentID:   *token.AgentID,
			Testnet:   opts.Testnet,
			CreatedAt: time.Now().UTC(),
		}
		if f.client.BaseURL() != config.DefaultBaseURL {
			creds.BaseURL = f.client.BaseURL()
		}
		if err := f.store.Save(creds); err != nil {
			return nil, fmt.Errorf("failed to save credentials: %w", err)
		}
		savedPath = f.store.Path()
	}

	f.presenter.Success(token, opts.KeyType == models.KeyTypeMaster, savedPath)
	return token, nil
}

func (f *DeviceFlow) requestDeviceCode(ctx context.Context, opts LoginOptions) (*models.DeviceCodeResponse, error) {
	req := models.DeviceCodeRequest{
		ClientID:  ClientID,
		Scope:     Scope,
		Testnet:   opts.Testnet,
		AgentName: opts.AgentName,
		KeyType:   opts.KeyType,
	}

	code, err := client.Fetch[models.DeviceCodeResponse](ctx, f.client, http.MethodPost, "/api/oauth/device/authorization", nil, req)
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok {
			return nil, fmt.Errorf("%w: failed to start device flow: %s", ErrDeviceFlow, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: failed to start device flow: %v", ErrDeviceFlow, err)
	}
	if code == nil {
		return nil, fmt.Errorf("%w: failed to start device flow: empty response", ErrDeviceFlow)
	}
	if err := validateDeviceCode(code); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceFlow, err)
	}
	return code, nil
}

// present shows the code, then tries the clipboard and browser. Neither may fail the login.
func (f *DeviceFlow) present(code *models.DeviceCodeResponse, opts LoginOptions) {
	f.presenter.DeviceCode(code)

	if f.clipboard != nil {
		if err := f.clipboard.WriteAll(code.UserCode); err != nil {
			logger.Debug("Clipboard unavailable: %v", err)
		} else {
			f.presenter.Notice("Code copied to clipboard")
		}
	}

	if !opts.NoBrowser && f.browser != nil {
		if err := f.browser.OpenURL(code.VerificationURI); err != nil {
			logger.Debug("Could not open browser: %v", err)
		} else {
			f.presenter.Notice("Opening browser...")
		}
	}

	f.presenter.Notice("Waiting for approval...")
}

func (f *DeviceFlow) pollForToken(ctx context.Context, code *models.DeviceCodeResponse) (*models.TokenResponse, error) {
	deadline := f.clock.Now().Add(time.Duration(code.ExpiresIn) * time.Second)
	interval := time.Duration(code.Interval) * time.Second
	if interval <= 0 {
		interval = defaultPollInterval
	}

	req := models.TokenRequest{
		GrantType:  DeviceCodeGrantType,
		DeviceCode: code.DeviceCode,
		ClientID:   ClientID,
	}

	for attempt := 1; f.clock.Now().Before(deadline); attempt++ {
		if err := f.clock.Sleep(ctx, interval); err != nil {
			f.state = StateFailed
			return nil, err
		}

		token, err := client.Fetch[models.TokenResponse](ctx, f.client, http.MethodPost, "/api/oauth/device/token", nil, req)
		if err == nil {
			if token == nil {
				f.state = StateFailed
				return nil, fmt.Errorf("%w: empty token response", ErrDeviceFlow)
			}
			if err := validateToken(token); err != nil {
				f.state = StateFailed
				return nil, fmt.Errorf("%w: %v", ErrDeviceFlow, err)
			}
			return token, nil
		}

		apiErr, ok := client.AsAPIError(err)
		if !ok {
			f.state = StateFailed
			return nil, fmt.Errorf("%w: network error during authentication: %v", ErrDeviceFlow, err)
		}

		switch apiErr.ErrorCode {
		case codeAuthorizationPending:
			f.presenter.Pending(attempt)
		case codeSlowDown:
			interval += SlowDownIncrement
			logger.Debug("Token endpoint asked to slow down, polling every %v", interval)
		case codeAccessDenied:
			f.state = StateDenied
			return nil, ErrAccessDenied
		case codeExpiredToken:
			f.state = StateExpired
			return nil, ErrExpiredToken
		default:
			f.state = StateFailed
			return nil, fmt.Errorf("%w: %s", ErrDeviceFlow, apiErr.Description())
		}
	}

	f.state = StateExpired
	return nil, ErrExpiredToken
}

func validateDeviceCode(code *models.DeviceCodeResponse) error {
	if code.DeviceCode == "" || code.UserCode == "" {
		return models.Invalid("device code response is missing codes")
	}
	u, err := url.Parse(code.VerificationURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return models.Invalid("invalid verification URI %q", code.VerificationURI)
	}
	if code.ExpiresIn <= 0 {
		return models.Invalid("device code expiry must be positive, got %d", code.ExpiresIn)
	}
	return nil
}

func validateToken(token *models.TokenResponse) error {
	if token.AccessToken == "" {
		return models.Invalid("token response is missing an access token")
	}
	if token.APIKey == "" {
		return models.Invalid("token response is missing an API key")
	}
	if token.TokenType != "Bearer" {
		return models.Invalid("unexpected token type %q", token.TokenType)
	}
	if token.AgentID != nil && *token.AgentID != "" {
		if _, err := uuid.Parse(*token.AgentID); err != nil {
			return models.Invalid("token agent ID must be a UUID, got %q", *token.AgentID)
		}
	}
	switch token.KeyType {
	case "", models.KeyTypeAgent, models.KeyTypeMaster:
	default:
		return models.Invalid("unknown key type %q", token.KeyType)
	}
	return nil
}
