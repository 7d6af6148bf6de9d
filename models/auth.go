package models

import "time"

type KeyType string

const (
	KeyTypeAgent  KeyType = "agent"
	KeyTypeMaster KeyType = "master"
)

type DeviceCodeRequest struct {
	ClientID  string  `json:"clientId"`
	Scope     string  `json:"scope"`
	Testnet   bool    `json:"testnet,omitempty"`
	AgentName string  `json:"agentName,omitempty"`
	KeyType   KeyType `json:"keyType,omitempty"`
}

type DeviceCodeResponse struct {
	DeviceCode      string `json:"deviceCode"`
	UserCode        string `json:"userCode"`
	VerificationURI string `json:"verificationUri"`
	ExpiresIn       int    `json:"expiresIn"`
	Interval        int    `json:"interval"`
}

type TokenRequest struct {
	GrantType  string `json:"grantType"`
	DeviceCode string `json:"deviceCode"`
	ClientID   string `json:"clientId"`
}

type TokenResponse struct {
	AccessToken  string  `json:"accessToken"`
	TokenType    string  `json:"tokenType"`
	ExpiresIn    *int    `json:"expiresIn,omitempty"`
	RefreshToken string  `json:"refreshToken,omitempty"`
	AgentID      *string `json:"agentId,omitempty"`
	APIKey       string  `json:"apiKey"`
	KeyType      KeyType `json:"keyType,omitempty"`
}

// Credentials is the locally persisted session.
type Credentials struct {
	APIKey    string    `json:"apiKey"`
	AgentID   string    `json:"agentId"`
	AgentName string    `json:"agentName,omitempty"`
	Testnet   bool      `json:"testnet,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	BaseURL   string    `json:"baseUrl,omitempty"`
}
