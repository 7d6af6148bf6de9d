package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/paysponge/spongewallet-go/internal/logger"
	"github.com/paysponge/spongewallet-go/models"
)

const (
	appDirName          = ".spongewallet"
	credentialsFileName = "credentials.json"
)

// ErrNotLoggedIn means no usable credentials are stored.
var ErrNotLoggedIn = errors.New("not logged in")

// GetAppDataDir returns the application data directory
func GetAppDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, appDirName), nil
}

// FileStore keeps one credentials record in a JSON file.
type FileStore struct {
	dir string
}

// NewFileStore stores credentials under dir, or ~/.spongewallet when dir is empty.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		appDataDir, err := GetAppDataDir()
		if err != nil {
			return nil, err
		}
		dir = appDataDir
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the credentials file.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the credentials file location.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, credentialsFileName)
}

// Save writes the credentials, creating the directory owner-only.
func (s *FileStore) Save(creds *models.Credentials) error {
	if err := validateCredentials(creds); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.Path(), jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(s.Path(), 0600); err != nil {
		return fmt.Errorf("failed to restrict credentials file: %w", err)
	}

	logger.Debug("Saved credentials for agent %s to %s", creds.AgentID, s.Path())
	return nil
}

// Load returns the stored credentials, or nil when none are usable.
// A corrupt or invalid file is logged and treated as absent.
func (s *FileStore) Load() *models.Credentials {
	filePath := s.Path()
	if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
		return nil
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		logger.Warn("Failed to read credentials file %s: %v", filePath, err)
		return nil
	}

	var creds models.Credentials
	if err := json.Unmarshal(fileData, &creds); err != nil {
		logger.Warn("Invalid credentials file %s: %v", filePath, err)
		return nil
	}

	if err := validateCredentials(&creds); err != nil {
		logger.Warn("Invalid credentials file %s: %v", filePath, err)
		return nil
	}

	return &creds
}

// Delete removes the credentials file. A missing file is not an error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials file: %w", err)
	}
	return nil
}

// Require is Load for callers that cannot continue without a session.
func (s *FileStore) Require() (*models.Credentials, error) {
	creds := s.Load()
	if creds == nil {
		return nil, fmt.Errorf("%w: run `spongewallet login` to authenticate", ErrNotLoggedIn)
	}
	return creds, nil
}

// Exists reports whether usable credentials are stored.
func (s *FileStore) Exists() bool {
	return s.Load() != nil
}

// APIKey returns SPONGE_API_KEY when set, then the stored key.
func (s *FileStore) APIKey() string {
	if key := os.Getenv("SPONGE_API_KEY"); key != "" {
		return key
	}
	if creds := s.Load(); creds != nil {
		return creds.APIKey
	}
	return ""
}

func validateCredentials(creds *models.Credentials) error {
	if creds == nil {
		return models.Invalid("credentials are empty")
	}
	if creds.APIKey == "" {
		return models.Invalid("credentials are missing an API key")
	}
	if _, err := uuid.Parse(creds.AgentID); err != nil {
		return models.Invalid("credentials agent ID must be a UUID, got %q", creds.AgentID)
	}
	if creds.CreatedAt.IsZero() {
		return models.Invalid("credentials are missing createdAt")
	}
	return nil
}
