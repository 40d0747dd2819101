package calendar

import (
	"encoding/json"
	"fmt"
	"os"

	"adhhak/models"
)

// TokenStore persists the OAuth credential across process restarts. Save
// failures are advisory: on ephemeral filesystems a lost token file only
// costs an extra refresh on the next start.
type TokenStore interface {
	// Load returns the stored credential, or nil when none exists. A
	// returned error still means "no stored credential"; it only carries
	// the reason for logging.
	Load() (*models.Credential, error)
	Save(cred *models.Credential) error
}

// FileTokenStore keeps the credential as JSON in a single well-known
// file, the same layout the oauth-setup tool writes.
type FileTokenStore struct {
	Path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	if path == "" {
		path = "token.json"
	}
	return &FileTokenStore{Path: path}
}

func (s *FileTokenStore) Load() (*models.Credential, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read token file %s: %w", s.Path, err)
	}
	var cred models.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", s.Path, err)
	}
	return &cred, nil
}

func (s *FileTokenStore) Save(cred *models.Credential) error {
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("write token file %s: %w", s.Path, err)
	}
	return nil
}
