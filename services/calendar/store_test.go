package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adhhak/models"
)

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileTokenStore(path)

	cred := &models.Credential{
		AccessToken:  "ya29.access",
		RefreshToken: "1//refresh",
		TokenType:    "Bearer",
		Scope:        CalendarScope,
	}
	cred.SetExpiry(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	require.NoError(t, store.Save(cred))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cred, loaded)
}

func TestFileTokenStore_MissingFileIsNotAnError(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "absent.json"))

	cred, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, cred)
}

func TestFileTokenStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileTokenStore(path)
	cred, err := store.Load()
	assert.Error(t, err)
	assert.Nil(t, cred)
}

func TestFileTokenStore_FieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileTokenStore(path)

	cred := &models.Credential{
		AccessToken:  "a",
		RefreshToken: "r",
		TokenType:    "Bearer",
		Scope:        CalendarScope,
		ExpiryDate:   1772000000000,
	}
	require.NoError(t, store.Save(cred))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"access_token"`)
	assert.Contains(t, string(data), `"refresh_token"`)
	assert.Contains(t, string(data), `"expiry_date": 1772000000000`)
}

func TestNewFileTokenStore_DefaultPath(t *testing.T) {
	assert.Equal(t, "token.json", NewFileTokenStore("").Path)
}
