package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"

	"adhhak/models"
)

const (
	// Lead time before actual expiry at which a token is treated as
	// already expired, so it cannot lapse mid-request.
	expiryMargin = 5 * time.Minute
	// Tighter recheck applied right before each provider call; a refresh
	// can race with expiry during a slow request.
	preCallMargin = time.Minute

	refreshTimeout = 15 * time.Second

	// CalendarScope is requested during authorization and assumed for
	// override tokens that carry no scope of their own.
	CalendarScope = "https://www.googleapis.com/auth/calendar.events"
)

// NewOAuthConfig builds the Google OAuth2 config used for token refresh
// and for the authorization-code exchange in the oauth-setup tool.
func NewOAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar",
			CalendarScope,
		},
		Endpoint: google.Endpoint,
	}
}

// Overrides are runtime-supplied credentials that take priority over the
// persisted token file.
type Overrides struct {
	AccessToken  string
	RefreshToken string
	// ExpiresIn is the override access token lifetime in seconds; zero
	// means unknown.
	ExpiresIn int
}

// CredentialManager owns the single process-wide OAuth credential. It
// keeps the access token fresh, serializes concurrent refreshes through a
// single-flight group and writes every mutation back to the TokenStore.
//
// It implements oauth2.TokenSource, so the Calendar client built on top
// of it picks up the freshest access token on every provider call.
type CredentialManager struct {
	conf      *oauth2.Config
	store     TokenStore
	overrides Overrides
	logger    *zap.Logger

	defaultLifetime time.Duration
	now             func() time.Time

	mu   sync.Mutex
	cred *models.Credential

	refreshGroup singleflight.Group
}

func NewCredentialManager(conf *oauth2.Config, store TokenStore, overrides Overrides, defaultLifetime time.Duration, logger *zap.Logger) *CredentialManager {
	if defaultLifetime <= 0 {
		defaultLifetime = 3599 * time.Second
	}
	return &CredentialManager{
		conf:            conf,
		store:           store,
		overrides:       overrides,
		logger:          logger,
		defaultLifetime: defaultLifetime,
		now:             time.Now,
	}
}

// Warmup eagerly initializes the credential so configuration problems
// show up at startup instead of on the first booking.
func (m *CredentialManager) Warmup() error {
	return m.ensureInitialized()
}

// EnsureValid guarantees the in-memory credential holds an access token
// valid for at least the safety margin, initializing, adopting override
// tokens and refreshing as needed.
func (m *CredentialManager) EnsureValid(ctx context.Context) error {
	if err := m.ensureInitialized(); err != nil {
		return &AuthError{Permanent: true, Message: "credential initialization failed", Err: err}
	}

	m.mu.Lock()
	if m.overrides.AccessToken != "" && m.overrides.AccessToken != m.cred.AccessToken {
		m.adoptOverrideLocked()
	}
	stale := m.cred.ExpiresWithin(expiryMargin, m.now())
	m.mu.Unlock()

	if !stale {
		return nil
	}
	return m.refresh(ctx)
}

// Token implements oauth2.TokenSource. It applies the tighter pre-call
// margin, refreshing once more if the token would expire mid-call.
func (m *CredentialManager) Token() (*oauth2.Token, error) {
	if err := m.ensureInitialized(); err != nil {
		return nil, &AuthError{Permanent: true, Message: "credential initialization failed", Err: err}
	}

	m.mu.Lock()
	stale := m.cred.ExpiresWithin(preCallMargin, m.now())
	m.mu.Unlock()

	if stale {
		if err := m.refresh(context.Background()); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return &oauth2.Token{
		AccessToken: m.cred.AccessToken,
		TokenType:   m.cred.TokenType,
		Expiry:      m.cred.Expiry(),
	}, nil
}

// ensureInitialized loads the credential on first use. An unreadable or
// corrupt token file counts as no stored credential.
func (m *CredentialManager) ensureInitialized() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred != nil {
		return nil
	}

	persisted, err := m.store.Load()
	if err != nil {
		m.logger.Warn("Ignoring unreadable token file", zap.Error(err))
		persisted = nil
	}

	cred, err := resolveInitialCredential(m.overrides, persisted, m.defaultLifetime, m.now())
	if err != nil {
		return err
	}
	m.cred = cred

	// An override token survives restarts only if written back now.
	if m.overrides.AccessToken != "" && cred.RefreshToken != "" {
		m.persistLocked()
	}
	return nil
}

// resolveInitialCredential applies the credential precedence rules: a
// runtime override access token wins, then a persisted credential with an
// access token, then a bare refresh token from either source. A known
// refresh token is re-attached on every path; it must never be dropped.
func resolveInitialCredential(ov Overrides, persisted *models.Credential, overrideLifetime time.Duration, now time.Time) (*models.Credential, error) {
	refreshToken := ov.RefreshToken
	if refreshToken == "" && persisted != nil {
		refreshToken = persisted.RefreshToken
	}

	if ov.AccessToken != "" {
		cred := &models.Credential{
			AccessToken:  ov.AccessToken,
			RefreshToken: refreshToken,
			TokenType:    "Bearer",
			Scope:        CalendarScope,
		}
		if persisted != nil && persisted.Scope != "" {
			cred.Scope = persisted.Scope
		}
		switch {
		case ov.ExpiresIn > 0:
			cred.SetExpiry(now.Add(time.Duration(ov.ExpiresIn) * time.Second))
		case persisted != nil && persisted.ExpiryDate != 0:
			cred.ExpiryDate = persisted.ExpiryDate
		default:
			// The override carries no lifetime of its own.
			cred.SetExpiry(now.Add(time.Hour))
		}
		return cred, nil
	}

	if persisted != nil && persisted.AccessToken != "" {
		cred := persisted.Clone()
		cred.RefreshToken = refreshToken
		if cred.TokenType == "" {
			cred.TokenType = "Bearer"
		}
		return cred, nil
	}

	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	return &models.Credential{RefreshToken: refreshToken, TokenType: "Bearer"}, nil
}

// adoptOverrideLocked replaces the in-memory credential with the override
// access token. Callers must hold m.mu.
func (m *CredentialManager) adoptOverrideLocked() {
	prev := m.cred
	cred := &models.Credential{
		AccessToken:  m.overrides.AccessToken,
		RefreshToken: prev.RefreshToken,
		TokenType:    "Bearer",
		Scope:        prev.Scope,
	}
	if m.overrides.RefreshToken != "" {
		cred.RefreshToken = m.overrides.RefreshToken
	}
	if cred.Scope == "" {
		cred.Scope = CalendarScope
	}
	switch {
	case m.overrides.ExpiresIn > 0:
		cred.SetExpiry(m.now().Add(time.Duration(m.overrides.ExpiresIn) * time.Second))
	case prev.ExpiryDate != 0:
		cred.ExpiryDate = prev.ExpiryDate
	default:
		cred.SetExpiry(m.now().Add(time.Hour))
	}
	m.cred = cred
	m.logger.Info("Adopted access token from environment")
	if cred.RefreshToken != "" {
		m.persistLocked()
	}
}

// refresh exchanges the refresh token for a new access token. Concurrent
// callers share one provider call: parallel refreshes against Google can
// invalidate each other's resulting tokens.
func (m *CredentialManager) refresh(ctx context.Context) error {
	_, err, _ := m.refreshGroup.Do("refresh", func() (interface{}, error) {
		return nil, m.doRefresh(ctx)
	})
	return err
}

func (m *CredentialManager) doRefresh(ctx context.Context) error {
	m.mu.Lock()
	var refreshToken, scope string
	if m.cred != nil {
		refreshToken = m.cred.RefreshToken
		scope = m.cred.Scope
	}
	m.mu.Unlock()

	if refreshToken == "" {
		return &AuthError{Permanent: true, Message: "no refresh token available", Err: ErrNoRefreshToken}
	}

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	tok, err := m.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return classifyRefreshError(err)
	}

	updated := &models.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		Scope:        scope,
	}
	if tok.TokenType != "" {
		updated.TokenType = tok.TokenType
	}
	// Google rarely re-issues the refresh token; keep the known one
	// unless the response carries a replacement.
	if tok.RefreshToken != "" {
		updated.RefreshToken = tok.RefreshToken
	}
	if updated.Scope == "" {
		updated.Scope = CalendarScope
	}
	if !tok.Expiry.IsZero() {
		updated.SetExpiry(tok.Expiry)
	} else {
		updated.SetExpiry(m.now().Add(m.defaultLifetime))
	}

	m.mu.Lock()
	m.cred = updated
	m.persistLocked()
	m.mu.Unlock()

	m.logger.Info("Access token refreshed", zap.Time("expiry", updated.Expiry()))
	return nil
}

// persistLocked writes the credential through the store, best effort.
// Callers must hold m.mu.
func (m *CredentialManager) persistLocked() {
	if err := m.store.Save(m.cred.Clone()); err != nil {
		m.logger.Warn("Could not persist credential", zap.Error(err))
	}
}

func classifyRefreshError(err error) *AuthError {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) && rErr.Response != nil {
		code := rErr.Response.StatusCode
		if code == http.StatusBadRequest || code == http.StatusUnauthorized {
			return &AuthError{
				Permanent: true,
				Message:   "refresh token rejected, re-authorization required",
				Err:       err,
			}
		}
		return &AuthError{Message: fmt.Sprintf("token endpoint returned status %d", code), Err: err}
	}
	return &AuthError{Message: "could not reach token endpoint", Err: err}
}
