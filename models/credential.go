package models

import "time"

// Credential is the OAuth token set used to authenticate Google Calendar
// calls. The JSON layout matches the token.json file written by the
// oauth-setup tool, so existing token files keep working across versions.
type Credential struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	// ExpiryDate is the access token expiry as unix milliseconds.
	// Zero means the expiry is unknown.
	ExpiryDate int64 `json:"expiry_date,omitempty"`
}

// Expiry returns the expiry instant; the zero time means unknown.
func (c *Credential) Expiry() time.Time {
	if c == nil || c.ExpiryDate == 0 {
		return time.Time{}
	}
	return time.UnixMilli(c.ExpiryDate)
}

// SetExpiry records the expiry instant, truncated to milliseconds.
func (c *Credential) SetExpiry(t time.Time) {
	c.ExpiryDate = t.UnixMilli()
}

// ExpiresWithin reports whether the access token is missing, has no known
// expiry, or expires within margin of now. Tokens in that state must not
// be used against the provider.
func (c *Credential) ExpiresWithin(margin time.Duration, now time.Time) bool {
	if c == nil || c.AccessToken == "" || c.ExpiryDate == 0 {
		return true
	}
	return !c.Expiry().After(now.Add(margin))
}

// Clone returns a copy so the credential can be handed out without
// sharing the owner's mutable state.
func (c *Credential) Clone() *Credential {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
