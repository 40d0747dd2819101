package calendar

import (
	"errors"
	"fmt"
)

// ErrNoRefreshToken means neither the environment nor the token file
// yields a refresh token, so there is no path to an access token.
var ErrNoRefreshToken = errors.New("no access or refresh token configured: set GOOGLE_ACCESS_TOKEN or GOOGLE_REFRESH_TOKEN, or run the oauth-setup tool")

// AuthError reports a failure to obtain a usable access token. Permanent
// means the refresh token itself was rejected and re-authorization is
// required out of band; otherwise the failure is transient and a later
// request may succeed.
type AuthError struct {
	Permanent bool
	Message   string
	Err       error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calendar auth: %s: %v", e.Message, e.Err)
	}
	return "calendar auth: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// ProviderError reports a rejected or failed event insert. Nothing was
// created on the calendar when one of these comes back.
type ProviderError struct {
	Code    int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("calendar provider: %s (status %d)", e.Message, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("calendar provider: %s: %v", e.Message, e.Err)
	}
	return "calendar provider: " + e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }
