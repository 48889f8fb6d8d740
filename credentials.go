package xapi

import (
	stealth "github.com/anatolykoptev/go-stealth"
)

// CredentialProvider produces the authentication headers for the next
// request. The pipeline only ever calls this one method; how credentials
// are obtained or refreshed is the provider's concern.
type CredentialProvider interface {
	Headers() map[string]string
}

// CookieCredential is a logged-in session: the auth_token cookie plus its
// ct0 CSRF token. Immutable once built; a new login produces a new value.
type CookieCredential struct {
	AuthToken string
	CT0       string
	UserAgent string
}

// Headers implements CredentialProvider for an authenticated session.
func (c *CookieCredential) Headers() map[string]string {
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	h := map[string]string{
		"authorization":             "Bearer " + BearerToken,
		"x-csrf-token":              c.CT0,
		"x-twitter-active-user":     "yes",
		"x-twitter-auth-type":       "OAuth2Session",
		"x-twitter-client-language": "en",
		"content-type":              "application/json",
		"cookie":                    "auth_token=" + c.AuthToken + "; ct0=" + c.CT0,
		"user-agent":                ua,
		"accept":                    "*/*",
		"accept-language":           "en-US,en;q=0.9",
		"accept-encoding":           "gzip, deflate, br",
		"referer":                   "https://twitter.com/",
		"origin":                    "https://twitter.com",
		"sec-fetch-dest":            "empty",
		"sec-fetch-mode":            "cors",
		"sec-fetch-site":            "same-origin",
	}
	if ch := stealth.ClientHintsHeaders(ua); ch != nil {
		for k, v := range ch {
			h[k] = v
		}
	}
	return h
}

// GuestCredential is an unauthenticated guest token session. Read kinds
// that do not require a logged-in account accept it.
type GuestCredential struct {
	Token string
}

// Headers implements CredentialProvider for a guest session.
func (g *GuestCredential) Headers() map[string]string {
	return map[string]string{
		"authorization":             "Bearer " + BearerToken,
		"x-guest-token":             g.Token,
		"x-twitter-active-user":     "yes",
		"x-twitter-client-language": "en",
		"content-type":              "application/json",
		"user-agent":                defaultUserAgent,
		"accept":                    "*/*",
		"accept-language":           "en-US,en;q=0.9",
		"accept-encoding":           "gzip, deflate, br",
		"referer":                   "https://twitter.com/",
		"origin":                    "https://twitter.com",
	}
}
