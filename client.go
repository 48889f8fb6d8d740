package xapi

import "errors"

// Client is the top-level X/Twitter internal-API client. Every call is an
// independent request/response cycle; the only state shared between calls
// is the credential reference, which the client never mutates.
type Client struct {
	transport Transport
	cred      CredentialProvider
	cfg       Config
}

// NewClient creates a client around a credential provider. Without an
// explicit Transport in the config, requests go through the stealth-backed
// browser client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Credential == nil {
		return nil, errors.New("credential provider is required")
	}

	tr := cfg.Transport
	if tr == nil {
		st, err := newStealthTransport(cfg.Proxy)
		if err != nil {
			return nil, err
		}
		tr = st
	}

	return &Client{
		transport: tr,
		cred:      cfg.Credential,
		cfg:       cfg,
	}, nil
}
