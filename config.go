package xapi

// Config holds all configuration for the client.
type Config struct {
	// Credential supplies authentication headers for every request.
	Credential CredentialProvider

	// Proxy is an optional proxy URL for the default transport.
	Proxy string

	// Transport overrides the default stealth-backed transport.
	// Tests substitute a fake here.
	Transport Transport
}
