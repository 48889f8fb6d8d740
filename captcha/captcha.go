package captcha

import "context"

// Solver abstracts CAPTCHA solving services used during the login flow.
type Solver interface {
	// Solve submits an Arkose/FunCaptcha challenge and returns the solution
	// token. siteKey is the public key, pageURL the page that triggered it.
	Solve(ctx context.Context, siteKey, pageURL string) (token string, err error)

	// Balance returns the account balance in USD.
	Balance(ctx context.Context) (float64, error)
}
