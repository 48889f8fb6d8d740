package xapi

// defaultUserAgent is the fallback User-Agent when no per-credential UA is set.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// loginFlowHeaders returns headers required by the onboarding flow API.
func loginFlowHeaders(guestToken, ct0 string) map[string]string {
	h := map[string]string{
		"authorization":             "Bearer " + BearerToken,
		"content-type":              "application/json",
		"x-guest-token":             guestToken,
		"x-twitter-active-user":     "yes",
		"x-twitter-client-language": "en",
		"user-agent":                defaultUserAgent,
		"accept":                    "*/*",
		"accept-language":           "en-US,en;q=0.9",
		"referer":                   "https://twitter.com/",
		"origin":                    "https://twitter.com",
	}
	if ct0 != "" {
		h["x-csrf-token"] = ct0
	}
	return h
}

// apiHeaderOrder is the header order the GraphQL API expects for TLS
// fingerprint consistency.
var apiHeaderOrder = []string{
	"authorization",
	"content-type",
	"x-csrf-token",
	"x-guest-token",
	"x-twitter-active-user",
	"x-twitter-auth-type",
	"x-twitter-client-language",
	"sec-ch-ua",
	"sec-ch-ua-mobile",
	"sec-ch-ua-platform",
	"sec-fetch-dest",
	"sec-fetch-mode",
	"sec-fetch-site",
	"cookie",
	"user-agent",
	"accept",
	"accept-language",
	"accept-encoding",
}
