package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/pquerna/otp/totp"

	"github.com/apidae-labs/go-xapi/captcha"
)

// arkosePublicKey is the well-known FunCaptcha public key for login flows.
const arkosePublicKey = "0152B4EB-D2DC-460A-89A1-629838B529C9"

// LoginConfig holds everything needed to obtain a CookieCredential.
type LoginConfig struct {
	Username   string
	Password   string
	TOTPSecret string

	// Proxy is an optional proxy URL for the login HTTP client.
	Proxy string

	// CaptchaSolver handles Arkose challenges during the flow. Without one,
	// a challenged login fails.
	CaptchaSolver captcha.Solver

	// SessionDir overrides the default session persistence directory
	// (~/.go-xapi/sessions).
	SessionDir string

	// SessionTTL controls how long saved sessions are considered valid.
	SessionTTL time.Duration
}

func (cfg *LoginConfig) defaults() {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
}

// Login returns a credential for the account, loading a persisted session
// when one is still valid and running the full onboarding flow otherwise.
func Login(ctx context.Context, cfg LoginConfig) (*CookieCredential, error) {
	cfg.defaults()
	if cfg.Username == "" {
		return nil, fmt.Errorf("login: username is required")
	}

	if authToken, ct0, err := loadSession(cfg.SessionDir, cfg.Username, cfg.SessionTTL); err != nil {
		slog.Warn("error loading session", slog.String("user", cfg.Username), slog.Any("error", err))
	} else if authToken != "" && ct0 != "" {
		slog.Info("loaded session from disk", slog.String("user", cfg.Username))
		return &CookieCredential{AuthToken: authToken, CT0: ct0}, nil
	}

	if cfg.Password == "" {
		return nil, fmt.Errorf("login: no saved session and no password for %s", cfg.Username)
	}

	bc, err := loginClient(cfg.Proxy)
	if err != nil {
		return nil, err
	}

	cred, err := runLoginFlow(ctx, bc, cfg)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", cfg.Username, err)
	}

	if err := saveSession(cfg.SessionDir, cfg.Username, cred.AuthToken, cred.CT0); err != nil {
		slog.Warn("session save failed", slog.String("user", cfg.Username), slog.Any("error", err))
	}
	return cred, nil
}

// NewGuestCredential activates a fresh guest token for unauthenticated read
// access.
func NewGuestCredential(ctx context.Context, proxy string) (*GuestCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bc, err := loginClient(proxy)
	if err != nil {
		return nil, err
	}
	token, err := getGuestToken(bc)
	if err != nil {
		return nil, fmt.Errorf("guest credential: %w", err)
	}
	return &GuestCredential{Token: token}, nil
}

func loginClient(proxy string) (*stealth.BrowserClient, error) {
	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(apiHeaderOrder),
	}
	if proxy != "" {
		opts = append(opts, stealth.WithProxy(proxy))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}
	return bc, nil
}

// runLoginFlow performs the multi-step onboarding login flow.
func runLoginFlow(ctx context.Context, bc *stealth.BrowserClient, cfg LoginConfig) (*CookieCredential, error) {
	slog.Info("logging in", slog.String("user", cfg.Username))

	guestToken, err := getGuestToken(bc)
	if err != nil {
		return nil, fmt.Errorf("get guest token: %w", err)
	}

	fr, err := initLoginFlow(bc, guestToken)
	if err != nil {
		return nil, fmt.Errorf("init login flow: %w", err)
	}

	for round := 0; round < 10; round++ {
		if len(fr.Subtasks) == 0 {
			break
		}

		subtaskID := fr.Subtasks[0].SubtaskID
		slog.Debug("login subtask", slog.String("user", cfg.Username), slog.String("subtask", subtaskID))

		switch subtaskID {
		case "LoginJsInstrumentationSubtask":
			fr, err = submitJsInstrumentation(bc, guestToken, fr.FlowToken)

		case "LoginEnterUserIdentifierSSO":
			fr, err = submitUsernameStep(bc, guestToken, fr.FlowToken, cfg.Username)

		case "LoginEnterPassword":
			fr, err = submitPasswordStep(bc, guestToken, fr.FlowToken, cfg.Password)

		case "LoginArkoseChallenge", "LoginArkoseCaptcha", "LoginEnterRecaptcha":
			if cfg.CaptchaSolver == nil {
				return nil, fmt.Errorf("CAPTCHA required but no solver configured")
			}
			token, solveErr := cfg.CaptchaSolver.Solve(ctx, arkosePublicKey, "https://twitter.com")
			if solveErr != nil {
				return nil, fmt.Errorf("CAPTCHA solve failed: %w", solveErr)
			}
			slog.Info("CAPTCHA solved for login", slog.String("user", cfg.Username))
			fr, err = submitCaptchaStep(bc, guestToken, fr.FlowToken, token)

		case "LoginTwoFactorAuthChallenge":
			if cfg.TOTPSecret == "" {
				return nil, fmt.Errorf("2FA required but no TOTP secret configured")
			}
			code, codeErr := totp.GenerateCode(cfg.TOTPSecret, time.Now())
			if codeErr != nil {
				return nil, fmt.Errorf("TOTP code generation failed: %w", codeErr)
			}
			slog.Info("submitting TOTP code", slog.String("user", cfg.Username))
			fr, err = submitTOTPStep(bc, guestToken, fr.FlowToken, code)

		case "LoginEnterAlternateIdentifierSubtask":
			fr, err = submitAlternateIdentifier(bc, guestToken, fr.FlowToken, cfg.Username)

		case "LoginSuccessSubtask", "AccountDuplicationCheck":
			slog.Debug("login flow complete", slog.String("user", cfg.Username), slog.String("terminal", subtaskID))
			return credentialFromCookies(bc, cfg.Username)

		case "DenyLoginSubtask":
			return nil, fmt.Errorf("login denied (account may be locked or disabled)")

		default:
			slog.Warn("unknown login subtask, skipping", slog.String("user", cfg.Username), slog.String("subtask", subtaskID))
			fr, err = submitGenericStep(bc, guestToken, fr.FlowToken, subtaskID)
		}

		if err != nil {
			return nil, fmt.Errorf("subtask %s: %w", subtaskID, err)
		}
	}

	return credentialFromCookies(bc, cfg.Username)
}

// credentialFromCookies assembles the credential from the cookies set
// during the flow.
func credentialFromCookies(bc *stealth.BrowserClient, username string) (*CookieCredential, error) {
	authToken := bc.GetCookieValue("https://api.twitter.com", "auth_token")
	if authToken == "" {
		authToken = bc.GetCookieValue("https://twitter.com", "auth_token")
	}
	ct0 := bc.GetCookieValue("https://api.twitter.com", "ct0")
	if ct0 == "" {
		ct0 = bc.GetCookieValue("https://twitter.com", "ct0")
	}
	if ct0 == "" {
		ct0 = GenerateCT0()
	}

	if authToken == "" {
		return nil, fmt.Errorf("login completed but no auth_token in cookies")
	}

	slog.Info("login successful", slog.String("user", username))
	return &CookieCredential{AuthToken: authToken, CT0: ct0}, nil
}

// getGuestToken activates a guest token.
func getGuestToken(bc *stealth.BrowserClient) (string, error) {
	headers := map[string]string{
		"authorization": "Bearer " + BearerToken,
		"content-type":  "application/json",
		"user-agent":    defaultUserAgent,
	}
	body, _, status, err := bc.DoWithHeaderOrder("POST", restAPIBase+"/1.1/guest/activate.json", headers, nil, apiHeaderOrder)
	if err != nil {
		return "", err
	}
	if status != 200 {
		return "", fmt.Errorf("guest token: HTTP %d", status)
	}
	var resp struct {
		GuestToken string `json:"guest_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if resp.GuestToken == "" {
		return "", fmt.Errorf("empty guest token in response")
	}
	return resp.GuestToken, nil
}

// --- Onboarding flow plumbing ---

type flowResponse struct {
	FlowToken string        `json:"flow_token"`
	Subtasks  []flowSubtask `json:"subtasks"`
}

type flowSubtask struct {
	SubtaskID string `json:"subtask_id"`
}

func parseFlowResponse(body []byte) (*flowResponse, error) {
	var fr flowResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("parse flow response: %w", err)
	}
	if fr.FlowToken == "" {
		return nil, fmt.Errorf("empty flow_token in response: %s", truncateBytes(body, 200))
	}
	return &fr, nil
}

func initLoginFlow(bc *stealth.BrowserClient, guestToken string) (*flowResponse, error) {
	headers := loginFlowHeaders(guestToken, "")
	body, _, status, err := bc.DoWithHeaderOrder("POST",
		restAPIBase+"/1.1/onboarding/task.json?flow_name=login",
		headers,
		strings.NewReader(loginFlowPayload),
		apiHeaderOrder,
	)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, fmt.Errorf("init flow: HTTP %d: %s", status, truncateBytes(body, 300))
	}
	return parseFlowResponse(body)
}

func submitFlowStep(bc *stealth.BrowserClient, guestToken, payload string) (*flowResponse, error) {
	headers := loginFlowHeaders(guestToken, "")
	body, _, status, err := bc.DoWithHeaderOrder("POST",
		restAPIBase+"/1.1/onboarding/task.json",
		headers,
		strings.NewReader(payload),
		apiHeaderOrder,
	)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, fmt.Errorf("flow step HTTP %d: %s", status, truncateBytes(body, 300))
	}
	return parseFlowResponse(body)
}

func submitUsernameStep(bc *stealth.BrowserClient, guestToken, flowToken, username string) (*flowResponse, error) {
	payload := fmt.Sprintf(`{"flow_token":%q,"subtask_inputs":[{"subtask_id":"LoginEnterUserIdentifierSSO","settings_list":{"setting_responses":[{"key":"user_identifier","response_data":{"text_data":{"result":%q}}}],"link":"next_link"}}]}`,
		flowToken, username)
	return submitFlowStep(bc, guestToken, payload)
}

func submitPasswordStep(bc *stealth.BrowserClient, guestToken, flowToken, password string) (*flowResponse, error) {
	payload := fmt.Sprintf(`{"flow_token":%q,"subtask_inputs":[{"subtask_id":"LoginEnterPassword","enter_password":{"password":%q,"link":"next_link"}}]}`,
		flowToken, password)
	return submitFlowStep(bc, guestToken, payload)
}

func submitJsInstrumentation(bc *stealth.BrowserClient, guestToken, flowToken string) (*flowResponse, error) {
	payload := fmt.Sprintf(`{"flow_token":%q,"subtask_inputs":[{"subtask_id":"LoginJsInstrumentationSubtask","js_instrumentation":{"response":"{\"rf\":{\"a\":\"b\"},\"s\":\"s\"}","link":"next_link"}}]}`,
		flowToken)
	return submitFlowStep(bc, guestToken, payload)
}

func submitCaptchaStep(bc *stealth.BrowserClient, guestToken, flowToken, captchaToken string) (*flowResponse, error) {
	payload := fmt.Sprintf(`{"flow_token":%q,"subtask_inputs":[{"subtask_id":"LoginArkoseChallenge","web_modal":{"completion_deeplink":"twitter://onboarding/web_modal/next_link?access_token=%s"}}]}`,
		flowToken, captchaToken)
	return submitFlowStep(bc, guestToken, payload)
}

func submitTOTPStep(bc *stealth.BrowserClient, guestToken, flowToken, code string) (*flowResponse, error) {
	payload := fmt.Sprintf(`{"flow_token":%q,"subtask_inputs":[{"subtask_id":"LoginTwoFactorAuthChallenge","enter_text":{"text":%q,"link":"next_link"}}]}`,
		flowToken, code)
	return submitFlowStep(bc, guestToken, payload)
}

func submitAlternateIdentifier(bc *stealth.BrowserClient, guestToken, flowToken, identifier string) (*flowResponse, error) {
	payload := fmt.Sprintf(`{"flow_token":%q,"subtask_inputs":[{"subtask_id":"LoginEnterAlternateIdentifierSubtask","enter_text":{"text":%q,"link":"next_link"}}]}`,
		flowToken, identifier)
	return submitFlowStep(bc, guestToken, payload)
}

func submitGenericStep(bc *stealth.BrowserClient, guestToken, flowToken, subtaskID string) (*flowResponse, error) {
	payload := fmt.Sprintf(`{"flow_token":%q,"subtask_inputs":[{"subtask_id":%q,"action_list":{"link":"next_link"}}]}`,
		flowToken, subtaskID)
	return submitFlowStep(bc, guestToken, payload)
}

// loginFlowPayload is the subtask_versions body for flow_name=login.
const loginFlowPayload = `{"input_flow_data":{"flow_context":{"debug_overrides":{},"start_location":{"location":"splash_screen"}}},"subtask_versions":{"action_list":2,"alert_dialog":1,"app_download_cta":1,"check_logged_in_account":1,"choice_selection":3,"contacts_live_sync_permission_prompt":0,"cta":7,"email_verification":2,"end_flow":1,"enter_date":1,"enter_email":2,"enter_password":5,"enter_phone":2,"enter_recaptcha":1,"enter_text":5,"enter_username":2,"generic_urt":3,"in_app_notification":1,"interest_picker":3,"js_instrumentation":1,"menu_dialog":1,"notifications_permission_prompt":2,"open_account":2,"open_home_timeline":1,"open_link":1,"phone_verification":4,"privacy_options":1,"security_key":3,"select_avatar":4,"select_banner":2,"settings_list":7,"show_code":1,"sign_up":2,"sign_up_review":4,"tweet_selection_urt":1,"update_users":1,"upload_media":1,"user_recommendations_list":4,"user_recommendations_urt":1,"wait_spinner":3,"web_modal":1}}`

// --- Session persistence ---

// sessionDir returns the directory for persisting session cookies.
func sessionDir(override string) string {
	if override != "" {
		return override
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".go-xapi", "sessions")
}

func sessionPath(dir, username string) string {
	return filepath.Join(dir, username+".json")
}

// savedSession holds serialized cookie data for persistence.
type savedSession struct {
	AuthToken string    `json:"auth_token"`
	CT0       string    `json:"ct0"`
	SavedAt   time.Time `json:"saved_at"`
}

// saveSession persists auth_token and ct0 to disk.
func saveSession(dir, username, authToken, ct0 string) error {
	d := sessionDir(dir)
	if err := os.MkdirAll(d, 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	s := savedSession{AuthToken: authToken, CT0: ct0, SavedAt: time.Now()}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	path := sessionPath(d, username)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write session %s: %w", path, err)
	}
	slog.Debug("session saved", slog.String("user", username))
	return nil
}

// loadSession loads a persisted session from disk. An expired or missing
// session returns empty strings without error.
func loadSession(dir, username string, ttl time.Duration) (authToken, ct0 string, err error) {
	data, err := os.ReadFile(sessionPath(sessionDir(dir), username))
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", nil
		}
		return "", "", err
	}
	var s savedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return "", "", err
	}
	if time.Since(s.SavedAt) > ttl {
		slog.Debug("session expired", slog.String("user", username))
		return "", "", nil
	}
	return s.AuthToken, s.CT0, nil
}
