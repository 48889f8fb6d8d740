package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultCapsolverURL = "https://api.capsolver.com"
	pollInterval        = 3 * time.Second
	solveTimeout        = 120 * time.Second
)

// apiError is the shared error envelope of Capsolver responses.
type apiError struct {
	ErrorID          int    `json:"errorId"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

func (e apiError) err() error {
	if e.ErrorID == 0 {
		return nil
	}
	return fmt.Errorf("capsolver error %s: %s", e.ErrorCode, e.ErrorDescription)
}

// Capsolver implements Solver using the Capsolver API.
type Capsolver struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewCapsolver creates a Capsolver client with the given API key.
func NewCapsolver(apiKey string) *Capsolver {
	return &Capsolver{
		apiKey:  apiKey,
		baseURL: defaultCapsolverURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Solve submits a FunCaptcha task and polls until it is solved or the solve
// timeout is hit.
func (c *Capsolver) Solve(ctx context.Context, siteKey, pageURL string) (string, error) {
	taskID, err := c.createTask(ctx, siteKey, pageURL)
	if err != nil {
		return "", err
	}
	slog.Info("CAPTCHA task created", slog.String("taskId", taskID))

	deadline := time.Now().Add(solveTimeout)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("capsolver: solve timeout after %s", solveTimeout)
		}

		token, done, err := c.pollTask(ctx, taskID)
		if err != nil {
			return "", err
		}
		if done {
			slog.Info("CAPTCHA solved", slog.String("taskId", taskID))
			return token, nil
		}

		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (c *Capsolver) createTask(ctx context.Context, siteKey, pageURL string) (string, error) {
	req := map[string]any{
		"clientKey": c.apiKey,
		"task": map[string]any{
			"type":             "FunCaptchaTaskProxyLess",
			"websiteURL":       pageURL,
			"websitePublicKey": siteKey,
		},
	}
	var resp struct {
		apiError
		TaskID string `json:"taskId"`
	}
	if err := c.call(ctx, "/createTask", req, &resp); err != nil {
		return "", fmt.Errorf("capsolver createTask: %w", err)
	}
	if err := resp.err(); err != nil {
		return "", err
	}
	if resp.TaskID == "" {
		return "", fmt.Errorf("capsolver: empty taskId in response")
	}
	return resp.TaskID, nil
}

// pollTask checks a pending task once. done is true when the solution token
// is available.
func (c *Capsolver) pollTask(ctx context.Context, taskID string) (token string, done bool, err error) {
	req := map[string]any{"clientKey": c.apiKey, "taskId": taskID}
	var resp struct {
		apiError
		Status   string `json:"status"`
		Solution struct {
			Token string `json:"token"`
		} `json:"solution"`
	}
	if err := c.call(ctx, "/getTaskResult", req, &resp); err != nil {
		return "", false, fmt.Errorf("capsolver getTaskResult: %w", err)
	}
	if err := resp.err(); err != nil {
		return "", false, err
	}

	switch resp.Status {
	case "ready":
		if resp.Solution.Token == "" {
			return "", false, fmt.Errorf("capsolver: ready but empty token")
		}
		return resp.Solution.Token, true, nil
	case "processing":
		return "", false, nil
	default:
		return "", false, fmt.Errorf("capsolver: unexpected status %q", resp.Status)
	}
}

// Balance returns the Capsolver account balance in USD.
func (c *Capsolver) Balance(ctx context.Context) (float64, error) {
	req := map[string]any{"clientKey": c.apiKey}
	var resp struct {
		apiError
		Balance float64 `json:"balance"`
	}
	if err := c.call(ctx, "/getBalance", req, &resp); err != nil {
		return 0, err
	}
	if err := resp.err(); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

// call sends a JSON POST to the Capsolver API and decodes the response.
func (c *Capsolver) call(ctx context.Context, path string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("capsolver HTTP %d: %s", resp.StatusCode, string(data[:min(200, len(data))]))
	}
	return json.Unmarshal(data, result)
}
