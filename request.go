package xapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Request describes one outbound API call. A Request is built fresh for
// every call and never reused.
type Request struct {
	Method  string
	URL     string
	Payload []byte
	Kind    ResourceKind
}

// Response is the raw outcome of a dispatched Request.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Transport issues a single HTTP request. An implementation returns an
// error only when no response was obtained at all (network failure,
// timeout); a received non-2xx status comes back as a Response and is
// judged by the status classifier, not here.
type Transport interface {
	Send(ctx context.Context, req *Request, headers map[string]string) (*Response, error)
}

// stealthTransport dispatches through a TLS-fingerprinted browser client
// with the fixed header order.
type stealthTransport struct {
	client *stealth.BrowserClient
}

func newStealthTransport(proxy string) (*stealthTransport, error) {
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
	return &stealthTransport{client: bc}, nil
}

func (t *stealthTransport) Send(ctx context.Context, req *Request, headers map[string]string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var body io.Reader
	if len(req.Payload) > 0 {
		body = bytes.NewReader(req.Payload)
	}
	respBody, respHdrs, status, err := t.client.DoWithHeaderOrder(req.Method, req.URL, headers, body, apiHeaderOrder)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Kind, err)
	}
	return &Response{Status: status, Headers: respHdrs, Body: respBody}, nil
}

// dispatch runs one request through the transport and the status
// classifier. Failures propagate unchanged; there is no retry or recovery.
func (c *Client) dispatch(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.transport.Send(ctx, req, c.cred.Headers())
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		slog.Warn("request rejected",
			slog.String("resource", string(req.Kind)),
			slog.Int("status", resp.Status),
			slog.String("body", truncateBytes(resp.Body, 200)))
		return nil, fmt.Errorf("%s: %w", req.Kind, err)
	}
	return resp, nil
}

// fetchList is the read pipeline: build the request, dispatch it, and
// normalize the body into a typed page.
func fetchList[T any](ctx context.Context, c *Client, kind ResourceKind, args Args) (*CursoredData[T], error) {
	req, err := buildRequest(kind, args)
	if err != nil {
		return nil, err
	}
	resp, err := c.dispatch(ctx, req)
	if err != nil {
		return nil, err
	}
	return normalize[T](resp.Body, kind)
}

// postAction is the write pipeline. The HTTP status and the body are
// independent success signals: a 200 with an empty or falsy body still
// reports false.
func (c *Client) postAction(ctx context.Context, kind ResourceKind, args Args) (bool, error) {
	req, err := buildRequest(kind, args)
	if err != nil {
		return false, err
	}
	resp, err := c.dispatch(ctx, req)
	if err != nil {
		return false, err
	}
	return isTruthyBody(resp.Body), nil
}

// isTruthyBody reports whether a write response body signals success.
// Empty bodies and the bare JSON falsy scalars do not.
func isTruthyBody(body []byte) bool {
	switch strings.TrimSpace(string(body)) {
	case "", `""`, "0", "null", "false":
		return false
	}
	return true
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
