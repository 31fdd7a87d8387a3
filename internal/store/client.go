// Package store talks to the central case registry, the external system
// of record for trámites and simulator appointments. Every call funnels
// through one generic request helper and comes back as a uniform Result;
// callers branch on Status instead of catching transport errors.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Pool selects which identity the request is signed with.
type Pool string

const (
	PoolCitizen Pool = "citizen"
	PoolAdmin   Pool = "admin"
	PoolPublic  Pool = "public"
)

// TokenSource yields the bearer token for a pool. Tokens are opaque to
// the portal; how they are minted is the registry operator's concern.
type TokenSource interface {
	Token(pool Pool) string
}

// StaticTokens serves fixed tokens from configuration. The public pool
// is always anonymous.
type StaticTokens struct {
	Citizen string
	Admin   string
}

func (s StaticTokens) Token(pool Pool) string {
	switch pool {
	case PoolCitizen:
		return s.Citizen
	case PoolAdmin:
		return s.Admin
	default:
		return ""
	}
}

// Result is the uniform outcome of a registry call. A transport failure
// leaves Status zero; an HTTP error carries the upstream status and a
// message. Exactly one of Data and Error is meaningful.
type Result struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status"`
}

// OK reports whether the call reached the registry and succeeded.
func (r Result) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

type RequestOptions struct {
	Method  string
	Body    interface{}
	Pool    Pool
	Headers map[string]string
}

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// Request performs one registry call. There is no retry or backoff: the
// portal surfaces registry failures to the caller as-is.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) Result {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader *bytes.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return Result{Error: fmt.Sprintf("encode request body: %v", err)}
		}
		bodyReader = bytes.NewReader(encoded)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return Result{Error: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(opts.Pool); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{Error: fmt.Sprintf("registry unreachable: %v", err)}
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return Result{Status: resp.StatusCode, Error: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Data: buf.Bytes(), Status: resp.StatusCode}
	}
	return Result{Status: resp.StatusCode, Error: errorMessage(buf.Bytes(), resp.StatusCode)}
}

// errorMessage pulls a human message out of an upstream error body,
// falling back to the HTTP status text.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return http.StatusText(status)
}
