// Package submit sends completed wizard records to the listings service.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/festivo/festivo-backend/internal/wizard"
	"github.com/festivo/festivo-backend/pkg/config"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

// Client is the HTTP wizard.Sink. A 2xx with success=false is a business
// rejection the wizard surfaces to the user; anything else is a dependency
// error the caller can retry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

var _ wizard.Sink = (*Client)(nil)

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the submission client from config.
func NewClient(cfg config.SubmissionConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("submission base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Submit posts the record with its attachment handles. The binaries were
// uploaded separately; only their refs travel here.
func (c *Client) Submit(ctx context.Context, submission wizard.Submission) (wizard.SubmitResult, error) {
	if c == nil {
		return wizard.SubmitResult{}, pkgerrors.New(pkgerrors.CodeDependency, "submission client not configured")
	}

	payload, err := json.Marshal(submission)
	if err != nil {
		return wizard.SubmitResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal wizard submission")
	}

	url := c.baseURL + "/submissions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return wizard.SubmitResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build submission request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return wizard.SubmitResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute submission request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return wizard.SubmitResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "submission request failed")
	}

	var result wizard.SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return wizard.SubmitResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode submission response")
	}
	return result, nil
}
