package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/festivo/festivo-backend/internal/catalog"
	"github.com/festivo/festivo-backend/pkg/config"
	pkgerrors "github.com/festivo/festivo-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 1024

// Source is the Recommendation Source contract consumed by the fetcher.
type Source interface {
	GetRecommendations(ctx context.Context, criteria Criteria) (ResultSet, error)
}

// Client calls the recommendation service over HTTP and normalizes its
// loose offer payloads into the canonical shape.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

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

// NewClient builds the recommendation client from config.
func NewClient(cfg config.RecommendationConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("recommendation base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
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

type rawBucket struct {
	Category       catalog.ServiceCategory `json:"category"`
	Vendors        []RawOffer              `json:"vendors"`
	Total          int                     `json:"total"`
	TotalAvailable int                     `json:"total_available"`
}

// GetRecommendations posts the event criteria and returns the ranked mapping.
func (c *Client) GetRecommendations(ctx context.Context, criteria Criteria) (ResultSet, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "recommendation client not configured")
	}

	payload, err := json.Marshal(criteria)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal recommendation criteria")
	}

	url := c.baseURL + "/recommendations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build recommendation request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute recommendation request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "recommendation request failed")
	}

	var apiResp struct {
		Recommendations map[string]rawBucket `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode recommendation response")
	}

	set := make(ResultSet, len(apiResp.Recommendations))
	for slug, bucket := range apiResp.Recommendations {
		vendors := make([]VendorOffer, 0, len(bucket.Vendors))
		for _, raw := range bucket.Vendors {
			vendors = append(vendors, NormalizeOffer(raw))
		}
		set[slug] = CategoryRecommendations{
			Category:       bucket.Category,
			Vendors:        vendors,
			Total:          bucket.Total,
			TotalAvailable: bucket.TotalAvailable,
		}
	}

	return set, nil
}
