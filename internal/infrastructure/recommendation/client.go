// Package recommendation is a client for the external recommendation service.
package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"storefront.backend/pkg/utils"
)

const defaultTimeout = 2 * time.Second

// Client asks the recommendation service for related products
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type recommendResponse struct {
	ProductIDs []string `json:"productIds"`
}

// New creates a new recommendation client
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Recommend returns up to limit product IDs related to productID, best match first
func (c *Client) Recommend(ctx context.Context, productID uuid.UUID, limit int) ([]uuid.UUID, error) {
	query := url.Values{}
	query.Set("productId", productID.String())
	query.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/recommendations?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed: %s - %s", resp.Status, string(body))
	}

	var result recommendResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	ids, err := utils.ParseUUIDs(result.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("parse product ids: %w", err)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
