package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ads-scheduler/internal/config/configs"
	"ads-scheduler/internal/core/domain"
)

// Client calls the seller-platform proxy that fronts the third-party
// advertising API. The proxy owns rate limiting and token refresh; this
// client only performs plain JSON requests with the configured timeout and
// never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the configured proxy endpoint.
func NewClient(cfg configs.Platform) *Client {
	return &Client{
		baseURL: cfg.Addr.String(),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// ListCampaigns fetches the shop's campaign snapshot.
func (c *Client) ListCampaigns(ctx context.Context, shopID int64) ([]domain.Campaign, error) {
	url := fmt.Sprintf("%s/shops/%d/campaigns", c.baseURL, shopID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("platform: list campaigns returned %s", resp.Status)
	}
	var out struct {
		Campaigns []domain.Campaign `json:"campaigns"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Campaigns, nil
}

// UpdateCampaignBudget applies a new daily budget to a campaign. The proxy
// answers {success, error?}; a false success surfaces the error verbatim.
func (c *Client) UpdateCampaignBudget(ctx context.Context, shopID, campaignID, budget int64) error {
	url := fmt.Sprintf("%s/shops/%d/campaigns/%d/budget", c.baseURL, shopID, campaignID)
	body, err := json.Marshal(map[string]int64{"budget": budget})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("platform: budget update returned %s", resp.Status)
	}
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Success {
		if out.Error == "" {
			out.Error = "unknown platform error"
		}
		return fmt.Errorf("platform: %s", out.Error)
	}
	return nil
}
