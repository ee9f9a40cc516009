package storefront

import (
	"context"
	"encoding/json"
	"strings"

	"doorops/internal/services"
)

// CacheReport carries the storefront's answer to a cache invalidation.
type CacheReport struct {
	URL     string         `json:"url"`
	Message string         `json:"message,omitempty"`
	Body    map[string]any `json:"body,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// ClearCache asks the storefront to drop its cached listing. The endpoint
// answers with JSON or plain text; both are accepted.
func (c *Client) ClearCache(ctx context.Context) (CacheReport, error) {
	endpoint := c.endpoint(c.CacheClearPath, nil)
	report := CacheReport{URL: endpoint}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return report, services.Wrap(services.ErrExternalAPI, "storefront", "clear cache", "", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil && decoded != nil {
		report.Body = decoded
		if msg, ok := decoded["message"].(string); ok {
			report.Message = msg
		}
		return report, nil
	}
	report.Text = strings.TrimSpace(string(body))
	report.Message = report.Text
	return report, nil
}
