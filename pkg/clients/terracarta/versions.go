package terracarta

import (
	"context"
	"fmt"
)

// GetVersion retrieves a map version by id, including the state of its
// server-side processing job
func (c *Client) GetVersion(ctx context.Context, versionID string) (*Version, error) {
	if versionID == "" {
		return nil, fmt.Errorf("version ID is required")
	}

	path := fmt.Sprintf("/v1/versions/%s", versionID)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	var result Version
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process get version response: %w", err)
	}

	return &result, nil
}
