package terracarta

import (
	"context"
	"fmt"
)

// GetWorkspace retrieves workspace information by ID
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (*Workspace, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("workspace ID is required")
	}

	path := fmt.Sprintf("/v1/workspaces/%s", workspaceID)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	var result Workspace
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process get workspace response: %w", err)
	}

	return &result, nil
}

// GetWorkspaces retrieves all workspaces visible to the authenticated user
func (c *Client) GetWorkspaces(ctx context.Context) ([]Workspace, error) {
	resp, err := c.doRequest(ctx, "GET", "/v1/workspaces", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspaces: %w", err)
	}

	var result []Workspace
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process get workspaces response: %w", err)
	}

	return result, nil
}
