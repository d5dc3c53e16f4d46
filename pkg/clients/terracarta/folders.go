package terracarta

import (
	"context"
	"fmt"
)

// GetFolder retrieves a folder's content by id: the folder itself, its child
// folders and its map files
func (c *Client) GetFolder(ctx context.Context, folderID string) (*FolderContent, error) {
	if folderID == "" {
		return nil, fmt.Errorf("folder ID is required")
	}

	path := fmt.Sprintf("/v1/folders/%s", folderID)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	var result FolderContent
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process get folder response: %w", err)
	}

	return &result, nil
}

// GetWorkspaceRootContent retrieves the content of a workspace's root folder
func (c *Client) GetWorkspaceRootContent(ctx context.Context, workspaceID string) (*FolderContent, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("workspace ID is required")
	}

	path := fmt.Sprintf("/v1/workspaces/%s/root", workspaceID)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace root content: %w", err)
	}

	var result FolderContent
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process workspace root content response: %w", err)
	}

	return &result, nil
}

// GetFolderPath retrieves the ancestor path of a folder, ordered root to leaf
func (c *Client) GetFolderPath(ctx context.Context, folderID string) ([]FolderPathItem, error) {
	if folderID == "" {
		return nil, fmt.Errorf("folder ID is required")
	}

	path := fmt.Sprintf("/v1/folders/%s/path", folderID)
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder path: %w", err)
	}

	var result []FolderPathItem
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process folder path response: %w", err)
	}

	return result, nil
}

// CreateFolder creates a folder under the given parent
func (c *Client) CreateFolder(ctx context.Context, req *CreateFolderRequest) (*FolderInfo, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}

	resp, err := c.doRequest(ctx, "POST", "/v1/folders", req)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	var result FolderInfo
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process create folder response: %w", err)
	}

	return &result, nil
}

// MoveFolder re-parents a folder
func (c *Client) MoveFolder(ctx context.Context, req *MoveFolderRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}

	path := fmt.Sprintf("/v1/folders/%s/parent", req.FolderID)
	resp, err := c.doRequest(ctx, "PUT", path, req)
	if err != nil {
		return fmt.Errorf("failed to move folder: %w", err)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return fmt.Errorf("failed to process move folder response: %w", err)
	}

	return nil
}

// RenameFolder renames a folder
func (c *Client) RenameFolder(ctx context.Context, req *RenameFolderRequest) (*FolderInfo, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}

	path := fmt.Sprintf("/v1/folders/%s/name", req.FolderID)
	resp, err := c.doRequest(ctx, "PUT", path, req)
	if err != nil {
		return nil, fmt.Errorf("failed to rename folder: %w", err)
	}

	var result FolderInfo
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process rename folder response: %w", err)
	}

	return &result, nil
}

// DeleteFolder deletes a folder by id
func (c *Client) DeleteFolder(ctx context.Context, folderID string) error {
	if folderID == "" {
		return fmt.Errorf("folder ID is required")
	}

	path := fmt.Sprintf("/v1/folders/%s", folderID)
	resp, err := c.doRequest(ctx, "DELETE", path, nil)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	if err := c.handleResponse(resp, nil); err != nil {
		return fmt.Errorf("failed to process delete folder response: %w", err)
	}

	return nil
}
