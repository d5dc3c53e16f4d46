package terracarta

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadMapRequest represents the request to upload a new map file
type UploadMapRequest struct {
	WorkspaceID string
	FolderID    string
	Name        string
	ContentType string
	Reader      io.Reader
}

// MoveMap moves a map file into another folder
func (c *Client) MoveMap(ctx context.Context, req *MoveMapRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}

	path := fmt.Sprintf("/v1/maps/%s/folder", req.MapID)
	resp, err := c.doRequest(ctx, "PUT", path, req)
	if err != nil {
		return fmt.Errorf("failed to move map: %w", err)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return fmt.Errorf("failed to process move map response: %w", err)
	}

	return nil
}

// DeleteMap deletes a map file by id
func (c *Client) DeleteMap(ctx context.Context, mapID string) error {
	if mapID == "" {
		return fmt.Errorf("map ID is required")
	}

	path := fmt.Sprintf("/v1/maps/%s", mapID)
	resp, err := c.doRequest(ctx, "DELETE", path, nil)
	if err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := c.handleResponse(resp, &result); err != nil {
		return fmt.Errorf("failed to process delete map response: %w", err)
	}

	return nil
}

// UploadMap uploads a new map file into a folder as a multipart request and
// returns the created map id and the version whose processing job can be
// polled with GetVersion
func (c *Client) UploadMap(ctx context.Context, req *UploadMapRequest) (*UploadMapResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if req.WorkspaceID == "" {
		return nil, fmt.Errorf("workspace ID is required")
	}
	if req.Reader == nil {
		return nil, fmt.Errorf("reader is required")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("workspace_id", req.WorkspaceID); err != nil {
		return nil, fmt.Errorf("failed to write workspace field: %w", err)
	}
	if req.FolderID != "" {
		if err := writer.WriteField("folder_id", req.FolderID); err != nil {
			return nil, fmt.Errorf("failed to write folder field: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, req.Reader); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := c.config.BaseURL + "/v1/maps"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}

	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if c.config.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to upload map: %w", err)
	}

	var result UploadMapResponse
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to process upload map response: %w", err)
	}

	return &result, nil
}
