// Raw request helpers for debugging the Festify API
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/festify/internal/shared"
)

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Raw performs a request to the given path and returns the undecoded response.
//
// Paths are relative to the base URL; a missing leading slash is added.
// Non-2xx answers are returned as responses, not errors.
func (f *FestifyService) Raw(ctx context.Context, method, path string, body []byte) (*APIResponse, error) {
	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: %q is not a path relative to %s", shared.ErrInvalidArgument, path, f.baseURL)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	status, headers, data, err := f.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	apiResp := &APIResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       data,
	}

	var jsonData any
	if err := json.Unmarshal(data, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// Get performs a GET request to the specified path.
func (f *FestifyService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return f.Raw(ctx, http.MethodGet, path, nil)
}

// Put performs a PUT request with the given JSON body.
func (f *FestifyService) Put(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return f.Raw(ctx, http.MethodPut, path, data)
}
