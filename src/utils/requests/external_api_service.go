package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tracker/src/utils"
)

// ExternalAPIService performs outbound HTTP calls with a bounded timeout and a
// fixed set of default headers.
type ExternalAPIService struct {
	client  *http.Client
	headers map[string]string
}

// NewExternalAPIService creates a service whose requests give up after timeout.
func NewExternalAPIService(timeout time.Duration, headers map[string]string) *ExternalAPIService {
	return &ExternalAPIService{
		client:  &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// makeRequest builds and executes a request. Non-2xx responses are returned as
// *utils.HTTPError and their body is closed.
func (s *ExternalAPIService) makeRequest(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (*http.Response, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, utils.NewHTTPError(resp.StatusCode, resp.Status)
	}
	return resp, nil
}

// Get makes a GET request, accepting optional query parameters.
func (s *ExternalAPIService) Get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, http.MethodGet, endpoint, params, nil)
}

// Post makes a POST request with a JSON body.
func (s *ExternalAPIService) Post(ctx context.Context, endpoint string, params url.Values, body interface{}) (*http.Response, error) {
	return s.makeRequest(ctx, http.MethodPost, endpoint, params, body)
}

// GetJSON makes a GET request and decodes the JSON response into out.
func (s *ExternalAPIService) GetJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	resp, err := s.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}
