package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrNoResult is returned when a classifier response carries no result.
var ErrNoResult = errors.New("classifier response has no result")

// Classifier predicts the digit drawn in a BitmapSize x BitmapSize bitmap.
type Classifier interface {
	Predict(ctx context.Context, image BitGrid) (int, error)
}

type predictRequest struct {
	Image BitGrid `json:"image"`
}

type predictResponse struct {
	Result *int `json:"result"`
}

// HTTPClassifier posts bitmaps to a remote prediction service.
type HTTPClassifier struct {
	url    *url.URL
	client *http.Client
}

// NewHTTPClassifier creates a classifier for the service at rawURL.
// A nil client selects http.DefaultClient.
func NewHTTPClassifier(rawURL string, client *http.Client) (*HTTPClassifier, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid url %q: scheme must be http or https", rawURL)
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPClassifier{url: u, client: client}, nil
}

// Predict sends image as {"image": [...]} to the service root and returns
// the "result" field of the reply. It makes exactly one attempt.
func (c *HTTPClassifier) Predict(ctx context.Context, image BitGrid) (int, error) {
	body, err := json.Marshal(predictRequest{Image: image})
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		resp, _ := io.ReadAll(io.LimitReader(response.Body, 4<<10))
		return 0, fmt.Errorf("server response status code: %d, body: %s", response.StatusCode, bytes.TrimSpace(resp))
	}

	var resp predictResponse
	if err = json.NewDecoder(response.Body).Decode(&resp); err != nil {
		return 0, fmt.Errorf("decode response body: %w", err)
	}
	if resp.Result == nil {
		return 0, ErrNoResult
	}

	return *resp.Result, nil
}

// CheckHealth reports whether the service answers at all. The prediction
// endpoint only accepts POST, so any HTTP response below 500 counts as up.
func (c *HTTPClassifier) CheckHealth(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()
	io.Copy(io.Discard, response.Body)

	if response.StatusCode >= 500 {
		return fmt.Errorf("classifier unhealthy: %d", response.StatusCode)
	}
	return nil
}

func (c *HTTPClassifier) endpoint() string {
	u := *c.url
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// String returns the endpoint URL.
func (c *HTTPClassifier) String() string {
	return c.url.String()
}
