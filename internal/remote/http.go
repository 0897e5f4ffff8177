package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/studyquery/backend/internal/models"
)

// HTTPClient talks to the inference service over HTTP/JSON. Upload bodies
// are multipart (field name "document"); everything else is JSON.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
}

// NewHTTPClient creates a client for the service at baseURL. The timeout
// bounds each individual call; the state machine itself enforces none.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// UploadDocument streams a document to the role-specific upload endpoint
// and returns the indexed unit count the service reports.
func (c *HTTPClient) UploadDocument(ctx context.Context, role models.SlotRole, name string, r io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("document", name)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("writing form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/upload/%s", c.baseURL, role)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkServiceError(resp); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}

	return &result, nil
}

// Query posts the question and returns the raw mode-tagged payload.
func (c *HTTPClient) Query(ctx context.Context, question string) (*QueryResult, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkServiceError(resp); err != nil {
		return nil, err
	}

	var result QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}

	return &result, nil
}

// checkServiceError turns a non-2xx response into a ServiceError carrying
// the service's own message when one is present.
func checkServiceError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return &ServiceError{Message: payload.Error}
	}

	return &ServiceError{Message: fmt.Sprintf("inference service returned status %d", resp.StatusCode)}
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
