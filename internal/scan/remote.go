package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// FormField is the multipart field carrying the uploaded image.
const FormField = "scheduleImage"

// ScanPath is the scan endpoint path.
const ScanPath = "/api/scan-schedule"

// ErrMalformedResponse is returned when a scan server answers with a body
// that is not a scan response.
var ErrMalformedResponse = errors.New("malformed scan response")

// RemoteClient calls a schedwall scan server over HTTP.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteClient creates a client for the server at baseURL.
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Scan uploads an image and returns the parsed response.
func (c *RemoteClient) Scan(ctx context.Context, filename string, data []byte) (Response, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(FormField, filepath.Base(filename))
	if err != nil {
		return Response{}, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return Response{}, fmt.Errorf("writing form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return Response{}, fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ScanPath, &body)
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Response{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, fmt.Errorf("%w (status %d): %s", ErrUpstream, resp.StatusCode, errorMessage(raw))
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil || out.Schedule == nil {
		return Response{}, fmt.Errorf("%w: %s", ErrMalformedResponse, strings.TrimSpace(string(raw)))
	}
	return out, nil
}

// errorMessage pulls {"error": "..."} out of a failure body, falling back to
// the raw text.
func errorMessage(raw []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(raw))
}
