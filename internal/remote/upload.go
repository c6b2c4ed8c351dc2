package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/justalter/dancectl/internal/catalog"
)

// Payload is the body of one catalog upload.
type Payload struct {
	ContributorID string          `json:"contributorId"`
	Timestamp     string          `json:"timestamp"`
	Content       catalog.Catalog `json:"content"`
}

// Validate checks the payload before it leaves the machine.
func (p Payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ContributorID, validation.Required),
		validation.Field(&p.Timestamp, validation.Required),
		validation.Field(&p.Content, validation.NotNil),
	)
}

// Uploader ships catalog snapshots to a configured endpoint.
type Uploader struct {
	endpoint string
	http     *http.Client
	now      func() time.Time
}

// NewUploader creates an uploader for the given endpoint.
func NewUploader(endpoint string, timeout time.Duration) (*Uploader, error) {
	if err := validation.Validate(endpoint, validation.Required, is.URL); err != nil {
		return nil, fmt.Errorf("upload endpoint: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Uploader{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}, nil
}

// Upload posts {contributor, timestamp, full catalog} to the endpoint.
// Transport errors and non-2xx responses come back as *UploadError with a
// human-readable reason. The catalog is serialized from a snapshot and
// never mutated, whatever the outcome.
func (u *Uploader) Upload(ctx context.Context, cat catalog.Catalog, contributorID string) error {
	payload := Payload{
		ContributorID: contributorID,
		Timestamp:     u.now().UTC().Format(time.RFC3339),
		Content:       cat.Clone(),
	}
	if err := payload.Validate(); err != nil {
		return &UploadError{Reason: err.Error()}
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return &UploadError{Reason: fmt.Sprintf("encoding payload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return &UploadError{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.http.Do(req)
	if err != nil {
		return &UploadError{Reason: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		reason := fmt.Sprintf("server responded %d", resp.StatusCode)
		if msg := strings.TrimSpace(string(detail)); msg != "" {
			reason += ": " + msg
		}
		return &UploadError{Reason: reason}
	}
	return nil
}
