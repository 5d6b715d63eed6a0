package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/akashgouda-01/dept-changes/internal/config"
	"github.com/akashgouda-01/dept-changes/internal/model"
)

// httpVerifier calls a remote verification service over HTTP.
// It is safe for concurrent use by multiple goroutines.
type httpVerifier struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	client   *http.Client
}

// NewHTTP creates a Verifier backed by the configured HTTP endpoint.
func NewHTTP(cfg config.VerifierConfig) (Verifier, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("verifier endpoint is required")
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpVerifier{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		timeout:  timeout,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

type verifyRequest struct {
	CertificateID string `json:"certificate_id"`
	DriveLink     string `json:"drive_link"`
}

// Verify posts the content reference and decodes {status, score}.
// Every failure path returns before the certificate is touched, so callers can
// retry with a fresh call later.
func (v *httpVerifier) Verify(ctx context.Context, certificateID, driveLink string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	body, err := json.Marshal(verifyRequest{CertificateID: certificateID, DriveLink: driveLink})
	if err != nil {
		return Result{}, fmt.Errorf("encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if v.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("verify call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("verify call: unexpected status %d", resp.StatusCode)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("decode verify response: %w", err)
	}

	if res.Status != model.MLStatusVerified && res.Status != model.MLStatusDuplicate {
		return Result{}, fmt.Errorf("verify call: unexpected status value %q", res.Status)
	}
	if res.Score < 0 || res.Score > 100 {
		return Result{}, fmt.Errorf("verify call: score %v out of range", res.Score)
	}

	return res, nil
}
