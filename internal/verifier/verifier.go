package verifier

// Package verifier contains the adapter contract for the external ML
// duplicate/legitimacy check. The model itself is opaque to this service; the
// adapter only carries a content reference out and a status plus confidence
// score back.

import (
	"context"

	"github.com/akashgouda-01/dept-changes/internal/model"
)

// Result is the verifier outcome for one certificate.
// Status is VERIFIED or DUPLICATE, never PENDING. Score is a 0-100 confidence.
type Result struct {
	Status model.MLStatus `json:"status"`
	Score  float64        `json:"score"`
}

// Verifier is the ML verification capability consumed by the lifecycle engine.
// Implementations must honor ctx cancellation; a slow or failing call leaves
// the certificate untouched.
type Verifier interface {
	// Verify submits the certificate's content reference for checking.
	Verify(ctx context.Context, certificateID, driveLink string) (Result, error)
}
