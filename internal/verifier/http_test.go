package verifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashgouda-01/dept-changes/internal/config"
	"github.com/akashgouda-01/dept-changes/internal/model"
)

func TestNewHTTP(t *testing.T) {
	t.Run("requires an endpoint", func(t *testing.T) {
		_, err := NewHTTP(config.VerifierConfig{})
		assert.Error(t, err)
	})

	t.Run("defaults the timeout", func(t *testing.T) {
		v, err := NewHTTP(config.VerifierConfig{Endpoint: "http://verifier.local"})
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, v.(*httpVerifier).timeout)
	})
}

func TestHTTPVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the reference and decodes the outcome", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

			var req verifyRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "cert-1", req.CertificateID)
			assert.Equal(t, "https://drive.google.com/file/d/abc/view", req.DriveLink)

			json.NewEncoder(w).Encode(map[string]any{"status": "VERIFIED", "score": 87.5})
		}))
		defer srv.Close()

		v, err := NewHTTP(config.VerifierConfig{Endpoint: srv.URL, APIKey: "secret", TimeoutSec: 5})
		require.NoError(t, err)

		res, err := v.Verify(ctx, "cert-1", "https://drive.google.com/file/d/abc/view")

		assert.NoError(t, err)
		assert.Equal(t, model.MLStatusVerified, res.Status)
		assert.Equal(t, 87.5, res.Score)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		v, err := NewHTTP(config.VerifierConfig{Endpoint: srv.URL, TimeoutSec: 5})
		require.NoError(t, err)

		_, err = v.Verify(ctx, "cert-1", "link")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 500")
	})

	t.Run("rejects a pending outcome", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"status": "PENDING", "score": 10})
		}))
		defer srv.Close()

		v, err := NewHTTP(config.VerifierConfig{Endpoint: srv.URL, TimeoutSec: 5})
		require.NoError(t, err)

		_, err = v.Verify(ctx, "cert-1", "link")

		assert.Error(t, err)
	})

	t.Run("rejects an out of range score", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"status": "VERIFIED", "score": 250})
		}))
		defer srv.Close()

		v, err := NewHTTP(config.VerifierConfig{Endpoint: srv.URL, TimeoutSec: 5})
		require.NoError(t, err)

		_, err = v.Verify(ctx, "cert-1", "link")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("honors the timeout", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-block
		}))
		defer srv.Close()
		defer close(block)

		v, err := NewHTTP(config.VerifierConfig{Endpoint: srv.URL, TimeoutSec: 5})
		require.NoError(t, err)

		shortCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err = v.Verify(shortCtx, "cert-1", "link")

		assert.Error(t, err)
	})
}
