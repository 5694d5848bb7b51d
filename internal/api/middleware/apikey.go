package middleware

import (
	"net/http"

	"github.com/stridehq/stride-api/internal/api/shared"
	"github.com/stridehq/stride-api/internal/service/auth"
)

// APIKeyHeader carries the service API key on internal endpoints.
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware guards internal endpoints (metrics, operational surfaces)
// with a bcrypt-hashed service API key.
type APIKeyMiddleware struct {
	verifier auth.APIKeyVerifier
}

// NewAPIKeyMiddleware creates a new APIKeyMiddleware.
func NewAPIKeyMiddleware(verifier auth.APIKeyVerifier) *APIKeyMiddleware {
	return &APIKeyMiddleware{verifier: verifier}
}

// Require rejects requests whose X-API-Key header does not match the
// configured hash.
func (m *APIKeyMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := m.verifier.Verify(r.Header.Get(APIKeyHeader)); err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
