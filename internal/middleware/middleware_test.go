package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityProbe records the identity the middleware resolved, if any.
func identityProbe(gotID *int64, gotOK *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotID, *gotOK = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		demoUserID int64
		expectedID int64
		expectedOK bool
	}{
		{
			name:       "Numeric bearer token resolves",
			authHeader: "Bearer 42",
			expectedID: 42,
			expectedOK: true,
		},
		{
			name:       "No header, demo disabled",
			authHeader: "",
			expectedOK: false,
		},
		{
			name:       "No header, demo enabled",
			authHeader: "",
			demoUserID: 1,
			expectedID: 1,
			expectedOK: true,
		},
		{
			name:       "Non-numeric token carries no identity",
			authHeader: "Bearer not-a-number",
			expectedOK: false,
		},
		{
			name:       "Non-numeric token does not fall back to demo",
			authHeader: "Bearer not-a-number",
			demoUserID: 1,
			expectedOK: false,
		},
		{
			name:       "Wrong scheme ignored",
			authHeader: "Basic dXNlcjpwYXNz",
			expectedOK: false,
		},
		{
			name:       "Explicit token wins over demo",
			authHeader: "Bearer 42",
			demoUserID: 1,
			expectedID: 42,
			expectedOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotOK bool
			handler := Identity(tt.demoUserID, zerolog.Nop())(identityProbe(&gotID, &gotOK))

			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.expectedOK, gotOK)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedID, gotID)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Run("Assigns a fresh id", func(t *testing.T) {
		var ctxID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxID = RequestIDFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		headerID := rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, headerID)
		assert.Equal(t, headerID, ctxID)
	})

	t.Run("Preserves a caller-supplied id", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "caller-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "caller-id", rec.Header().Get("X-Request-ID"))
	})
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("Headers set on normal requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("Preflight short-circuits", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRecovery(t *testing.T) {
	handler := Recovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message": "internal server error"}`, rec.Body.String())
}
