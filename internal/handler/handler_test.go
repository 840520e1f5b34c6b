package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/api"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// serve routes one request through a chi router so URL parameters resolve
// exactly as in production. userID 0 means no caller identity.
func serve(t *testing.T, route api.Route, fn http.HandlerFunc, target string, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.MethodFunc(route.Method, route.Pattern(), fn)

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(route.Method, target, reqBody)
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func requireErrorBody(t *testing.T, rec *httptest.ResponseRecorder, message, field string) {
	t.Helper()
	body := rec.Body.String()
	require.Contains(t, body, message)
	if field != "" {
		require.Contains(t, body, `"field":"`+field+`"`)
	}
}
