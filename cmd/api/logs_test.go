package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOnlyEndpoints(t *testing.T) {
	paths := []string{"/logs/extraction", "/logs/llm", "/stats/parsing-errors"}

	t.Run("anonymous callers get 401", func(t *testing.T) {
		app := newTestApplication()

		for _, path := range paths {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := executeRequest(app, req)

			require.Equal(t, http.StatusUnauthorized, rr.Code, path)
		}
	})

	t.Run("authenticated non-admins get 403", func(t *testing.T) {
		app := newTestApplication()

		for _, path := range paths {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", bearerToken(app, "user"))
			rr := executeRequest(app, req)

			require.Equal(t, http.StatusForbidden, rr.Code, path)
		}
	})

	t.Run("admins get through", func(t *testing.T) {
		app := newTestApplication()

		for _, path := range paths {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", bearerToken(app, "admin"))
			rr := executeRequest(app, req)

			require.Equal(t, http.StatusOK, rr.Code, path)
		}
	})
}

func TestListExtractionLogs(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodGet, "/logs/extraction?status=bogus", nil)
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)

		var got struct {
			Details []struct {
				Message string `json:"message"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got.Details, 1)
		assert.Equal(t, "Status must be one of: success, error, partial", got.Details[0].Message)
	})

	t.Run("partial is a valid extraction status", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodGet, "/logs/extraction?status=partial", nil)
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestListLLMLogs(t *testing.T) {
	t.Run("timeout is a valid llm status", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodGet, "/logs/llm?status=timeout", nil)
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("partial is not", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodGet, "/logs/llm?status=partial", nil)
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
