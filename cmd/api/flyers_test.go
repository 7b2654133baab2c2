package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flyerprice/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFlyerID = "3f2e9f9c-1b2a-4c3d-8e4f-5a6b7c8d9e0f"

func TestListFlyers(t *testing.T) {
	t.Run("valid flag only honours the literal true", func(t *testing.T) {
		app := newTestApplication()
		flyers := &mockFlyersStore{}
		app.store.Flyers = flyers

		req := httptest.NewRequest(http.MethodGet, "/flyers?valid=true", nil)
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, flyers.lastQuery.Valid)

		req = httptest.NewRequest(http.MethodGet, "/flyers?valid=yes", nil)
		rr = executeRequest(app, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, flyers.lastQuery.Valid)
	})
}

func TestTriggerFetchFlyers(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodPost, "/flyers/fetch", strings.NewReader(`{}`))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Unauthorized", got["error"])
	})

	t.Run("requires the admin role", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodPost, "/flyers/fetch", strings.NewReader(`{}`))
		req.Header.Set("Authorization", bearerToken(app, "user"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusForbidden, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Forbidden: Admin access required", got["error"])
	})

	t.Run("accepts the job", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodPost, "/flyers/fetch", strings.NewReader(`{}`))
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusAccepted, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.NotEmpty(t, got["jobId"])

		_, ok := app.jobs.Get(got["jobId"])
		assert.True(t, ok, "accepted job must be queued")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodPost, "/flyers/fetch", strings.NewReader(`{`))
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTriggerExtractFlyer(t *testing.T) {
	t.Run("body and path flyer ids must match", func(t *testing.T) {
		app := newTestApplication()
		flyers := &mockFlyersStore{flyer: &store.FlyerDTO{ID: testFlyerID}}
		app.store.Flyers = flyers

		body := `{"flyerId":"11111111-1111-1111-1111-111111111111"}`
		req := httptest.NewRequest(http.MethodPost, "/flyers/"+testFlyerID+"/extract", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, flyers.getCalls, "mismatch must be caught before any lookup")

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Flyer ID in request body does not match path parameter", got["error"])
	})

	t.Run("unknown flyer is 404", func(t *testing.T) {
		app := newTestApplication()
		app.store.Flyers = &mockFlyersStore{flyer: nil}

		body := `{"flyerId":"` + testFlyerID + `"}`
		req := httptest.NewRequest(http.MethodPost, "/flyers/"+testFlyerID+"/extract", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusNotFound, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Flyer not found", got["error"])
	})

	t.Run("missing flyerId in body is 400", func(t *testing.T) {
		app := newTestApplication()
		app.store.Flyers = &mockFlyersStore{flyer: &store.FlyerDTO{ID: testFlyerID}}

		req := httptest.NewRequest(http.MethodPost, "/flyers/"+testFlyerID+"/extract", strings.NewReader(`{}`))
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("accepts the job", func(t *testing.T) {
		app := newTestApplication()
		app.store.Flyers = &mockFlyersStore{flyer: &store.FlyerDTO{ID: testFlyerID}}

		body := `{"flyerId":"` + testFlyerID + `"}`
		req := httptest.NewRequest(http.MethodPost, "/flyers/"+testFlyerID+"/extract", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(app, "admin"))
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusAccepted, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		job, ok := app.jobs.Get(got["jobId"])
		require.True(t, ok)
		assert.Equal(t, testFlyerID, job.FlyerID)
	})
}
