package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"flyerprice/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStores(t *testing.T) {
	t.Run("returns all stores", func(t *testing.T) {
		app := newTestApplication()
		logo := "https://cdn.example.com/logo.png"
		app.store.Stores = &mockStoresStore{stores: []store.StoreDTO{
			{ID: "a1", Name: "Biedronka", Slug: "biedronka", LogoURL: &logo},
			{ID: "a2", Name: "Lidl", Slug: "lidl"},
		}}

		req := httptest.NewRequest(http.MethodGet, "/stores", nil)
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var got []store.StoreDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, 2)
		assert.Equal(t, "Biedronka", got[0].Name)
	})

	t.Run("rejects any query string", func(t *testing.T) {
		app := newTestApplication()

		req := httptest.NewRequest(http.MethodGet, "/stores?page=1", nil)
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "No query parameters expected.", got["error"])
	})

	t.Run("maps storage failure to 500", func(t *testing.T) {
		app := newTestApplication()
		app.store.Stores = &mockStoresStore{err: errors.New("connection refused")}

		req := httptest.NewRequest(http.MethodGet, "/stores", nil)
		rr := executeRequest(app, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Internal server error", got["error"])
	})
}

func TestListCategories(t *testing.T) {
	app := newTestApplication()
	app.store.Categories = &mockCategoriesStore{categories: []store.CategoryDTO{
		{ID: "c1", Name: "Dairy", Slug: "dairy"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got []store.CategoryDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "dairy", got[0].Slug)
}
