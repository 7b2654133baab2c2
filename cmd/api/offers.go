package main

import (
	"net/http"
	"strings"

	"flyerprice/internal/params"
	"flyerprice/internal/store"

	"github.com/go-chi/chi/v5"
)

func (app *application) listOffersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ve := &params.ValidationError{}

	p := params.ParsePagination(q, ve)

	sort := store.DefaultOfferSort
	if s := strings.TrimSpace(q.Get("sort")); s != "" {
		sort = s
	}

	list := store.OfferListQuery{
		StoreID:    params.OptionalUUID(q, "storeId", ve),
		CategoryID: params.OptionalUUID(q, "categoryId", ve),
		Sort:       sort,
		Limit:      p.Limit,
		Offset:     p.Offset(),
	}

	if err := ve.Err(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Offers.List(r.Context(), list)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.paginatedJSON(w, items, p, total); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.PathUUID("offer", chi.URLParam(r, "offerID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	offer, err := app.store.Offers.GetByID(r.Context(), id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if offer == nil {
		app.notFoundResponse(w, r, "Offer not found")
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, offer); err != nil {
		app.internalServerError(w, r, err)
	}
}
