package main

import (
	"net/http"

	"flyerprice/internal/params"
	"flyerprice/internal/store"
)

// listHistoryHandler returns price history entries. Unlike the other listings,
// pagination here is mandatory because history tables grow without bound.
func (app *application) listHistoryHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ve := &params.ValidationError{}

	p := params.RequirePagination(q, ve)
	list := store.HistoryListQuery{
		ProductID: params.OptionalUUID(q, "productId", ve),
		StoreID:   params.OptionalUUID(q, "storeId", ve),
		Limit:     p.Limit,
		Offset:    p.Offset(),
	}

	if err := ve.Err(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.History.List(r.Context(), list)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.paginatedJSON(w, items, p, total); err != nil {
		app.internalServerError(w, r, err)
	}
}
