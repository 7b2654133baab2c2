package main

import (
	"net/http"

	"flyerprice/internal/params"
	"flyerprice/internal/store"

	"github.com/go-chi/chi/v5"
)

func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ve := &params.ValidationError{}

	p := params.ParsePagination(q, ve)
	search := store.ProductSearchQuery{
		Q:          params.OptionalString(q, "q"),
		CategoryID: params.OptionalUUID(q, "categoryId", ve),
		Limit:      p.Limit,
		Offset:     p.Offset(),
	}

	if err := ve.Err(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Products.Search(r.Context(), search)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.paginatedJSON(w, items, p, total); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.PathUUID("product", chi.URLParam(r, "productID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.store.Products.GetByID(r.Context(), id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if product == nil {
		app.notFoundResponse(w, r, "Product not found")
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}
