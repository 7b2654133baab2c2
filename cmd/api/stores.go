package main

import "net/http"

// listStoresHandler returns every store. The endpoint takes no parameters and
// rejects any query string outright.
func (app *application) listStoresHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.RawQuery != "" {
		writeJSONError(w, http.StatusBadRequest, "No query parameters expected.")
		return
	}

	stores, err := app.store.Stores.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, stores); err != nil {
		app.internalServerError(w, r, err)
	}
}
