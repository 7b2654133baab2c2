package main

import "net/http"

func (app *application) parsingErrorStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.store.Stats.ParsingErrors(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, stats); err != nil {
		app.internalServerError(w, r, err)
	}
}
