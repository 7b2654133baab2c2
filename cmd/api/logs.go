package main

import (
	"net/http"

	"flyerprice/internal/params"
	"flyerprice/internal/store"
)

var (
	extractionStatuses = []string{"success", "error", "partial"}
	llmStatuses        = []string{"success", "error", "timeout"}
)

func (app *application) listExtractionLogsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ve := &params.ValidationError{}

	p := params.ParsePagination(q, ve)
	list := store.ExtractionLogQuery{
		FlyerID: params.OptionalUUID(q, "flyerId", ve),
		Status:  params.OptionalEnum(q, "status", extractionStatuses, ve),
		Limit:   p.Limit,
		Offset:  p.Offset(),
	}

	if err := ve.Err(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Logs.Extraction(r.Context(), list)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.paginatedJSON(w, items, p, total); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) listLLMLogsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ve := &params.ValidationError{}

	p := params.ParsePagination(q, ve)
	list := store.LLMLogQuery{
		Model:  params.OptionalString(q, "model"),
		Status: params.OptionalEnum(q, "status", llmStatuses, ve),
		Limit:  p.Limit,
		Offset: p.Offset(),
	}

	if err := ve.Err(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Logs.LLM(r.Context(), list)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.paginatedJSON(w, items, p, total); err != nil {
		app.internalServerError(w, r, err)
	}
}
