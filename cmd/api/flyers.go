package main

import (
	"net/http"

	"flyerprice/internal/jobs"
	"flyerprice/internal/params"
	"flyerprice/internal/store"

	"github.com/go-chi/chi/v5"
)

type fetchFlyersCommand struct{}

type extractFlyerCommand struct {
	FlyerID string `json:"flyerId" validate:"required,uuid"`
}

func (app *application) listFlyersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ve := &params.ValidationError{}

	p := params.ParsePagination(q, ve)

	valid := false
	if v := params.OptionalBool(q, "valid"); v != nil {
		valid = *v
	}

	list := store.FlyerListQuery{
		StoreID: params.OptionalUUID(q, "storeId", ve),
		Valid:   valid,
		Limit:   p.Limit,
		Offset:  p.Offset(),
	}

	if err := ve.Err(); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	items, total, err := app.store.Flyers.List(r.Context(), list)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.paginatedJSON(w, items, p, total); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getFlyerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.PathUUID("flyer", chi.URLParam(r, "flyerID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	flyer, err := app.store.Flyers.GetByID(r.Context(), id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if flyer == nil {
		app.notFoundResponse(w, r, "Flyer not found")
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, flyer); err != nil {
		app.internalServerError(w, r, err)
	}
}

// triggerFetchFlyersHandler accepts a fetch job for every store's latest flyer
// PDFs. The body must be an empty JSON object.
func (app *application) triggerFetchFlyersHandler(w http.ResponseWriter, r *http.Request) {
	var cmd fetchFlyersCommand
	if err := readJSON(w, r, &cmd); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	job := app.jobs.Enqueue(jobs.TypeFetchFlyers, "")

	app.logger.Infow("fetch flyers job accepted", "jobId", job.ID)

	if err := app.jsonResponse(w, http.StatusAccepted, map[string]string{"jobId": job.ID}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// triggerExtractFlyerHandler accepts an extraction job for one flyer. The body
// must name the same flyer as the path; the mismatch check runs before any
// database access.
func (app *application) triggerExtractFlyerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := params.PathUUID("flyer", chi.URLParam(r, "flyerID"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var cmd extractFlyerCommand
	if err := readJSON(w, r, &cmd); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := Validate.Struct(cmd); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if cmd.FlyerID != id {
		writeJSONError(w, http.StatusBadRequest, "Flyer ID in request body does not match path parameter")
		return
	}

	flyer, err := app.store.Flyers.GetByID(r.Context(), id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if flyer == nil {
		app.notFoundResponse(w, r, "Flyer not found")
		return
	}

	job := app.jobs.Enqueue(jobs.TypeExtractFlyer, id)

	app.logger.Infow("extract flyer job accepted", "jobId", job.ID, "flyerId", id)

	if err := app.jsonResponse(w, http.StatusAccepted, map[string]string{"jobId": job.ID}); err != nil {
		app.internalServerError(w, r, err)
	}
}
