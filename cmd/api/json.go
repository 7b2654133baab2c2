package main

import (
	"encoding/json"
	"net/http"

	"flyerprice/internal/params"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
}

// paginationMeta echoes the requested window plus the exact total of matching
// rows, so the same total appears on every page of one result set.
type paginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type paginatedResponse struct {
	Items      any            `json:"items"`
	Pagination paginationMeta `json:"pagination"`
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 // 1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Error string `json:"error"`
	}

	return writeJSON(w, status, &envelope{Error: message})
}

// writeValidationError carries the per-field details alongside the summary
// message so clients can highlight individual inputs.
func writeValidationError(w http.ResponseWriter, message string, details []params.FieldError) error {
	type envelope struct {
		Error   string              `json:"error"`
		Details []params.FieldError `json:"details,omitempty"`
	}

	return writeJSON(w, http.StatusBadRequest, &envelope{Error: message, Details: details})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	return writeJSON(w, status, data)
}

func (app *application) paginatedJSON(w http.ResponseWriter, items any, p params.Pagination, total int) error {
	return writeJSON(w, http.StatusOK, paginatedResponse{
		Items: items,
		Pagination: paginationMeta{
			Page:  p.Page,
			Limit: p.Limit,
			Total: total,
		},
	})
}
