package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// FieldError describes a single invalid query parameter.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects per-field failures from query parsing so a handler
// can return all of them in one 400 response.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "invalid query parameters"
	}
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, fmt.Sprintf("%s: %s", d.Field, d.Message))
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Details = append(e.Details, FieldError{Field: field, Message: message})
}

// Err returns the collected error, or nil when every parameter parsed cleanly.
func (e *ValidationError) Err() error {
	if len(e.Details) == 0 {
		return nil
	}
	return e
}

// Pagination holds the validated page window for a list query.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads optional ?page= and ?limit= values. Missing values fall
// back to the defaults; out-of-range or non-numeric values are recorded on ve.
func ParsePagination(q url.Values, ve *ValidationError) Pagination {
	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		switch {
		case err != nil:
			ve.Add("page", "Page must be an integer")
		case page < 1:
			ve.Add("page", "Page must be >= 1")
		default:
			p.Page = page
		}
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		switch {
		case err != nil:
			ve.Add("limit", "Limit must be an integer")
		case limit < 1:
			ve.Add("limit", "Limit must be >= 1")
		case limit > MaxLimit:
			ve.Add("limit", "Limit must be <= 100")
		default:
			p.Limit = limit
		}
	}

	return p
}

// RequirePagination is ParsePagination with both parameters mandatory, as the
// history endpoint demands.
func RequirePagination(q url.Values, ve *ValidationError) Pagination {
	if strings.TrimSpace(q.Get("page")) == "" {
		ve.Add("page", "Page is required")
	}
	if strings.TrimSpace(q.Get("limit")) == "" {
		ve.Add("limit", "Limit is required")
	}
	return ParsePagination(q, ve)
}

// OptionalUUID returns the parameter value when present and well-formed, nil
// when absent. A malformed value is recorded on ve.
func OptionalUUID(q url.Values, field string, ve *ValidationError) *string {
	raw := strings.TrimSpace(q.Get(field))
	if raw == "" {
		return nil
	}
	if _, err := uuid.Parse(raw); err != nil {
		ve.Add(field, "Invalid UUID format")
		return nil
	}
	return &raw
}

// PathUUID validates a path segment that must be a UUID. The resource name
// only shows up in the error message.
func PathUUID(resource, raw string) (string, error) {
	if _, err := uuid.Parse(raw); err != nil {
		return "", &ValidationError{Details: []FieldError{{
			Field:   "id",
			Message: fmt.Sprintf("Invalid %s ID format. Expected UUID.", resource),
		}}}
	}
	return raw, nil
}

// OptionalEnum returns the parameter value when present and listed in allowed,
// nil when absent. Anything else is recorded on ve.
func OptionalEnum(q url.Values, field string, allowed []string, ve *ValidationError) *string {
	raw := strings.TrimSpace(q.Get(field))
	if raw == "" {
		return nil
	}
	for _, a := range allowed {
		if raw == a {
			return &raw
		}
	}
	ve.Add(field, fmt.Sprintf("Status must be one of: %s", strings.Join(allowed, ", ")))
	return nil
}

// OptionalString returns a trimmed parameter value, nil when absent or blank.
func OptionalString(q url.Values, field string) *string {
	raw := strings.TrimSpace(q.Get(field))
	if raw == "" {
		return nil
	}
	return &raw
}

// OptionalBool parses ?valid= style flags: only the literal "true" means true.
func OptionalBool(q url.Values, field string) *bool {
	raw := strings.TrimSpace(q.Get(field))
	if raw == "" {
		return nil
	}
	b := raw == "true"
	return &b
}
