package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"realestate/app/repositories"
	"realestate/app/services"
	"realestate/app/validation"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// maxLimit caps the page size a client may ask for.
const maxLimit = 100

// ErrorBody is the JSON shape of every error response. Only Error is set
// for client errors.
type ErrorBody struct {
	Error        string `json:"error"`
	ErrorType    string `json:"errorType,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Details      string `json:"details,omitempty"`
}

var errInvalidBody = &validation.Error{Message: "Invalid request body"}

// decodeBody decodes the JSON body into v. An empty body decodes as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps err onto a status and a safe message. entity names the
// resource in not-found and failure messages.
func sendError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	var verr *validation.Error
	var derr *services.DomainError
	switch {
	case errors.As(err, &verr):
		sendJSON(w, http.StatusBadRequest, ErrorBody{Error: verr.Message})
	case errors.As(err, &derr):
		sendJSON(w, http.StatusBadRequest, ErrorBody{Error: derr.Message})
	case errors.Is(err, repositories.ErrNotFound):
		sendJSON(w, http.StatusNotFound, ErrorBody{Error: entity + " not found"})
	case errors.Is(err, repositories.ErrUnavailable):
		zerolog.Ctx(r.Context()).Error().Err(err).Str("entity", entity).Msg("database unavailable")
		sendJSON(w, http.StatusServiceUnavailable, ErrorBody{
			Error:        "Database connection failed",
			ErrorType:    "DatabaseUnavailable",
			ErrorMessage: "The database is currently unavailable. Please try again later.",
			Details:      "Could not reach the database while handling the " + strings.ToLower(entity) + " request",
		})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("entity", entity).Msg("request failed")
		sendJSON(w, http.StatusInternalServerError, ErrorBody{
			Error:        "Internal server error",
			ErrorType:    "InternalError",
			ErrorMessage: "Failed to process " + strings.ToLower(entity) + " request",
		})
	}
}

// pageParams reads page and limit from the query. Missing, malformed or
// non-positive values fall back to page 1 and defaultLimit.
func pageParams(r *http.Request, defaultLimit int) repositories.Page {
	page := repositories.Page{Number: 1, Limit: defaultLimit}
	q := r.URL.Query()
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page.Number = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
		page.Limit = l
	}
	if page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}
