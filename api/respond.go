package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/setidure/blog-api/errs"
)

// Responder writes the service's uniform JSON envelope. Every response
// carries "success" plus either data/message or error/details.
type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps typed errors onto the envelope. Validation failures carry
// the full list of messages; anything untyped is logged and answered with a
// generic 500 so internal detail never leaves the process.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var vErr *errs.ValidationError
	if errors.As(err, &vErr) {
		r.WriteJSON(w, vErr.StatusCode(), map[string]any{
			"success": false,
			"error":   "Validation error",
			"details": vErr.Messages,
		})
		return
	}

	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			r.logger.Error().Err(apiErr.Cause).Msg(apiErr.Error())
		}
		r.WriteJSON(w, apiErr.StatusCode, map[string]any{
			"success": false,
			"error":   apiErr.Error(),
		})
		return
	}

	r.logger.Error().Err(err).Msg("unexpected error")
	r.WriteJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "Something went wrong!",
	})
}
