package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"location-reports/internal/errors"
	"location-reports/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 1 << 20

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if errors.ShouldLogError(err) {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, errorResponse{
		Code:    errors.GetErrorCode(err),
		Message: errors.GetUserMessage(err),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(dst); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.NewInvalidInputError("body", nil, "request body is required")
		}
		return errors.NewInvalidInputError("body", nil, "malformed JSON: "+err.Error())
	}
	return nil
}

// requireEmptyBody fails when the request carries any body bytes.
func requireEmptyBody(r *http.Request) error {
	if r.Body == nil {
		return nil
	}
	n, err := io.Copy(io.Discard, io.LimitReader(r.Body, 1))
	if err != nil {
		return errors.NewInvalidInputError("body", nil, "request body could not be read: "+err.Error())
	}
	if n > 0 {
		return errors.NewInvalidInputError("body", nil, "request body must be empty")
	}
	return nil
}

func pathID(r *http.Request, field string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError(field, raw, "must be an integer")
	}
	return id, nil
}
