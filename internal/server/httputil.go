package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/scan"
	"github.com/jy-crnz/SchedulerDesigner/internal/snapshot"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// decodeBody decodes and validates a JSON request body.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", validationMessage(err))
		return false
	}
	return true
}

// parseKey extracts a "row:day" path parameter.
func parseKey(w http.ResponseWriter, r *http.Request) (grid.Key, bool) {
	raw := chi.URLParam(r, "key")
	k, err := grid.ParseKey(raw)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return grid.Key{}, false
	}
	return k, true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// writeDomainError maps domain errors to HTTP responses.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, grid.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, grid.ErrOutOfRange):
		writeError(w, http.StatusConflict, "OUT_OF_RANGE", err.Error())
	case errors.Is(err, grid.ErrInvalidTarget):
		writeError(w, http.StatusConflict, "INVALID_TARGET", err.Error())
	case errors.Is(err, reconcile.ErrUnrecognizedDay):
		writeError(w, http.StatusUnprocessableEntity, "UNRECOGNIZED_DAY", err.Error())
	case errors.Is(err, grid.ErrConfig), errors.Is(err, grid.ErrEmptySubject):
		writeError(w, http.StatusUnprocessableEntity, "INVALID_CONFIG", err.Error())
	case errors.Is(err, snapshot.ErrCorruptRecord):
		writeError(w, http.StatusUnprocessableEntity, "CORRUPT_RECORD", err.Error())
	case errors.Is(err, scan.ErrEmptyImage):
		writeError(w, http.StatusBadRequest, "NO_IMAGE", err.Error())
	case errors.Is(err, scan.ErrUnsupportedImage):
		writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_IMAGE", err.Error())
	case errors.Is(err, scan.ErrUpstream):
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	default:
		s.log.Error("internal error", "id", requestIDFrom(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
