package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/dogial/internal/api"
	"github.com/and161185/dogial/internal/errs"
)

const maxBody = 1 << 20

func errorBody(msg string) api.ErrorResponse { return api.ErrorResponse{Error: msg} }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, errs.ErrAlreadyExists):
		writeJSON(w, http.StatusBadRequest, errorBody("email already registered"))
	case errors.Is(err, errs.ErrOwnerNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(errs.ErrOwnerNotFound.Error()))
	case errors.Is(err, errs.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(errs.ErrNotFound.Error()))
	case errors.Is(err, errs.ErrUnauthorized):
		unauthorized(w, "bad credentials")
	case errors.Is(err, errs.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, errorBody("too many failed attempts, try later"))
	default:
		if !errors.Is(err, errs.ErrInternal) {
			log.Error("unmapped error", zap.Error(err))
		}
		writeJSON(w, http.StatusInternalServerError, errorBody(errs.ErrInternal.Error()))
	}
}

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed body", errs.ErrInvalidInput)
	}
	if err := api.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed id", errs.ErrInvalidInput)
	}
	return id, nil
}
