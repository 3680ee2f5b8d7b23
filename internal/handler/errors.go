package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"socialfeed/internal/apperr"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError maps an error kind to an HTTP status. Unexpected errors are
// logged and reported as a bare 500 so storage details stay server-side.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrPollExpired):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrUnauthorized):
		WriteError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrAlreadyVoted):
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperr.ErrDependency):
		WriteError(w, err.Error(), http.StatusBadGateway)
	default:
		log.WithError(err).Error("request failed")
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
