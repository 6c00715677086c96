package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"alumnilink_server/services"
)

// writeServiceError maps workflow errors onto HTTP statuses. Conflicts and
// validation failures were detected before any write; anything unrecognized
// is treated as a transient store failure the caller may retry.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyFriends),
		errors.Is(err, services.ErrAlreadyPending):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrRequesterNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrItemNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrIncompleteTargetInfo):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
