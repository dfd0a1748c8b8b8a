package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"timebank/dayoff"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDayOffError maps core errors to responses: business-rule failures get
// their own actionable message, everything else is a generic 500.
func writeDayOffError(w http.ResponseWriter, err error) {
	var insufficient *dayoff.InsufficientHoursError
	if errors.As(err, &insufficient) {
		writeError(w, http.StatusBadRequest, insufficient.Error())
		return
	}
	var schedule *dayoff.ScheduleError
	if errors.As(err, &schedule) {
		writeError(w, http.StatusBadRequest, schedule.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to create day off")
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
