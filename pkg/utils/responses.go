package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// ResponseJSON writes an envelope with an explicit status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	writeEnvelope(w, code, Response{Status: status, Message: message, Data: data, Errors: errors})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusOK, Response{Status: true, Message: message, Data: data})
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusCreated, Response{Status: true, Message: message, Data: data})
}

// ResponseBadRequest covers both validation failures (errors holds the
// field map) and booking conflicts.
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	writeEnvelope(w, http.StatusBadRequest, Response{Message: message, Errors: errors})
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusUnauthorized, Response{Message: message})
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusForbidden, Response{Message: message})
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusNotFound, Response{Message: message})
}

func ResponseServiceUnavailable(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusServiceUnavailable, Response{Message: message})
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusInternalServerError, Response{Message: message})
}
