package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body for every failed request. Detail carries the
// internal error text and is populated only outside production.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes payload.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteJSONError writes an ErrorResponse with the given stable message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message})
}

// WriteJSONErrorDetail writes an ErrorResponse including the internal error
// text when includeDetail is true. Callers pass includeDetail=false in
// production so connection strings and driver errors never leak.
func WriteJSONErrorDetail(w http.ResponseWriter, statusCode int, message string, err error, includeDetail bool) {
	resp := ErrorResponse{Message: message}
	if includeDetail && err != nil {
		resp.Detail = err.Error()
	}
	WriteJSON(w, statusCode, resp)
}
