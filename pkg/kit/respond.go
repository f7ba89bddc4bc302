package kit

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Envelope is the wire shape of every API response: {success, data, meta?}.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Meta    any        `json:"meta,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Entity    string `json:"entity,omitempty"`
	ID        string `json:"id,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps data in a success envelope. A nil data value is still
// written as "data": null so callers can tell an empty result from an ack.
func WriteData(w http.ResponseWriter, status int, data, meta any) {
	WriteJSON(w, status, struct {
		Success bool `json:"success"`
		Data    any  `json:"data"`
		Meta    any  `json:"meta,omitempty"`
	}{Success: true, Data: data, Meta: meta})
}

// WriteAck writes the bare {"success":true} acknowledgement.
func WriteAck(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true})
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, msg string, details any) {
	WriteFailure(w, r, status, ErrorBody{Code: code, Message: msg, Details: details})
}

func WriteFailure(w http.ResponseWriter, r *http.Request, status int, body ErrorBody) {
	body.RequestID = chimw.GetReqID(r.Context())
	WriteJSON(w, status, Envelope{Success: false, Error: &body})
}
