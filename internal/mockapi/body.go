package mockapi

import (
	"bytes"
	"encoding/json"
)

var emptyObject = json.RawMessage(`{}`)

// NormalizeBody turns a request body into a JSON object. It accepts the
// object itself or a JSON string that encodes one (clients that stringify
// twice). Anything else, including an empty body, becomes {} and coerced
// reports true; callers log that instead of failing the request.
func NormalizeBody(raw []byte) (obj json.RawMessage, coerced bool) {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return emptyObject, true
	}

	if b[0] == '"' {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return emptyObject, true
		}
		b = bytes.TrimSpace([]byte(inner))
	}

	if len(b) == 0 || b[0] != '{' || !json.Valid(b) {
		return emptyObject, true
	}
	return json.RawMessage(b), false
}

// decodeRecord decodes a normalized object into a new record. Well-formed
// JSON with a wrongly typed field is rejected rather than coerced.
func decodeRecord[T any](obj json.RawMessage) (T, error) {
	var rec T
	if err := json.Unmarshal(obj, &rec); err != nil {
		var zero T
		return zero, &PayloadError{Err: err}
	}
	return rec, nil
}

// PayloadError wraps a decode failure on a structurally valid body.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string { return "invalid payload: " + e.Err.Error() }
func (e *PayloadError) Unwrap() error { return e.Err }
func (e *PayloadError) Is(target error) bool {
	return target == ErrInvalidPayload
}
