package result

import (
	"encoding/json"
	"net/http"
)

// Result is the uniform envelope every endpoint returns. Exactly one of
// Data/Errors is populated; a success with no payload carries a null Data.
// Data is always serialized so empty-but-valid payloads (an empty listing,
// a null success) keep the data key on the wire.
type Result[T any] struct {
	Data   T        `json:"data"`
	Errors []string `json:"errors,omitempty"`
}

// Ok wraps a success payload.
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Fail wraps one or more user-facing error messages. Messages are data for
// the client, never internal error text.
func Fail[T any](msgs ...string) Result[T] {
	return Result[T]{Errors: msgs}
}

// Write serializes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOk writes a 200 success envelope.
func WriteOk[T any](w http.ResponseWriter, data T) {
	Write(w, http.StatusOK, Ok(data))
}

// WriteFail writes a failure envelope with the given status.
func WriteFail(w http.ResponseWriter, status int, msgs ...string) {
	Write(w, status, Fail[any](msgs...))
}
