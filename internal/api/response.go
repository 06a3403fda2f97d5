package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Envelope messages.
const (
	msgLoginOK            = "Login successful"
	msgCredentialsMissing = "Username and password are required"
	msgInvalidCredentials = "Invalid credentials"
	msgServerError        = "Server error occurred"
	msgTitleRequired      = "Title is required"
	msgDuplicateTitle     = "Todo with this title already exists"
	msgCreated            = "Todo created successfully"
	msgCreateFailed       = "Failed to create todo"
	msgInvalidBody        = "Invalid request body"
	msgInvalidID          = "Invalid item id"
	msgNotFound           = "Not found"
)

// writeJSON renders v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFailure renders {success:false, message, error}; empty fields are
// omitted.
func writeFailure(w http.ResponseWriter, status int, message string, err error) {
	env := types.Envelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	writeJSON(w, status, env)
}

// errEmptyBody marks a request that carried no body at all.
var errEmptyBody = errors.New("empty body")

// decodeBody reads a JSON object into v. A missing body leaves v at its zero
// value, matching a client that sent {}.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}
