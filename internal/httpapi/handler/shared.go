package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

var (
	errTrailingData = errors.New("unexpected data after JSON value")
	errNotObject    = errors.New("body must be a JSON object")
)

// requestID returns the request ID from chi's context for logging.
func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(middleware.RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// writeJSON writes v as a single JSON document with no trailing newline.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Error("encode response", "request_id", requestID(r), "error", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		slog.Debug("write response", "request_id", requestID(r), "error", err)
	}
}

// errorResponse is the JSON error body used by the preview routes.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// isTooLarge reports whether err came from a body over the LimitRequestBody cap.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// decodeBody reads exactly one JSON value from the request body.
// Anything after it other than whitespace is an error.
func decodeBody(r *http.Request) (json.RawMessage, error) {
	dec := json.NewDecoder(r.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case err == io.EOF:
		return raw, nil
	case err != nil:
		return nil, err
	default:
		return nil, errTrailingData
	}
}

// decodeObject is decodeBody restricted to JSON objects; null, arrays and scalars are rejected.
func decodeObject(r *http.Request) (json.RawMessage, error) {
	raw, err := decodeBody(r)
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}
	return raw, nil
}

// writeDecodeError maps a body decode failure to 413 (over the size cap) or 422.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if isTooLarge(err) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	slog.Debug("rejecting request body", "request_id", requestID(r), "path", r.URL.Path, "error", err)
	http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
}
