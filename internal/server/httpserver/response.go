package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

var errNoBody = errors.New("empty body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON object from the request body. An empty body
// or a literal null yields errNoBody.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return errNoBody
		}
		return err
	}
	if string(raw) == "null" {
		return errNoBody
	}
	return json.Unmarshal(raw, dst)
}

// writeDecodeError answers a failed decodeJSON.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNoBody) {
		writeError(w, http.StatusBadRequest, msgNoJSON)
		return
	}
	writeError(w, http.StatusBadRequest, msgInvalidJSON)
}
