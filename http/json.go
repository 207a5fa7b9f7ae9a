package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"dealdesk/service"
)

const maxBodySize = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func readJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after json body")
	}
	return nil
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		log.Error().Err(err).Msg("encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}

func writeError(w http.ResponseWriter, log zerolog.Logger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

// decodePost enforces POST + JSON and decodes the body into dst. It writes
// the error response itself and reports whether the handler should go on.
func decodePost(w http.ResponseWriter, r *http.Request, log zerolog.Logger, dst any) bool {
	if r.Method != http.MethodPost {
		writeError(w, log, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		writeError(w, log, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}

	if err := readJSON(r, dst); err != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid request body")
		writeError(w, log, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}
	log.Error().Err(err).Msg("calculation failed")
	writeError(w, log, http.StatusInternalServerError, "internal server error")
}
