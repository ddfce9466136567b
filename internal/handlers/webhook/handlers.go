package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/walletping/walletping/internal/dispatch"
)

// signatureHeader carries the provider's hex HMAC-SHA256 of the body.
const signatureHeader = "x-signature"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleStreamEvent hands the raw body and signature to the dispatcher and
// translates its outcome onto the provider's retry contract: 401 for bad
// signatures, 5xx only for transient failures the provider should retry, 200
// for everything terminal.
func (s *Server) handleStreamEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unreadable body"})
		return
	}

	outcome, err := s.dispatcher.HandleEvent(r.Context(), body, r.Header.Get(signatureHeader))
	switch {
	case errors.Is(err, dispatch.ErrBadSignature):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid signature"})
	case errors.Is(err, dispatch.ErrMalformedPayload):
		// Permanently broken payloads are acknowledged so the provider does
		// not retry them; the rejection is already logged.
		writeJSON(w, http.StatusOK, map[string]any{"status": "rejected", "reason": "malformed payload"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	case outcome.Probe:
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "message": "connectivity probe acknowledged"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "processed": outcome.Alerts})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
