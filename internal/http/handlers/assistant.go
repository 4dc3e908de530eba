package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type assistantRequest struct {
	Query string `json:"query"`
}

// Assistant forwards a free-form question to the configured responder. The
// dashboard context is injected by the responder itself.
func (a *App) Assistant(w http.ResponseWriter, r *http.Request) {
	if a.Responder == nil {
		a.error(w, http.StatusServiceUnavailable, "assistant_disabled", "assistant is not configured")
		return
	}

	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "query must not be empty")
		return
	}

	answer, err := a.Responder.Ask(r.Context(), req.Query)
	if err != nil {
		a.Log.Error().Err(err).Msg("assistant request failed")
		a.error(w, http.StatusBadGateway, "assistant_error", "Error processing your question. Please try again.")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"answer": answer})
}
