package handlers

import (
	"net/http"

	"donordash/internal/providers/assistant"
)

func (a *App) Glossary(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"terms": assistant.Glossary()})
}
