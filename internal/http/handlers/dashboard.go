package handlers

import (
	"net/http"

	"donordash/internal/viewmodel"
)

// Dashboard returns the computed KPI view-model for the current snapshot.
// The theme query parameter flips the palette; metrics are theme-independent.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.snapshot(w)
	if !ok {
		return
	}

	theme := viewmodel.Theme(r.URL.Query().Get("theme"))
	vm := viewmodel.Build(snap.Table, a.Window, theme)
	a.json(w, http.StatusOK, vm)
}
