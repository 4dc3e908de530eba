package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"donordash/internal/donordata"
	"donordash/internal/providers/assistant"

	"github.com/rs/zerolog"
)

// SnapshotSource provides the current dataset snapshot and the ability to
// rebuild it from the upstream sources.
type SnapshotSource interface {
	Snapshot() *donordata.Snapshot
	Refresh(ctx context.Context) (*donordata.Snapshot, error)
}

type App struct {
	Data      SnapshotSource
	Responder assistant.Responder
	Window    donordata.FiscalWindow
	Log       zerolog.Logger
}

func NewApp(data SnapshotSource, responder assistant.Responder, window donordata.FiscalWindow, log zerolog.Logger) *App {
	return &App{Data: data, Responder: responder, Window: window, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

// snapshot returns the current snapshot or writes a 503 when no dataset has
// been loaded yet.
func (a *App) snapshot(w http.ResponseWriter) (*donordata.Snapshot, bool) {
	snap := a.Data.Snapshot()
	if snap == nil {
		a.error(w, http.StatusServiceUnavailable, "no_data", "dataset has not been loaded yet")
		return nil, false
	}
	return snap, true
}
