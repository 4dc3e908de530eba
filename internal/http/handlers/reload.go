package handlers

import (
	"net/http"
)

// Reload fetches both datasets again and swaps in a fresh snapshot. On
// failure the previous snapshot stays live.
func (a *App) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Data.Refresh(r.Context())
	if err != nil {
		a.Log.Error().Err(err).Msg("dataset reload failed")
		a.error(w, http.StatusBadGateway, "reload_failed", "failed to reload datasets")
		return
	}

	a.Log.Info().
		Str("snapshot_id", snap.ID.String()).
		Int("pledges", snap.PledgeCount).
		Int("payments", snap.PaymentCount).
		Int("rows", len(snap.Table.Rows)).
		Msg("dataset reloaded")

	a.json(w, http.StatusOK, map[string]any{
		"snapshot_id": snap.ID,
		"loaded_at":   snap.LoadedAt,
		"pledges":     snap.PledgeCount,
		"payments":    snap.PaymentCount,
		"rows":        len(snap.Table.Rows),
	})
}
