package handlers

import (
	"net/http"

	"donordash/internal/donordata"
)

// filteredTable applies the chapter/status query parameters to the snapshot
// table. Empty or "All" values match everything.
func filteredTable(snap *donordata.Snapshot, r *http.Request) donordata.Table {
	q := r.URL.Query()
	return snap.Table.Filter(q.Get("chapter"), q.Get("status"))
}

func (a *App) Table(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.snapshot(w)
	if !ok {
		return
	}

	table := filteredTable(snap, r)
	a.json(w, http.StatusOK, map[string]any{
		"snapshot_id": snap.ID,
		"loaded_at":   snap.LoadedAt,
		"count":       len(table.Rows),
		"rows":        table.Rows,
	})
}

func (a *App) TableExport(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.snapshot(w)
	if !ok {
		return
	}

	data, err := filteredTable(snap, r).MarshalCSV()
	if err != nil {
		a.Log.Error().Err(err).Msg("csv export failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to export table")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+donordata.ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
