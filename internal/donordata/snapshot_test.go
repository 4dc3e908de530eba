package donordata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestServiceRefreshBuildsSnapshot(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pledges" {
			_, _ = w.Write([]byte(`[{"pledge_id": "p1", "pledge_status": "Active donor"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id": "y1", "pledge_id": "p1", "amount": 100, "counterfactuality": 0.5, "portfolio": "OFTW Top Picks", "date": "2024-08-01"}]`))
	}))
	defer srv.Close()

	svc := NewService(srv.Client(), srv.URL+"/pledges", srv.URL+"/payments", DeriveOptions{
		ExcludedPortfolios: DefaultExcludedPortfolios,
	})
	if svc.Snapshot() != nil {
		t.Fatal("fresh service already has a snapshot")
	}

	snap, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if snap.PledgeCount != 1 || snap.PaymentCount != 1 {
		t.Fatalf("counts = (%d, %d), want (1, 1)", snap.PledgeCount, snap.PaymentCount)
	}
	if len(snap.Table.Rows) != 1 {
		t.Fatalf("derived rows = %d, want 1", len(snap.Table.Rows))
	}
	if svc.Snapshot() != snap {
		t.Fatal("Refresh did not swap the current snapshot")
	}
}

func TestServiceRefreshKeepsOldSnapshotOnFailure(t *testing.T) {
	t.Parallel()

	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := NewService(srv.Client(), srv.URL+"/pledges", srv.URL+"/payments", DeriveOptions{})
	first, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("first Refresh returned error: %v", err)
	}

	fail = true
	if _, err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("second Refresh succeeded against a failing source")
	}
	if svc.Snapshot() != first {
		t.Fatal("failed Refresh replaced the current snapshot")
	}
}
