package donordata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoadFetchesBothDatasets(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/pledges":
			_, _ = w.Write([]byte(`[{"pledge_id": 1, "donor_id": "A", "pledge_status": "Active donor"}]`))
		case "/payments":
			_, _ = w.Write([]byte(`[{"id": 10, "pledge_id": 1, "amount": 100, "counterfactuality": 0.5}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	pledges, payments, err := Load(context.Background(), srv.Client(), srv.URL+"/pledges", srv.URL+"/payments")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(pledges) != 1 || len(payments) != 1 {
		t.Fatalf("loaded %d pledges and %d payments, want 1 and 1", len(pledges), len(payments))
	}
	// numeric identifiers in the JSON arrive as strings
	if pledges[0].PledgeID != "1" {
		t.Fatalf("pledge id = %q, want %q", pledges[0].PledgeID, "1")
	}
	if payments[0].ID != "10" || payments[0].PledgeID != "1" {
		t.Fatalf("payment ids = (%q, %q), want (10, 1)", payments[0].ID, payments[0].PledgeID)
	}
	if !payments[0].Amount.Valid || !payments[0].Counterfactuality.Valid {
		t.Fatalf("payment fields did not decode: %+v", payments[0])
	}
}

func TestLoadFailsWholeWhenOneSourceIsDown(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pledges" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	pledges, payments, err := Load(context.Background(), srv.Client(), srv.URL+"/pledges", srv.URL+"/payments")
	if err == nil {
		t.Fatal("Load succeeded with one source down")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.Source != "payments" {
		t.Fatalf("failed source = %q, want %q", fe.Source, "payments")
	}
	if pledges != nil || payments != nil {
		t.Fatal("partial result returned alongside error")
	}
}

func TestLoadFailsOnMalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer srv.Close()

	_, _, err := Load(context.Background(), srv.Client(), srv.URL+"/pledges", srv.URL+"/payments")
	if err == nil {
		t.Fatal("Load accepted a non-array body")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
}

func TestLoadTolerantFieldDecoding(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pledges" {
			_, _ = w.Write([]byte(`[{"pledge_id": "p1", "contribution_amount": "not-a-number"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id": "y1", "amount": null, "counterfactuality": "bad"}]`))
	}))
	defer srv.Close()

	pledges, payments, err := Load(context.Background(), srv.Client(), srv.URL+"/pledges", srv.URL+"/payments")
	if err != nil {
		t.Fatalf("Load rejected a row with malformed scalar fields: %v", err)
	}
	if pledges[0].ContributionAmount.Valid {
		t.Fatal("malformed contribution_amount decoded as valid")
	}
	if payments[0].Amount.Valid || payments[0].Counterfactuality.Valid {
		t.Fatal("malformed payment fields decoded as valid")
	}
}
