package donordata

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var decimalCmp = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b decimal.NullDecimal) bool {
		if a.Valid != b.Valid {
			return false
		}
		return !a.Valid || a.Decimal.Equal(b.Decimal)
	}),
}

func sampleTable() Table {
	pledges := []PledgeRecord{
		{
			PledgeID:           "p1",
			DonorID:            "d1",
			Chapter:            "UC Berkeley, Haas",
			ChapterType:        "UG",
			Status:             StatusActive,
			CreatedAt:          "2024-01-15T10:30:00Z",
			ContributionAmount: money("25.50"),
			Currency:           "USD",
			Frequency:          "monthly",
			Platform:           "Donational",
		},
		{PledgeID: "p2", DonorID: "d2", Status: StatusChurned},
	}
	payments := []PaymentRecord{
		{ID: "y1", PledgeID: "p1", Portfolio: "OFTW Top Picks", Amount: money("100"), Counterfactuality: weight(0.5), Date: "2024-08-01"},
		{ID: "y9", PledgeID: "orphan", Amount: money("7.25"), Date: "2024-09-15"},
	}
	return Derive(Merge(pledges, payments), DeriveOptions{ExcludedPortfolios: DefaultExcludedPortfolios})
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	table := sampleTable()

	data, err := table.MarshalCSV()
	if err != nil {
		t.Fatalf("MarshalCSV returned error: %v", err)
	}

	parsed, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	if diff := cmp.Diff(table, parsed, decimalCmp); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVHeaderMatchesDeclaredColumns(t *testing.T) {
	t.Parallel()

	data, err := sampleTable().MarshalCSV()
	if err != nil {
		t.Fatalf("MarshalCSV returned error: %v", err)
	}
	lines := strings.Split(string(data), "\n")
	want := strings.Join(Columns(), ",")
	if lines[0] != want {
		t.Fatalf("header = %q, want %q", lines[0], want)
	}
}

func TestCSVQuotesEmbeddedDelimiters(t *testing.T) {
	t.Parallel()

	pledges := []PledgeRecord{{PledgeID: "p1", Chapter: "London, UK", Status: StatusActive}}
	table := Derive(Merge(pledges, nil), DeriveOptions{})

	data, err := table.MarshalCSV()
	if err != nil {
		t.Fatalf("MarshalCSV returned error: %v", err)
	}
	if !strings.Contains(string(data), `"London, UK"`) {
		t.Fatalf("embedded comma not quoted:\n%s", data)
	}

	parsed, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if parsed.Rows[0].Chapter != "London, UK" {
		t.Fatalf("chapter = %q, want %q", parsed.Rows[0].Chapter, "London, UK")
	}
}

func TestParseCSVRejectsForeignHeader(t *testing.T) {
	t.Parallel()

	if _, err := ParseCSV([]byte("a,b,c\n1,2,3\n")); err == nil {
		t.Fatal("ParseCSV accepted a foreign header")
	}
}

func TestCSVRoundTripAfterFilter(t *testing.T) {
	t.Parallel()

	filtered := sampleTable().Filter(Wildcard, StatusActive)
	if len(filtered.Rows) == 0 {
		t.Fatal("filter produced no rows to export")
	}

	data, err := filtered.MarshalCSV()
	if err != nil {
		t.Fatalf("MarshalCSV returned error: %v", err)
	}
	parsed, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}
	if diff := cmp.Diff(filtered, parsed, decimalCmp); diff != "" {
		t.Fatalf("filtered round trip mismatch (-want +got):\n%s", diff)
	}
}
