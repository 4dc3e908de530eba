package viewmodel

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"donordash/internal/donordata"
)

func fixtureTable(t *testing.T) donordata.Table {
	t.Helper()

	amt := func(s string) donordata.Money {
		d, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("bad fixture amount %q: %v", s, err)
		}
		return donordata.Money{NullDecimal: decimal.NullDecimal{Decimal: d, Valid: true}}
	}

	pledges := []donordata.PledgeRecord{
		{PledgeID: "p1", DonorID: "A", Chapter: "Alpha", Status: donordata.StatusActive, CreatedAt: "2024-07-01", ContributionAmount: amt("1500")},
		{PledgeID: "p2", DonorID: "B", Chapter: "Beta", Status: donordata.StatusChurned, ContributionAmount: amt("10")},
	}
	payments := []donordata.PaymentRecord{{
		ID:                "y1",
		PledgeID:          "p1",
		Amount:            amt("1000"),
		Counterfactuality: donordata.Weight{Value: 0.5, Valid: true},
		Date:              "2024-08-01",
	}}
	return donordata.Derive(donordata.Merge(pledges, payments), donordata.DeriveOptions{
		ExcludedPortfolios: donordata.DefaultExcludedPortfolios,
	})
}

func testWindow() donordata.FiscalWindow {
	return donordata.FiscalWindow{
		Start: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildComputesFormattedKPIs(t *testing.T) {
	t.Parallel()

	dash := Build(fixtureTable(t), testWindow(), ThemeLight)

	if dash.MoneyMovedYTD.Formatted != "$500.00" {
		t.Fatalf("money moved = %q, want $500.00", dash.MoneyMovedYTD.Formatted)
	}
	if dash.ActiveDonors.Value != "1" {
		t.Fatalf("active donors = %q, want 1", dash.ActiveDonors.Value)
	}
	if dash.AttritionRatePct.Formatted != "50.00%" {
		t.Fatalf("attrition = %q, want 50.00%%", dash.AttritionRatePct.Formatted)
	}
	if len(dash.TopChapters) != 1 || dash.TopChapters[0].Chapter != "Alpha" {
		t.Fatalf("top chapters = %+v, want Alpha only", dash.TopChapters)
	}
	if dash.TopChapters[0].Formatted != "$1,500.00" {
		t.Fatalf("chapter amount = %q, want $1,500.00", dash.TopChapters[0].Formatted)
	}
	if len(dash.TimeLagDays) != 1 || dash.TimeLagDays[0] != 31 {
		t.Fatalf("time lags = %v, want [31]", dash.TimeLagDays)
	}
}

func TestBuildIsPureAcrossThemes(t *testing.T) {
	t.Parallel()

	table := fixtureTable(t)
	light := Build(table, testWindow(), ThemeLight)
	dark := Build(table, testWindow(), ThemeDark)

	// Only presentation differs between themes; the numbers must match.
	if light.MoneyMovedYTD != dark.MoneyMovedYTD {
		t.Fatalf("money moved differs by theme: %+v vs %+v", light.MoneyMovedYTD, dark.MoneyMovedYTD)
	}
	if light.Palette == dark.Palette {
		t.Fatal("palettes are identical across themes")
	}
	if dark.Palette.Background != "#1E1E1E" {
		t.Fatalf("dark background = %q", dark.Palette.Background)
	}
}

func TestBuildDefaultsUnknownThemeToLight(t *testing.T) {
	t.Parallel()

	dash := Build(donordata.Table{}, testWindow(), Theme("sepia"))
	if dash.Theme != ThemeLight {
		t.Fatalf("theme = %q, want light fallback", dash.Theme)
	}
	if dash.MoneyMovedYTD.Formatted != "$0.00" {
		t.Fatalf("empty-table money moved = %q, want $0.00", dash.MoneyMovedYTD.Formatted)
	}
}
