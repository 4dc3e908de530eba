// Package viewmodel projects the derived table and its metrics into the
// payload the dashboard frontend renders. Everything here is a pure function
// of (table, window, theme); nothing mutates shared state.
package viewmodel

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"donordash/internal/donordata"
)

// Theme selects the palette. Anything other than ThemeDark renders light.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Palette carries the colors the frontend applies per theme. The values are
// data, not styling: the rendering layer owns the CSS.
type Palette struct {
	Background  string `json:"background"`
	Text        string `json:"text"`
	ChartPaper  string `json:"chart_paper"`
	TableHeader string `json:"table_header"`
	TableData   string `json:"table_data"`
	Bar         string `json:"bar"`
	Accent      string `json:"accent"`
}

// PaletteFor maps a theme flag to its palette.
func PaletteFor(theme Theme) Palette {
	if theme == ThemeDark {
		return Palette{
			Background:  "#1E1E1E",
			Text:        "#CCCCCC",
			ChartPaper:  "#2E2E2E",
			TableHeader: "#333333",
			TableData:   "#2E2E2E",
			Bar:         "#3399FF",
			Accent:      "#FF6F61",
		}
	}
	return Palette{
		Background:  "#ECF0F1",
		Text:        "#2C3E50",
		ChartPaper:  "#FFFFFF",
		TableHeader: "rgb(230, 230, 230)",
		TableData:   "rgb(255, 255, 255)",
		Bar:         "#1f77b4",
		Accent:      "#FF6F61",
	}
}

// KPI pairs a raw value with its display string.
type KPI struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}

// Chapter is one bar of the run-rate chart.
type Chapter struct {
	Chapter   string `json:"chapter"`
	Amount    string `json:"amount"`
	Formatted string `json:"formatted"`
}

// Dashboard is the full view-model for the main tab.
type Dashboard struct {
	Theme            Theme     `json:"theme"`
	Palette          Palette   `json:"palette"`
	MoneyMovedYTD    KPI       `json:"money_moved_ytd"`
	ActiveDonors     KPI       `json:"active_donors"`
	ActivePledges    KPI       `json:"active_pledges"`
	AttritionRatePct KPI       `json:"attrition_rate_pct"`
	TopChapters      []Chapter `json:"top_chapters"`
	TimeLagDays      []int     `json:"time_lag_days"`
	Chapters         []string  `json:"chapters"`
	Statuses         []string  `json:"statuses"`
}

var printer = message.NewPrinter(language.English)

// FormatUSD renders a dollar amount with grouping, e.g. "$1,234.56".
func FormatUSD(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("$%.2f", f)
}

// FormatCount renders an integer with grouping, e.g. "12,345".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Build computes every dashboard metric over the derived table and packages
// it with the requested theme.
func Build(table donordata.Table, window donordata.FiscalWindow, theme Theme) Dashboard {
	if theme != ThemeDark {
		theme = ThemeLight
	}

	moneyMoved := donordata.MoneyMovedInWindow(table, window)
	activeDonors := donordata.ActiveDonorCount(table)
	activePledges := donordata.ActivePledgeCount(table)
	attrition := donordata.AttritionRate(table)

	top := donordata.TopChaptersByRunRate(table, 10)
	chapters := make([]Chapter, 0, len(top))
	for _, c := range top {
		chapters = append(chapters, Chapter{
			Chapter:   c.Chapter,
			Amount:    c.Amount.String(),
			Formatted: FormatUSD(c.Amount),
		})
	}

	return Dashboard{
		Theme:   theme,
		Palette: PaletteFor(theme),
		MoneyMovedYTD: KPI{
			Value:     moneyMoved.String(),
			Formatted: FormatUSD(moneyMoved),
		},
		ActiveDonors: KPI{
			Value:     strconv.Itoa(activeDonors),
			Formatted: FormatCount(activeDonors),
		},
		ActivePledges: KPI{
			Value:     strconv.Itoa(activePledges),
			Formatted: FormatCount(activePledges),
		},
		AttritionRatePct: KPI{
			Value:     strconv.FormatFloat(attrition, 'f', 2, 64),
			Formatted: printer.Sprintf("%.2f%%", attrition),
		},
		TopChapters: chapters,
		TimeLagDays: donordata.TimeLagDays(table),
		Chapters:    table.Chapters(),
		Statuses:    table.Statuses(),
	}
}
