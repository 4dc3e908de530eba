package donordata

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Every metric here is a pure read over the derived table. Empty tables give
// defined zero results, never an error.

// MoneyMovedInWindow sums the counterfactual amount of rows whose payment
// date falls inside the window (both endpoints inclusive). Rows without a
// payment date do not count.
func MoneyMovedInWindow(t Table, w FiscalWindow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range t.Rows {
		if row.PaymentDate == nil || !w.Contains(*row.PaymentDate) {
			continue
		}
		total = total.Add(row.CounterfactualAmount)
	}
	return total
}

// AttritionRate returns the percentage of rows whose status marks a lapsed
// pledge (payment failure or churn). 0 on an empty table.
func AttritionRate(t Table) float64 {
	if len(t.Rows) == 0 {
		return 0
	}
	lapsed := 0
	for _, row := range t.Rows {
		if row.Status == StatusPaymentFailure || row.Status == StatusChurned {
			lapsed++
		}
	}
	return float64(lapsed) / float64(len(t.Rows)) * 100
}

// ActiveDonorCount counts distinct donors with an active or one-time status.
// When a row carries no donor id the pledge id stands in, then the payment
// id; rows with no identifier at all contribute nothing.
func ActiveDonorCount(t Table) int {
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		if row.Status != StatusActive && row.Status != StatusOneTime {
			continue
		}
		key := row.DonorID
		if key == "" {
			key = row.PledgeID
		}
		if key == "" {
			key = row.PaymentID
		}
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// ActivePledgeCount counts distinct pledge ids with an active status.
func ActivePledgeCount(t Table) int {
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		if row.Status != StatusActive || row.PledgeID == "" {
			continue
		}
		seen[row.PledgeID] = struct{}{}
	}
	return len(seen)
}

// TopChaptersByRunRate restricts to active rows, sums the pledged
// contribution per chapter and returns the n largest, descending. The sort
// is stable: chapters tied on amount keep first-appearance order.
func TopChaptersByRunRate(t Table, n int) []ChapterRunRate {
	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, row := range t.Rows {
		if row.Status != StatusActive || !row.ContributionAmount.Valid {
			continue
		}
		if _, ok := sums[row.Chapter]; !ok {
			order = append(order, row.Chapter)
		}
		sums[row.Chapter] = sums[row.Chapter].Add(row.ContributionAmount.Decimal)
	}

	ranked := make([]ChapterRunRate, 0, len(order))
	for _, chapter := range order {
		ranked = append(ranked, ChapterRunRate{Chapter: chapter, Amount: sums[chapter]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TimeLagDays returns, for every row that has both a pledge creation and a
// payment date, the lag between them in whole days. Input order is kept so
// the histogram is reproducible.
func TimeLagDays(t Table) []int {
	var lags []int
	for _, row := range t.Rows {
		if row.PledgeCreatedAt == nil || row.PaymentDate == nil {
			continue
		}
		lag := int(row.PaymentDate.Sub(*row.PledgeCreatedAt).Hours() / 24)
		lags = append(lags, lag)
	}
	return lags
}
