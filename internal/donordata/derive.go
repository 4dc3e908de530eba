package donordata

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DeriveOptions control the derivation pass.
type DeriveOptions struct {
	// ExcludedPortfolios are dropped before any metric sees the table.
	ExcludedPortfolios []string
	// CounterfactualDefault substitutes for an absent counterfactuality.
	// The upstream contract treats absence as 0 (fully non-counterfactual).
	CounterfactualDefault float64
}

// Accepted timestamp layouts, most specific first. Upstream mixes full
// timestamps and bare dates.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an upstream date string. Invalid or empty values become
// nil rather than failing the row.
func ParseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

// Derive turns the raw outer join into the analysis table. Steps, in order:
// parse date fields (invalid becomes null), drop rows whose portfolio is
// excluded, compute the counterfactual amount. The exclusion happens here and
// only here; every metric and export downstream reuses this output.
func Derive(merged MergedTable, opts DeriveOptions) Table {
	excluded := make(map[string]struct{}, len(opts.ExcludedPortfolios))
	for _, p := range opts.ExcludedPortfolios {
		excluded[p] = struct{}{}
	}

	rows := make([]Row, 0, len(merged.Rows))
	for _, m := range merged.Rows {
		if m.Payment != nil {
			if _, drop := excluded[m.Payment.Portfolio]; drop {
				continue
			}
		}

		var row Row
		if m.Pledge != nil {
			p := m.Pledge
			row.HasPledge = true
			row.PledgeID = string(p.PledgeID)
			row.DonorID = string(p.DonorID)
			row.Chapter = p.Chapter
			row.ChapterType = p.ChapterType
			row.Status = p.Status
			row.PledgeCreatedAt = ParseTime(p.CreatedAt)
			row.PledgeStartsAt = ParseTime(p.StartsAt)
			row.PledgeEndedAt = ParseTime(p.EndedAt)
			row.ContributionAmount = p.ContributionAmount.NullDecimal
			row.Currency = p.Currency
			row.Frequency = p.Frequency
			row.Platform = p.Platform
		}
		if m.Payment != nil {
			y := m.Payment
			row.HasPayment = true
			row.PaymentID = string(y.ID)
			if row.PledgeID == "" {
				row.PledgeID = string(y.PledgeID)
			}
			if row.DonorID == "" {
				row.DonorID = string(y.DonorID)
			}
			row.Portfolio = y.Portfolio
			row.Amount = y.Amount.NullDecimal
			if row.Currency == "" {
				row.Currency = y.Currency
			}
			row.PaymentDate = ParseTime(y.Date)
			if y.Counterfactuality.Valid {
				v := y.Counterfactuality.Value
				row.Counterfactuality = &v
			}
		}

		row.CounterfactualAmount = counterfactualAmount(row, opts.CounterfactualDefault)
		rows = append(rows, row)
	}

	return Table{Rows: rows}
}

func counterfactualAmount(row Row, def float64) decimal.Decimal {
	if !row.Amount.Valid {
		return decimal.Zero
	}
	weight := def
	if row.Counterfactuality != nil {
		weight = *row.Counterfactuality
	}
	return row.Amount.Decimal.Mul(decimal.NewFromFloat(weight))
}
