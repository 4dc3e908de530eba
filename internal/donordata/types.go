package donordata

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Pledge statuses as they appear in the upstream dataset.
const (
	StatusActive         = "Active donor"
	StatusPledged        = "Pledged donor"
	StatusPaymentFailure = "Payment failure"
	StatusChurned        = "Churned donor"
	StatusOneTime        = "one-time"
)

// DefaultExcludedPortfolios are internal sink accounts that must never count
// toward impact metrics.
var DefaultExcludedPortfolios = []string{
	"One for the World Discretionary Fund",
	"One for the World Operating Costs",
}

// ID tolerates both JSON strings and numbers, since the upstream exports are
// not consistent about identifier types.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Money is a nullable decimal that treats malformed or missing values as
// null instead of failing the record.
type Money struct {
	decimal.NullDecimal
}

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		m.Valid = false
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		m.Valid = false
		return nil
	}
	m.Decimal = d
	m.Valid = true
	return nil
}

// Weight is a nullable float in [0,1]; malformed values become null.
type Weight struct {
	Value float64
	Valid bool
}

func (w *Weight) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		w.Valid = false
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		w.Valid = false
		return nil
	}
	w.Value = f
	w.Valid = true
	return nil
}

// PledgeRecord mirrors one element of the pledges dataset.
type PledgeRecord struct {
	PledgeID           ID     `json:"pledge_id"`
	DonorID            ID     `json:"donor_id"`
	Chapter            string `json:"donor_chapter"`
	ChapterType        string `json:"chapter_type"`
	Status             string `json:"pledge_status"`
	CreatedAt          string `json:"pledge_created_at"`
	StartsAt           string `json:"pledge_starts_at"`
	EndedAt            string `json:"pledge_ended_at"`
	ContributionAmount Money  `json:"contribution_amount"`
	Currency           string `json:"currency"`
	Frequency          string `json:"frequency"`
	Platform           string `json:"payment_platform"`
}

// PaymentRecord mirrors one element of the payments dataset. PledgeID is a
// non-unique foreign key: a recurring pledge produces many payments.
type PaymentRecord struct {
	ID                ID     `json:"id"`
	PledgeID          ID     `json:"pledge_id"`
	DonorID           ID     `json:"donor_id"`
	Portfolio         string `json:"portfolio"`
	Amount            Money  `json:"amount"`
	Currency          string `json:"currency"`
	Date              string `json:"date"`
	Counterfactuality Weight `json:"counterfactuality"`
}

// Row is one row of the derived analysis table: a pledge joined with at most
// one payment, dates parsed, counterfactual amount computed. A side that had
// no match keeps its zero values with the Has flag unset.
type Row struct {
	HasPledge  bool `json:"has_pledge"`
	HasPayment bool `json:"has_payment"`

	PledgeID           string              `json:"pledge_id"`
	DonorID            string              `json:"donor_id"`
	Chapter            string              `json:"donor_chapter"`
	ChapterType        string              `json:"chapter_type"`
	Status             string              `json:"pledge_status"`
	PledgeCreatedAt    *time.Time          `json:"pledge_created_at"`
	PledgeStartsAt     *time.Time          `json:"pledge_starts_at"`
	PledgeEndedAt      *time.Time          `json:"pledge_ended_at"`
	ContributionAmount decimal.NullDecimal `json:"contribution_amount"`
	Currency           string              `json:"currency"`
	Frequency          string              `json:"frequency"`
	Platform           string              `json:"payment_platform"`

	PaymentID         string              `json:"payment_id"`
	Portfolio         string              `json:"portfolio"`
	Amount            decimal.NullDecimal `json:"amount"`
	PaymentDate       *time.Time          `json:"payment_date"`
	Counterfactuality *float64            `json:"counterfactuality"`

	CounterfactualAmount decimal.Decimal `json:"counterfactual_amount"`
}

// Table is the immutable derived table shared by every metric, filter and
// export. Rows keep load order.
type Table struct {
	Rows []Row
}

// FiscalWindow is a closed date interval; both endpoints are inclusive.
type FiscalWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the window.
func (w FiscalWindow) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && !ts.After(w.End)
}

// ChapterRunRate is one entry of the top-chapters projection.
type ChapterRunRate struct {
	Chapter string          `json:"chapter"`
	Amount  decimal.Decimal `json:"amount"`
}
