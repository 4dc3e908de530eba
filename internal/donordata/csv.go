package donordata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ExportFilename is the download name the dashboard uses for CSV exports.
const ExportFilename = "merged_data.csv"

// Columns is the declared column order of the derived table. The CSV header
// lists exactly these names and ParseCSV requires them.
func Columns() []string {
	return []string{
		"has_pledge",
		"has_payment",
		"pledge_id",
		"donor_id",
		"donor_chapter",
		"chapter_type",
		"pledge_status",
		"pledge_created_at",
		"pledge_starts_at",
		"pledge_ended_at",
		"contribution_amount",
		"currency",
		"frequency",
		"payment_platform",
		"payment_id",
		"portfolio",
		"amount",
		"payment_date",
		"counterfactuality",
		"counterfactual_amount",
	}
}

// MarshalCSV serializes the table: header row then one line per row, UTF-8,
// standard quoting. Null fields serialize as the empty string so the export
// survives a round trip through ParseCSV.
func (t Table) MarshalCSV() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 64*1024))
	w := csv.NewWriter(buf)

	if err := w.Write(Columns()); err != nil {
		return nil, err
	}
	for i := range t.Rows {
		if err := w.Write(t.Rows[i].csvRecord()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCSV is the inverse of MarshalCSV. Row order is preserved.
func ParseCSV(data []byte) (Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("csv has no header row")
	}

	header, want := records[0], Columns()
	if len(header) != len(want) {
		return Table{}, fmt.Errorf("csv header has %d columns, want %d", len(header), len(want))
	}
	for i := range want {
		if header[i] != want[i] {
			return Table{}, fmt.Errorf("csv column %d is %q, want %q", i, header[i], want[i])
		}
	}

	table := Table{Rows: make([]Row, 0, len(records)-1)}
	for n, record := range records[1:] {
		row, err := rowFromCSV(record)
		if err != nil {
			return Table{}, fmt.Errorf("csv line %d: %w", n+2, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func (r *Row) csvRecord() []string {
	return []string{
		strconv.FormatBool(r.HasPledge),
		strconv.FormatBool(r.HasPayment),
		r.PledgeID,
		r.DonorID,
		r.Chapter,
		r.ChapterType,
		r.Status,
		formatTime(r.PledgeCreatedAt),
		formatTime(r.PledgeStartsAt),
		formatTime(r.PledgeEndedAt),
		formatNullDecimal(r.ContributionAmount),
		r.Currency,
		r.Frequency,
		r.Platform,
		r.PaymentID,
		r.Portfolio,
		formatNullDecimal(r.Amount),
		formatTime(r.PaymentDate),
		formatWeight(r.Counterfactuality),
		r.CounterfactualAmount.String(),
	}
}

func rowFromCSV(record []string) (Row, error) {
	var row Row
	var err error

	if row.HasPledge, err = strconv.ParseBool(record[0]); err != nil {
		return Row{}, fmt.Errorf("has_pledge: %w", err)
	}
	if row.HasPayment, err = strconv.ParseBool(record[1]); err != nil {
		return Row{}, fmt.Errorf("has_payment: %w", err)
	}
	row.PledgeID = record[2]
	row.DonorID = record[3]
	row.Chapter = record[4]
	row.ChapterType = record[5]
	row.Status = record[6]
	if row.PledgeCreatedAt, err = parseCSVTime(record[7]); err != nil {
		return Row{}, fmt.Errorf("pledge_created_at: %w", err)
	}
	if row.PledgeStartsAt, err = parseCSVTime(record[8]); err != nil {
		return Row{}, fmt.Errorf("pledge_starts_at: %w", err)
	}
	if row.PledgeEndedAt, err = parseCSVTime(record[9]); err != nil {
		return Row{}, fmt.Errorf("pledge_ended_at: %w", err)
	}
	if row.ContributionAmount, err = parseCSVNullDecimal(record[10]); err != nil {
		return Row{}, fmt.Errorf("contribution_amount: %w", err)
	}
	row.Currency = record[11]
	row.Frequency = record[12]
	row.Platform = record[13]
	row.PaymentID = record[14]
	row.Portfolio = record[15]
	if row.Amount, err = parseCSVNullDecimal(record[16]); err != nil {
		return Row{}, fmt.Errorf("amount: %w", err)
	}
	if row.PaymentDate, err = parseCSVTime(record[17]); err != nil {
		return Row{}, fmt.Errorf("payment_date: %w", err)
	}
	if record[18] != "" {
		v, err := strconv.ParseFloat(record[18], 64)
		if err != nil {
			return Row{}, fmt.Errorf("counterfactuality: %w", err)
		}
		row.Counterfactuality = &v
	}
	if row.CounterfactualAmount, err = decimal.NewFromString(record[19]); err != nil {
		return Row{}, fmt.Errorf("counterfactual_amount: %w", err)
	}
	return row, nil
}

func formatTime(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(time.RFC3339)
}

func parseCSVTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func parseCSVNullDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func formatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}
