package donordata

// MergedRow pairs a pledge with one of its payments. Either side may be nil:
// a pledge with no payments keeps a nil Payment, a payment whose pledge id
// matches nothing keeps a nil Pledge.
type MergedRow struct {
	Pledge  *PledgeRecord
	Payment *PaymentRecord
}

// MergedTable is the raw outer-join result, before derivation.
type MergedTable struct {
	Rows []MergedRow
}

// Merge performs a full outer join of pledges and payments on pledge id.
// The join is one-to-many: every (pledge, payment) pair becomes its own row.
// Output order is deterministic for identical inputs: pledges in input order
// (each expanded by its payments in input order), then unmatched payments in
// input order.
func Merge(pledges []PledgeRecord, payments []PaymentRecord) MergedTable {
	byPledge := make(map[ID][]int, len(payments))
	for i := range payments {
		if payments[i].PledgeID == "" {
			continue
		}
		byPledge[payments[i].PledgeID] = append(byPledge[payments[i].PledgeID], i)
	}

	matched := make([]bool, len(payments))
	rows := make([]MergedRow, 0, len(pledges)+len(payments))

	for i := range pledges {
		p := &pledges[i]
		idxs := byPledge[p.PledgeID]
		if p.PledgeID == "" || len(idxs) == 0 {
			rows = append(rows, MergedRow{Pledge: p})
			continue
		}
		for _, j := range idxs {
			matched[j] = true
			rows = append(rows, MergedRow{Pledge: p, Payment: &payments[j]})
		}
	}

	for j := range payments {
		if !matched[j] {
			rows = append(rows, MergedRow{Payment: &payments[j]})
		}
	}

	return MergedTable{Rows: rows}
}
