package donordata

import "testing"

func filterFixture() Table {
	pledges := []PledgeRecord{
		{PledgeID: "p1", Chapter: "Alpha", Status: StatusActive},
		{PledgeID: "p2", Chapter: "Beta", Status: StatusActive},
		{PledgeID: "p3", Chapter: "Alpha", Status: StatusChurned},
	}
	return Derive(Merge(pledges, nil), DeriveOptions{})
}

func TestFilterWildcardMatchesEverything(t *testing.T) {
	t.Parallel()

	table := filterFixture()
	for _, predicate := range []string{"", Wildcard} {
		got := table.Filter(predicate, predicate)
		if len(got.Rows) != len(table.Rows) {
			t.Fatalf("Filter(%q, %q) kept %d rows, want %d", predicate, predicate, len(got.Rows), len(table.Rows))
		}
	}
}

func TestFilterCombinesPredicatesWithAnd(t *testing.T) {
	t.Parallel()

	table := filterFixture()

	byChapter := table.Filter("Alpha", Wildcard)
	if len(byChapter.Rows) != 2 {
		t.Fatalf("chapter filter kept %d rows, want 2", len(byChapter.Rows))
	}

	both := table.Filter("Alpha", StatusActive)
	if len(both.Rows) != 1 {
		t.Fatalf("combined filter kept %d rows, want 1", len(both.Rows))
	}
	if both.Rows[0].PledgeID != "p1" {
		t.Fatalf("combined filter kept %q, want p1", both.Rows[0].PledgeID)
	}

	none := table.Filter("Alpha", StatusOneTime)
	if len(none.Rows) != 0 {
		t.Fatalf("impossible combination kept %d rows, want 0", len(none.Rows))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	t.Parallel()

	table := filterFixture()
	got := table.Filter("Alpha", Wildcard)
	if got.Rows[0].PledgeID != "p1" || got.Rows[1].PledgeID != "p3" {
		t.Fatalf("filtered order = %q, %q, want p1, p3", got.Rows[0].PledgeID, got.Rows[1].PledgeID)
	}
}

func TestDistinctChaptersAndStatuses(t *testing.T) {
	t.Parallel()

	table := filterFixture()

	chapters := table.Chapters()
	if len(chapters) != 2 || chapters[0] != "Alpha" || chapters[1] != "Beta" {
		t.Fatalf("chapters = %v, want [Alpha Beta] in first-appearance order", chapters)
	}

	statuses := table.Statuses()
	if len(statuses) != 2 || statuses[0] != StatusActive || statuses[1] != StatusChurned {
		t.Fatalf("statuses = %v, want [%q %q]", statuses, StatusActive, StatusChurned)
	}
}
