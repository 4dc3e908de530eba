package donordata

// Wildcard matches every value. The dashboard sends it literally; an empty
// string means the same thing.
const Wildcard = "All"

func matchesPredicate(value, predicate string) bool {
	return predicate == "" || predicate == Wildcard || value == predicate
}

// Filter returns the rows matching both predicates. Each predicate is either
// the wildcard or an exact match on its field; combined they AND together.
// The receiver is untouched and row order is preserved.
func (t Table) Filter(chapter, status string) Table {
	out := Table{Rows: make([]Row, 0, len(t.Rows))}
	for _, row := range t.Rows {
		if !matchesPredicate(row.Chapter, chapter) {
			continue
		}
		if !matchesPredicate(row.Status, status) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Chapters returns the distinct non-empty chapters in first-appearance
// order, for populating the dashboard's filter dropdown.
func (t Table) Chapters() []string {
	seen := make(map[string]struct{})
	var chapters []string
	for _, row := range t.Rows {
		if row.Chapter == "" {
			continue
		}
		if _, ok := seen[row.Chapter]; ok {
			continue
		}
		seen[row.Chapter] = struct{}{}
		chapters = append(chapters, row.Chapter)
	}
	return chapters
}

// Statuses returns the distinct non-empty statuses in first-appearance order.
func (t Table) Statuses() []string {
	seen := make(map[string]struct{})
	var statuses []string
	for _, row := range t.Rows {
		if row.Status == "" {
			continue
		}
		if _, ok := seen[row.Status]; ok {
			continue
		}
		seen[row.Status] = struct{}{}
		statuses = append(statuses, row.Status)
	}
	return statuses
}
