package inventory

import (
	"fmt"
	"strings"

	"github.com/opmc/inventory/internal/model"
)

// Tab selects items by location completeness.
type Tab string

// Inventory tabs.
const (
	TabAll             Tab = "all"
	TabWithLocation    Tab = "with-location"
	TabMissingLocation Tab = "missing-location"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabAll, TabWithLocation, TabMissingLocation}

// ParseTab parses a tab key. The empty string selects TabAll.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.TrimSpace(s)) {
	case "", TabAll:
		return TabAll, nil
	case TabWithLocation:
		return TabWithLocation, nil
	case TabMissingLocation:
		return TabMissingLocation, nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Title returns the tab heading.
func (t Tab) Title() string {
	switch t {
	case TabWithLocation:
		return "With Location"
	case TabMissingLocation:
		return "Missing Location"
	default:
		return "All"
	}
}

func (t Tab) keeps(m model.Medicine) bool {
	switch t {
	case TabWithLocation:
		return m.Location.Complete()
	case TabMissingLocation:
		return !m.Location.Complete()
	default:
		return true
	}
}

func matchesSearch(m model.Medicine, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(m.Name), needle)
}

// Filter returns the medicines whose name contains search (case-insensitive)
// and which belong to tab. The input slice is not modified.
func Filter(items []model.Medicine, search string, tab Tab) []model.Medicine {
	needle := strings.ToLower(search)
	out := make([]model.Medicine, 0, len(items))
	for _, m := range items {
		if matchesSearch(m, needle) && tab.keeps(m) {
			out = append(out, m)
		}
	}
	return out
}

// TabCounts is the number of search matches on each tab.
type TabCounts struct {
	All             int `json:"all"`
	WithLocation    int `json:"with_location"`
	MissingLocation int `json:"missing_location"`
}

// For returns the count for one tab.
func (c TabCounts) For(t Tab) int {
	switch t {
	case TabWithLocation:
		return c.WithLocation
	case TabMissingLocation:
		return c.MissingLocation
	default:
		return c.All
	}
}

// Count tallies search matches per tab.
func Count(items []model.Medicine, search string) TabCounts {
	needle := strings.ToLower(search)
	var c TabCounts
	for _, m := range items {
		if !matchesSearch(m, needle) {
			continue
		}
		c.All++
		if m.Location.Complete() {
			c.WithLocation++
		} else {
			c.MissingLocation++
		}
	}
	return c
}

// LocationLabel is the list rendering of a medicine's location.
func LocationLabel(m model.Medicine) string {
	if code, ok := m.LocationCode(); ok {
		return code
	}
	return "Set Location"
}
