// Package match implements the bankruptcy name set and the company
// labeling heuristic.
//
// The matching contract is deliberately loose: a company is considered
// disrupted when its normalized name and any set entry contain each other
// as substrings, in either direction. This trades precision for recall
// (the entry "AMC" matches every name containing "AMC") and is kept
// exactly as-is for output compatibility. ModeWholeWord is an additive,
// opt-in tightening, never the default.
package match

import (
	"sort"
	"strings"
	"unicode"

	"disruption_dataset/pkg/core/dataset"
)

// Mode selects the containment rule used by the labeler.
type Mode int

const (
	// ModeSubstring is the frozen default: bidirectional raw substring
	// containment on normalized names.
	ModeSubstring Mode = iota
	// ModeWholeWord requires containment to fall on word boundaries.
	ModeWholeWord
)

// Normalize uppercases and trims a name. Both sides of every comparison
// go through this.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NameSet is a set of normalized bankrupt-company names with per-name
// year provenance. Matching only consults the names; provenance is an
// enrichment so "which year" stays answerable after the flatten step.
type NameSet struct {
	years map[string]map[int]struct{}
}

// NewNameSet returns an empty set.
func NewNameSet() *NameSet {
	return &NameSet{years: make(map[string]map[int]struct{})}
}

// FromRecords collapses scraped bankruptcy records into a NameSet.
// Duplicate names across years merge; empty names are dropped.
func FromRecords(records []dataset.BankruptcyRecord) *NameSet {
	s := NewNameSet()
	for _, r := range records {
		s.Add(r.Name, r.Year)
	}
	return s
}

// Add inserts a name after normalization. Empty names are ignored.
func (s *NameSet) Add(name string, year int) {
	n := Normalize(name)
	if n == "" {
		return
	}
	if s.years[n] == nil {
		s.years[n] = make(map[int]struct{})
	}
	s.years[n][year] = struct{}{}
}

// Len returns the number of distinct normalized names.
func (s *NameSet) Len() int {
	return len(s.years)
}

// Names returns the normalized names in sorted order.
func (s *NameSet) Names() []string {
	names := make([]string, 0, len(s.years))
	for n := range s.years {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// YearsFor returns the years a normalized name was listed in, sorted.
// Nil if the name is not in the set.
func (s *NameSet) YearsFor(name string) []int {
	ys, ok := s.years[Normalize(name)]
	if !ok {
		return nil
	}
	years := make([]int, 0, len(ys))
	for y := range ys {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Matches reports whether a company name matches any set entry under the
// default bidirectional substring rule.
func (s *NameSet) Matches(name string) bool {
	return s.MatchesMode(name, ModeSubstring)
}

// MatchesMode reports whether a company name matches any set entry under
// the given mode.
func (s *NameSet) MatchesMode(name string, mode Mode) bool {
	n := Normalize(name)
	for entry := range s.years {
		switch mode {
		case ModeWholeWord:
			if containsWord(n, entry) || containsWord(entry, n) {
				return true
			}
		default:
			if strings.Contains(n, entry) || strings.Contains(entry, n) {
				return true
			}
		}
	}
	return false
}

// Label appends a binary disrupted column to the company table. The
// input is not mutated; running Label twice on the same inputs yields
// identical output.
func Label(companies []dataset.CompanyRecord, set *NameSet, mode Mode) []dataset.LabeledCompany {
	labeled := make([]dataset.LabeledCompany, 0, len(companies))
	for _, c := range companies {
		disrupted := 0
		if set.MatchesMode(c.Name, mode) {
			disrupted = 1
		}
		labeled = append(labeled, dataset.LabeledCompany{CompanyRecord: c, Disrupted: disrupted})
	}
	return labeled
}

// containsWord reports whether needle occurs in haystack with
// non-alphanumeric (or string-edge) characters on both sides.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(haystack, i) && boundaryAfter(haystack, i+len(needle)) {
			return true
		}
		start = i + 1
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := rune(s[i-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
