// Package format holds the display rules shared by every frontend: entry
// ordering, size and date rendering, kind icons and name filtering.
package format

import (
	"slices"
	"sync"

	"dirview/pkg/types"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders entries for display: directories first, then files and
// symlinks together, each group by locale-aware name comparison.
type Sorter struct {
	mu  sync.Mutex // collate.Collator is not safe for concurrent use
	col *collate.Collator
}

// NewSorter creates a sorter collating names for tag.
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{col: collate.New(tag)}
}

// NewSorterForLocale parses a BCP-47 locale, falling back to the root locale
// when it does not parse.
func NewSorterForLocale(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return NewSorter(tag)
}

var defaultSorter = NewSorter(language.Und)

// Sort returns a sorted copy of entries. The input is never modified.
func (s *Sorter) Sort(entries []types.Entry) []types.Entry {
	out := slices.Clone(entries)
	if out == nil {
		out = []types.Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slices.SortStableFunc(out, func(a, b types.Entry) int {
		if ad, bd := a.IsDir(), b.IsDir(); ad != bd {
			if ad {
				return -1
			}
			return 1
		}
		if c := s.col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}

// Sorted returns the listing's entries in display order.
func (s *Sorter) Sorted(listing *types.Listing) []types.Entry {
	if listing == nil {
		return []types.Entry{}
	}
	return s.Sort(listing.Entries)
}

// Sort orders entries with the root locale.
func Sort(entries []types.Entry) []types.Entry {
	return defaultSorter.Sort(entries)
}

// Sorted orders a listing's entries with the root locale.
func Sorted(listing *types.Listing) []types.Entry {
	return defaultSorter.Sorted(listing)
}
