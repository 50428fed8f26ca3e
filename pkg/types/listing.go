package types

// RawListing is the document the enumeration tool writes to standard output.
// Path, Entries and each entry are pointers so a decoder can tell a missing or
// null field from an empty one.
type RawListing struct {
	Path    *string      `json:"path"`
	Total   int          `json:"total"`
	Entries *[]*RawEntry `json:"entries"`
}

// Listing is the result of enumerating one directory. Path is the location
// the tool reported, which may differ from the one requested.
type Listing struct {
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}

// IsEmpty reports whether the directory had no entries.
func (l *Listing) IsEmpty() bool {
	return l == nil || len(l.Entries) == 0
}

// Len returns the number of entries.
func (l *Listing) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// NormalizeListing maps every raw entry through Normalize, keeping the tool's
// order and path. A missing path becomes "", missing entries an empty slice
// and null entries are skipped; it does not validate the document.
func NormalizeListing(raw RawListing) *Listing {
	listing := &Listing{Entries: []Entry{}}
	if raw.Path != nil {
		listing.Path = *raw.Path
	}
	if raw.Entries != nil {
		listing.Entries = make([]Entry, 0, len(*raw.Entries))
		for _, e := range *raw.Entries {
			if e == nil {
				continue
			}
			listing.Entries = append(listing.Entries, Normalize(*e))
		}
	}
	return listing
}
