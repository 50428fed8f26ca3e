package types

import (
	"encoding/json"
	"time"
)

// DefaultPermissions is substituted when the tool reports no permissions.
const DefaultPermissions = "-"

// Kind classifies an entry. The zero value is KindFile so an Entry can never
// carry an unset kind.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// RawEntry is one entry exactly as the enumeration tool emits it.
type RawEntry struct {
	Name        string  `json:"name"`
	Size        int64   `json:"size"`
	Modified    string  `json:"modified"`
	IsDir       bool    `json:"is_dir"`
	IsSymlink   bool    `json:"is_symlink"`
	Permissions *string `json:"permissions,omitempty"`
	FileType    *string `json:"file_type,omitempty"`
}

// Entry is the normalized, immutable form of a RawEntry.
type Entry struct {
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	Size        int64     `json:"size"` // reported as-is, even for directories
	Modified    time.Time `json:"modified"`
	ModifiedRaw string    `json:"modified_raw,omitempty"`
	Permissions string    `json:"permissions"`
	FileType    string    `json:"file_type,omitempty"`
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Normalize converts a raw tool entry into an Entry. It never fails: missing
// or malformed optional fields fall back to defaults. A directory flag wins
// over a symlink flag.
func Normalize(raw RawEntry) Entry {
	kind := KindFile
	switch {
	case raw.IsDir:
		kind = KindDirectory
	case raw.IsSymlink:
		kind = KindSymlink
	}

	perms := DefaultPermissions
	if raw.Permissions != nil && *raw.Permissions != "" {
		perms = *raw.Permissions
	}

	var fileType string
	if raw.FileType != nil {
		fileType = *raw.FileType
	}

	return Entry{
		Name:        raw.Name,
		Kind:        kind,
		Size:        raw.Size,
		Modified:    parseTimestamp(raw.Modified),
		ModifiedRaw: raw.Modified,
		Permissions: perms,
		FileType:    fileType,
	}
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
