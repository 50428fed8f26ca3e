package format

import (
	"fmt"
	"time"

	"dirview/pkg/types"

	"github.com/dustin/go-humanize"
)

// TimeLayout is how modification times are shown.
const TimeLayout = "2006-01-02 15:04"

// Placeholder fills columns that have nothing to show.
const Placeholder = "-"

const (
	kb = 1024
	mb = kb * 1024
	gb = mb * 1024
)

// Size renders a byte count with 1024-based units: "512 B", "1.5 KB",
// "3.0 MB", "2.1 GB". GB is the largest unit.
func Size(n int64) string {
	switch {
	case n < kb:
		return fmt.Sprintf("%d B", n)
	case n < mb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	case n < gb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	}
	return fmt.Sprintf("%.1f GB", float64(n)/gb)
}

// SizeColumn is Size for files and symlinks and a placeholder for
// directories, whose reported size is not meaningful to display.
func SizeColumn(e types.Entry) string {
	if e.IsDir() {
		return Placeholder
	}
	return Size(e.Size)
}

// Timestamp renders the modification time in local time. An unparsed time
// falls back to the tool's raw string.
func Timestamp(e types.Entry) string {
	if e.Modified.IsZero() {
		if e.ModifiedRaw != "" {
			return e.ModifiedRaw
		}
		return Placeholder
	}
	return e.Modified.Local().Format(TimeLayout)
}

// Relative renders t as "3 days ago".
func Relative(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return humanize.Time(t)
}

// Icon maps a kind to its display icon.
func Icon(kind types.Kind) string {
	switch kind {
	case types.KindDirectory:
		return "📁"
	case types.KindSymlink:
		return "🔗"
	}
	return "📄"
}

// Tag maps a kind to the one-letter type column of a long listing.
func Tag(kind types.Kind) string {
	switch kind {
	case types.KindDirectory:
		return "d"
	case types.KindSymlink:
		return "l"
	}
	return "-"
}

// Long renders one entry as a long listing line:
// type, permissions, size, modification time, name.
func Long(e types.Entry) string {
	return fmt.Sprintf("%s %-10s %9s %16s %s", Tag(e.Kind), e.Permissions, SizeColumn(e), Timestamp(e), e.Name)
}
