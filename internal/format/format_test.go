package format_test

import (
	"strings"
	"testing"
	"time"

	"dirview/internal/errors"
	"dirview/internal/format"
	"dirview/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func names(entries []types.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func file(name string) types.Entry {
	return types.Entry{Name: name, Kind: types.KindFile, Permissions: types.DefaultPermissions}
}

func dir(name string) types.Entry {
	return types.Entry{Name: name, Kind: types.KindDirectory, Permissions: types.DefaultPermissions}
}

func link(name string) types.Entry {
	return types.Entry{Name: name, Kind: types.KindSymlink, Permissions: types.DefaultPermissions}
}

func TestSortScenario(t *testing.T) {
	listing := &types.Listing{
		Path: "/home/u",
		Entries: []types.Entry{
			{Name: "b.txt", Kind: types.KindFile, Size: 10},
			{Name: "a", Kind: types.KindDirectory},
		},
	}

	sorted := format.Sorted(listing)
	require.Len(t, sorted, 2)
	assert.Equal(t, "a", sorted[0].Name)
	assert.Equal(t, types.KindDirectory, sorted[0].Kind)
	assert.Equal(t, "b.txt", sorted[1].Name)
	assert.Equal(t, "10 B", format.SizeColumn(sorted[1]))

	assert.Equal(t, "b.txt", listing.Entries[0].Name, "the listing is not mutated")
}

func TestSortDirectoriesFirst(t *testing.T) {
	entries := []types.Entry{file("zeta"), link("beta"), dir("omega"), file("Alpha"), dir("alpha")}

	sorted := format.Sort(entries)
	assert.Equal(t, []string{"alpha", "omega", "Alpha", "beta", "zeta"}, names(sorted))
}

func TestSortLocaleAware(t *testing.T) {
	entries := []types.Entry{file("b"), file("B"), file("a"), file("é"), file("f")}

	sorted := format.Sort(entries)
	got := names(sorted)
	assert.Equal(t, "a", got[0])
	assert.Less(t, indexOf(got, "é"), indexOf(got, "f"), "accented letters collate with their base letter")

	again := format.Sort([]types.Entry{file("B"), file("b")})
	assert.Equal(t, names(format.Sort([]types.Entry{file("b"), file("B")})), names(again), "ties are broken deterministically")
}

func TestSortLocales(t *testing.T) {
	entries := []types.Entry{file("ö"), file("z"), file("o")}

	de := format.NewSorter(language.German).Sort(entries)
	assert.Equal(t, []string{"o", "ö", "z"}, names(de))

	sv := format.NewSorterForLocale("sv").Sort(entries)
	assert.Equal(t, []string{"o", "z", "ö"}, names(sv), "Swedish sorts ö after z")

	fallback := format.NewSorterForLocale("not a locale!").Sort(entries)
	assert.Len(t, fallback, 3)
}

func TestSortEmpty(t *testing.T) {
	assert.NotNil(t, format.Sort(nil))
	assert.Empty(t, format.Sorted(nil))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func TestSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{10, "10 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024*1024 - 1, "1024.0 KB"},
		{1024 * 1024, "1.0 MB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{1024 * 1024 * 1024, "1.0 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3072.0 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, format.Size(tt.in), "%d", tt.in)
	}
}

func TestSizeColumn(t *testing.T) {
	d := dir("lib")
	d.Size = 4096
	assert.Equal(t, "-", format.SizeColumn(d))

	f := file("x")
	f.Size = 2048
	assert.Equal(t, "2.0 KB", format.SizeColumn(f))
}

func TestTimestamp(t *testing.T) {
	e := file("x")
	assert.Equal(t, "-", format.Timestamp(e))

	e.ModifiedRaw = "yesterday"
	assert.Equal(t, "yesterday", format.Timestamp(e))

	e.Modified = time.Date(2024, 3, 5, 10, 11, 12, 0, time.Local)
	assert.Equal(t, "2024-03-05 10:11", format.Timestamp(e))
}

func TestRelative(t *testing.T) {
	assert.Equal(t, "-", format.Relative(time.Time{}))
	assert.Equal(t, "3 days ago", format.Relative(time.Now().Add(-3*24*time.Hour-time.Minute)))
}

func TestIconsAndTags(t *testing.T) {
	assert.Equal(t, "📁", format.Icon(types.KindDirectory))
	assert.Equal(t, "🔗", format.Icon(types.KindSymlink))
	assert.Equal(t, "📄", format.Icon(types.KindFile))

	assert.Equal(t, "d", format.Tag(types.KindDirectory))
	assert.Equal(t, "l", format.Tag(types.KindSymlink))
	assert.Equal(t, "-", format.Tag(types.KindFile))
}

func TestLong(t *testing.T) {
	e := file("notes.txt")
	e.Size = 1536
	e.Permissions = "rw-r--r--"
	e.Modified = time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local)

	line := format.Long(e)
	assert.True(t, strings.HasPrefix(line, "- rw-r--r--"))
	assert.Contains(t, line, "1.5 KB")
	assert.Contains(t, line, "2024-01-01 09:30")
	assert.True(t, strings.HasSuffix(line, " notes.txt"))

	assert.True(t, strings.HasPrefix(format.Long(dir("src")), "d -"))
}

func TestFilter(t *testing.T) {
	entries := []types.Entry{file("main.go"), file("main.pyc"), dir(".git"), file("README")}

	out, err := format.Filter(entries, []string{"*.pyc", ".git"})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "README"}, names(out))

	out, err = format.Filter(entries, nil)
	require.NoError(t, err)
	assert.Len(t, out, 4)

	_, err = format.Filter(entries, []string{"ok", "[broken"})
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "hide_patterns[1]", cfgErr.Param())
}

func TestMatcher(t *testing.T) {
	var nilMatcher *format.Matcher
	assert.False(t, nilMatcher.Hides("anything"))
	assert.Len(t, nilMatcher.Apply([]types.Entry{file("a")}), 1)

	m, err := format.NewMatcher([]string{"{*.o,*.a}"})
	require.NoError(t, err)
	assert.True(t, m.Hides("lib.a"))
	assert.True(t, m.Hides("x.o"))
	assert.False(t, m.Hides("x.c"))
	assert.Equal(t, []string{"{*.o,*.a}"}, m.Patterns())
}
