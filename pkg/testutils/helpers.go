package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}

// RequireShell skips the test on platforms without /bin/sh.
func RequireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake enumeration tools are shell scripts")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// WriteFakeTool writes an executable shell script with the given body into a
// temp directory and returns its path.
func WriteFakeTool(t *testing.T, body string) string {
	t.Helper()
	RequireShell(t)

	path := filepath.Join(t.TempDir(), "lsjson")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

// FakeToolOutput returns a tool that prints doc on stdout and exits 0.
func FakeToolOutput(t *testing.T, doc string) string {
	t.Helper()
	return WriteFakeTool(t, "cat <<'__DOC__'\n"+doc+"\n__DOC__")
}

// FakeToolFailure returns a tool that writes stderr and exits with code.
func FakeToolFailure(t *testing.T, code int, stderr string) string {
	t.Helper()
	body := fmt.Sprintf("printf '%%s\\n' %s >&2\nexit %d", shellQuote(stderr), code)
	return WriteFakeTool(t, body)
}

// FakeToolEcho returns a tool that records its arguments, one per line, in
// the returned file and answers with an empty listing of its last argument.
func FakeToolEcho(t *testing.T) (tool string, argsFile string) {
	t.Helper()
	argsFile = filepath.Join(t.TempDir(), "args")
	body := fmt.Sprintf(`printf '%%s\n' "$@" > %s
for last; do :; done
printf '{"path":"%%s","total":0,"entries":[]}' "$last"`, shellQuote(argsFile))
	return WriteFakeTool(t, body), argsFile
}

// FakeToolSleep returns a tool that hangs for the given number of seconds.
func FakeToolSleep(t *testing.T, seconds int) string {
	t.Helper()
	return WriteFakeTool(t, fmt.Sprintf("exec sleep %d", seconds))
}

// FakeToolTree returns a tool that serves listings from a map of directory
// path to JSON document. Unknown directories fail with exit 2.
func FakeToolTree(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	var b strings.Builder
	b.WriteString("for last; do :; done\ncase \"$last\" in\n")
	i := 0
	for path, doc := range docs {
		file := filepath.Join(dir, fmt.Sprintf("doc%d.json", i))
		require.NoError(t, os.WriteFile(file, []byte(doc), 0644))
		fmt.Fprintf(&b, "  %s) cat %s ;;\n", shellQuote(path), shellQuote(file))
		i++
	}
	b.WriteString("  *) echo \"$last: no such directory\" >&2; exit 2 ;;\nesac")
	return WriteFakeTool(t, b.String())
}

// EmptyListing returns a tool document for path with no entries.
func EmptyListing(path string) string {
	return fmt.Sprintf(`{"path":%q,"total":0,"entries":[]}`, path)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
