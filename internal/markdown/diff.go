package markdown

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// Diff returns a unified diff from before to after, or "" if they are equal.
func Diff(before, after string) string {
	return udiff.Unified("generated", "edited", ensureNewline(before), ensureNewline(after))
}

// DiffStats counts added and removed lines between before and after.
func DiffStats(before, after string) (added, removed int) {
	inHunk := false
	for _, line := range strings.Split(Diff(before, after), "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
			// File headers.
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
