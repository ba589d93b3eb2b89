// Package export writes a finished posting to a file the user can share.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/mark3labs/vacancy/internal/logger"
	"github.com/mark3labs/vacancy/internal/markdown"
)

// Format selects the output file type.
type Format int

const (
	Markdown Format = iota
	HTML
)

// Ext returns the file extension for f.
func (f Format) Ext() string {
	if f == HTML {
		return ".html"
	}
	return ".md"
}

// fallbackName is used when the title has nothing sluggable in it.
const fallbackName = "vacancy"

// maxTitleRunes bounds the part of the title used for the filename.
const maxTitleRunes = 60

// Filename returns the base name for a posting titled title.
func Filename(title string, f Format) string {
	return baseName(title) + f.Ext()
}

func baseName(title string) string {
	t := []rune(firstLine(title))
	if len(t) > maxTitleRunes {
		t = t[:maxTitleRunes]
	}
	name := slug.Make(string(t))
	if name == "" {
		return fallbackName
	}
	return name
}

// Write saves content into dir and returns the path. Existing files are
// never overwritten; a numeric suffix is added instead.
func Write(dir, title, content string, f Format) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	data := content
	if f == HTML {
		body, err := markdown.ToHTML(content)
		if err != nil {
			return "", err
		}
		data = markdown.Document(firstLine(title), body)
	}

	base := baseName(title)
	path := filepath.Join(dir, base+f.Ext())
	for i := 2; ; i++ {
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, i, f.Ext()))
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create export file: %w", err)
		}

		logger.Debug("Writing posting to %s", path)
		if _, err := file.WriteString(data); err != nil {
			_ = file.Close()
			return "", fmt.Errorf("failed to write export file: %w", err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("failed to write export file: %w", err)
		}
		return path, nil
	}
}

// firstLine returns the first non-empty line from a multi-line string.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
