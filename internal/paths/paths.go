// Package paths resolves where filled documents and their snapshots are written.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/applytrack/docfill/internal/config"
)

// SnapshotPrefix marks snapshot files next to their template name.
const SnapshotPrefix = "_ph_"

// maxIncrement bounds the search for a free "name - NN" file name.
const maxIncrement = 999

// CascadeDir appends the date sub-directories selected by cascade to base.
//
//	year        2025
//	month       2025/01-Jan
//	day         2025/01-Jan/19
//	year-month  2025-01
func CascadeDir(base, cascade string, now time.Time) (string, error) {
	switch cascade {
	case "", config.CascadeNone:
		return base, nil
	case config.CascadeYear:
		return filepath.Join(base, now.Format("2006")), nil
	case config.CascadeMonth:
		return filepath.Join(base, now.Format("2006"), now.Format("01-Jan")), nil
	case config.CascadeDay:
		return filepath.Join(base, now.Format("2006"), now.Format("01-Jan"), now.Format("02")), nil
	case config.CascadeYearMonth:
		return filepath.Join(base, now.Format("2006-01")), nil
	default:
		return "", fmt.Errorf("unknown cascade %q", cascade)
	}
}

// NextAvailable returns path if nothing exists there, otherwise the first free
// "stem - 01.ext", "stem - 02.ext", ... next to it.
func NextAvailable(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	for i := 1; i <= maxIncrement; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - %02d%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free file name for %s after %d attempts", path, maxIncrement)
}

// SanitizeName normalizes a file name to NFC and replaces characters that are
// not allowed in file names on common file systems.
func SanitizeName(name string) string {
	name = norm.NFC.String(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	name = strings.Trim(name, " .")
	if name == "" {
		return "document"
	}
	return name
}

// OutputPath builds the path of a filled document: the cascaded output
// directory, the sanitized name with a .docx extension, and a numeric suffix
// when the file already exists.
func OutputPath(outputDir, cascade, name string, now time.Time) (string, error) {
	dir, err := CascadeDir(outputDir, cascade, now)
	if err != nil {
		return "", err
	}
	name = SanitizeName(name)
	if !strings.EqualFold(filepath.Ext(name), ".docx") {
		name += ".docx"
	}
	return NextAvailable(filepath.Join(dir, name))
}

// SnapshotPath returns the snapshot file for template inside dir. Each
// template has exactly one snapshot, replaced on every fill.
func SnapshotPath(dir, template string) string {
	base := filepath.Base(template)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, SnapshotPrefix+SanitizeName(stem)+".json")
}
