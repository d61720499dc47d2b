// Package naming derives worksheet names for consolidated tables and
// enforces the legalization, truncation, and uniqueness rules Excel
// requires of them
package naming

import (
	"path/filepath"
	"regexp"
	"strings"

	"table-combiner/internal/config"
)

// illegalChars matches the characters Excel forbids in sheet names
var illegalChars = regexp.MustCompile(`[:\\/?*\[\]]`)

// whitespaceRuns collapses consecutive whitespace left behind by
// character replacement
var whitespaceRuns = regexp.MustCompile(`\s+`)

// DeriveFromFilename proposes a sheet name for a table read from the named
// file. The default is the filename stem. With afterUnderscore set, the part
// of the stem after the last underscore is used instead, which suits
// per-entity batches such as "export_AcmeCorp.csv".
func DeriveFromFilename(filename string, afterUnderscore bool) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if !afterUnderscore {
		return stem
	}
	parts := strings.Split(stem, "_")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return stem
}

// Legalize removes characters that are illegal in Excel sheet names,
// collapses whitespace runs, and trims the result. An empty result falls
// back to a generic name.
func Legalize(name string) string {
	name = illegalChars.ReplaceAllString(name, " ")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return config.FallbackSheetName
	}
	return name
}

// Truncate limits a name to max characters. Sheet names may contain
// multi-byte characters, so the limit is applied per rune.
func Truncate(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}
