package pipeline

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultNamePrefix starts every derived filename.
const DefaultNamePrefix = "Resume"

var (
	filenameDisallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}-]`)
	filenameSpaces     = regexp.MustCompile(`[\s\p{Z}]+`)
)

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return DefaultNamePrefix
	}
	return prefix
}

// DefaultFilename is used when neither a title nor a filename is available.
func DefaultFilename(prefix string) string {
	return normalizePrefix(prefix) + "_Resume"
}

// DeriveFilename builds "<prefix>_<title>" with punctuation removed and
// whitespace runs collapsed to underscores.
func DeriveFilename(prefix, title string) string {
	clean := filenameDisallowed.ReplaceAllString(strings.TrimSpace(title), "")
	clean = filenameSpaces.ReplaceAllString(clean, "_")
	return normalizePrefix(prefix) + "_" + clean
}

// ResolveFilename picks the output stem. With a title, a supplied name is
// kept only if it already begins with the title-based stem; otherwise the
// derived name wins. Without a title, the supplied name is kept and an empty
// one falls back to fallback.
func ResolveFilename(supplied, prefix, title, fallback string) string {
	supplied = stripOutputExt(strings.TrimSpace(supplied))
	title = strings.TrimSpace(title)

	if title != "" {
		expected := normalizePrefix(prefix) + "_" + strings.ReplaceAll(title, " ", "_")
		if supplied != "" && strings.HasPrefix(supplied, expected) {
			return supplied
		}
		return DeriveFilename(prefix, title)
	}

	if supplied != "" {
		return supplied
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback
	}
	return DefaultFilename(prefix)
}

// stripOutputExt drops directories and a trailing .docx or .pdf so the stem
// can be reused for both outputs.
func stripOutputExt(name string) string {
	if name == "" {
		return ""
	}
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx", ".pdf":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
