package parsing

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/jonathan/resume-docgen/internal/schemas"
)

type keywordFile struct {
	Skills []string `json:"skills"`
}

// LoadBoldKeywords reads the {"skills": [...]} side file.
//
// An empty path yields no keywords and no warning. Any other problem yields no
// keywords and a *KeywordFileWarning; generation continues either way.
func LoadBoldKeywords(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &KeywordFileWarning{Path: path, Message: "cannot read file", Cause: err}
	}

	return ParseBoldKeywords(path, raw)
}

// ParseBoldKeywords decodes keyword file content; source names it in warnings.
func ParseBoldKeywords(source string, raw []byte) ([]string, error) {
	if !json.Valid(raw) {
		return nil, &KeywordFileWarning{Path: source, Message: "invalid JSON"}
	}
	if err := schemas.ValidateBoldKeywords(string(raw)); err != nil {
		return nil, &KeywordFileWarning{Path: source, Message: "file should contain a 'skills' array", Cause: err}
	}

	var kf keywordFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, &KeywordFileWarning{Path: source, Message: "cannot decode skills", Cause: err}
	}

	return CleanKeywords(kf.Skills), nil
}

// CleanKeywords trims entries and drops blanks, keeping order.
func CleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, kw := range in {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
