package parsing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeywordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bold_keywords.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBoldKeywords_Valid(t *testing.T) {
	path := writeKeywordFile(t, `{"skills": ["Python", " Spark ", "", "JavaScript"]}`)

	keywords, warn := LoadBoldKeywords(path)
	assert.NoError(t, warn)
	assert.Equal(t, []string{"Python", "Spark", "JavaScript"}, keywords)
}

func TestLoadBoldKeywords_EmptyPath(t *testing.T) {
	keywords, warn := LoadBoldKeywords("")
	assert.NoError(t, warn)
	assert.Empty(t, keywords)
}

func TestLoadBoldKeywords_MissingFile(t *testing.T) {
	keywords, warn := LoadBoldKeywords(filepath.Join(t.TempDir(), "nope.json"))
	var kw *KeywordFileWarning
	require.ErrorAs(t, warn, &kw)
	assert.Empty(t, keywords)
}

func TestLoadBoldKeywords_WrongShape(t *testing.T) {
	path := writeKeywordFile(t, `["Python"]`)

	keywords, warn := LoadBoldKeywords(path)
	var kw *KeywordFileWarning
	require.ErrorAs(t, warn, &kw)
	assert.Contains(t, kw.Error(), "'skills' array")
	assert.Empty(t, keywords)
}

func TestLoadBoldKeywords_Malformed(t *testing.T) {
	path := writeKeywordFile(t, `{"skills": [`)

	keywords, warn := LoadBoldKeywords(path)
	var kw *KeywordFileWarning
	require.ErrorAs(t, warn, &kw)
	assert.Equal(t, "invalid JSON", kw.Message)
	assert.Empty(t, keywords)
}
