package server

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestHeaderSafe_FlattensControlCharacters(t *testing.T) {
	assert.Equal(t, "PDF not produced: soffice  failed", headerSafe("PDF not produced: soffice\r\nfailed"))
}

func TestHeaderSafe_TruncatesOnRuneBoundary(t *testing.T) {
	// é is two bytes; the cut point falls inside one.
	msg := strings.Repeat("a", maxHeaderBytes-4) + strings.Repeat("é", 10)

	got := headerSafe(msg)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxHeaderBytes)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", maxHeaderBytes-4)+"...", got)
}

func TestHeaderSafe_MultiByteOnly(t *testing.T) {
	got := headerSafe(strings.Repeat("警", 400))

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxHeaderBytes)
	assert.Equal(t, strings.Repeat("警", 169)+"...", got)
}

func TestHeaderSafe_ShortMessageUnchanged(t *testing.T) {
	assert.Equal(t, "PDF not produced", headerSafe("PDF not produced"))
}
