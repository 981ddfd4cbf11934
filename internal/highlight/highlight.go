// Package highlight splits text into plain and bold spans around keyword matches.
package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a contiguous piece of text sharing one bold decision.
type Span struct {
	Text string
	Bold bool
}

// Highlighter matches a fixed keyword list case-insensitively on whole words.
// Keywords are tried longest first at every position, so "JavaScript" wins
// over "Java". A Highlighter is immutable and safe for concurrent use.
type Highlighter struct {
	keywords []string
	matchers []*regexp.Regexp
}

// New builds a Highlighter. Blank keywords are ignored; ties in length keep
// the order given.
func New(keywords []string) *Highlighter {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) != "" {
			cleaned = append(cleaned, kw)
		}
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return utf8.RuneCountInString(cleaned[i]) > utf8.RuneCountInString(cleaned[j])
	})

	h := &Highlighter{
		keywords: cleaned,
		matchers: make([]*regexp.Regexp, len(cleaned)),
	}
	for i, kw := range cleaned {
		h.matchers[i] = regexp.MustCompile(`^(?i:` + regexp.QuoteMeta(kw) + `)`)
	}
	return h
}

// Keywords returns the keywords in matching order.
func (h *Highlighter) Keywords() []string {
	out := make([]string, len(h.keywords))
	copy(out, h.keywords)
	return out
}

// Split returns spans covering text exactly. Matched keywords are bold; no
// span is empty unless text itself is empty, in which case a single empty
// plain span is returned.
func (h *Highlighter) Split(text string) []Span {
	if h == nil || len(h.matchers) == 0 || text == "" {
		return []Span{{Text: text}}
	}

	var spans []Span
	last := 0
	for _, m := range h.matches(text) {
		if m[0] > last {
			spans = append(spans, Span{Text: text[last:m[0]]})
		}
		spans = append(spans, Span{Text: text[m[0]:m[1]], Bold: true})
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	if len(spans) == 0 {
		return []Span{{Text: text}}
	}
	return spans
}

// matches scans left to right and returns non-overlapping [start, end) byte
// offsets of whole-word keyword matches.
func (h *Highlighter) matches(text string) [][2]int {
	var found [][2]int
	pos := 0
	for pos < len(text) {
		if end, ok := h.matchAt(text, pos); ok {
			found = append(found, [2]int{pos, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return found
}

func (h *Highlighter) matchAt(text string, pos int) (int, bool) {
	if pos > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:pos])
		if isWordRune(prev) {
			return 0, false
		}
	}

	rest := text[pos:]
	for _, re := range h.matchers {
		loc := re.FindStringIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		end := pos + loc[1]
		if end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if isWordRune(next) {
				continue
			}
		}
		return end, true
	}
	return 0, false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
