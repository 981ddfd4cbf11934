package docx

import "strings"

var xmlReplacer = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

// EscapeXML escapes markup characters for use in element text and attribute
// values. Characters that XML 1.0 cannot represent are dropped.
func EscapeXML(s string) string {
	return xmlReplacer.Replace(strings.Map(xmlChar, s))
}

func xmlChar(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20:
		return -1
	case r == 0xFFFE || r == 0xFFFF:
		return -1
	}
	return r
}
