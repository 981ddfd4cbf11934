package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultPageSetup(t *testing.T) {
	doc := New()
	assert.Equal(t, DefaultPageSetup(), doc.Page)
	assert.Empty(t, doc.Blocks)
}

func TestBlock_TextAndLinks(t *testing.T) {
	b := Block{
		Kind: HyperlinkLine,
		Runs: []Run{
			{Text: "jane@example.com", Link: "mailto:jane@example.com"},
			{Text: " | "},
			{Text: "LinkedIn", Link: "https://linkedin.com/in/jane"},
		},
	}

	assert.Equal(t, "jane@example.com | LinkedIn", b.Text())
	links := b.Links()
	if assert.Len(t, links, 2) {
		assert.Equal(t, "mailto:jane@example.com", links[0].Link)
		assert.Equal(t, "LinkedIn", links[1].Text)
	}
}

func TestDocument_CountKindAndHeadings(t *testing.T) {
	doc := New()
	doc.Add(Block{Kind: Paragraph, Runs: []Run{{Text: "Jane Doe"}}})
	doc.Add(Block{Kind: Heading, Runs: []Run{{Text: "EXPERIENCE"}}})
	doc.Add(Block{Kind: Bullet, Runs: []Run{{Text: "Shipped"}}})
	doc.Add(Block{Kind: Bullet, Runs: []Run{{Text: "Scaled"}}})
	doc.Add(Block{Kind: Heading, Runs: []Run{{Text: "EDUCATION"}}})

	assert.Equal(t, 2, doc.CountKind(Bullet))
	assert.Equal(t, 0, doc.CountKind(HyperlinkLine))
	assert.Equal(t, []string{"EXPERIENCE", "EDUCATION"}, doc.Headings())
}
