package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-docgen/internal/document"
	"github.com/jonathan/resume-docgen/internal/highlight"
	"github.com/jonathan/resume-docgen/internal/types"
)

// Layout constants of the fixed resume template.
const (
	nameSizeBump      = 3
	durationTabStopIn = 6.3
	bulletIndentIn    = 0.25
	contactSeparator  = " | "
)

// Section headings in render order.
const (
	HeadingSummary        = "PROFESSIONAL SUMMARY"
	HeadingSkills         = "TECHNICAL SKILLS"
	HeadingExperience     = "PROFESSIONAL EXPERIENCE"
	HeadingEducation      = "EDUCATION"
	HeadingCertifications = "CERTIFICATIONS"
)

// builder carries the style decisions shared by every block of one render.
type builder struct {
	doc  *document.Document
	font string
	size float64
	hl   *highlight.Highlighter
}

// Render builds the resume document. It performs no I/O; keywords are the
// already-loaded bold keyword list.
func Render(record *types.ResumeRecord, style types.StyleOptions, keywords []string) (*document.Document, error) {
	if record == nil {
		return nil, &RenderError{Message: "no resume record"}
	}
	name := strings.TrimSpace(record.Name)
	if name == "" {
		return nil, &RenderError{Message: "resume name is required"}
	}

	style = style.WithDefaults()
	if err := style.Validate(); err != nil {
		return nil, &RenderError{Message: "invalid style options", Cause: err}
	}

	b := &builder{
		doc:  document.New(),
		font: style.FontName,
		size: float64(style.FontSize),
		hl:   highlight.New(keywords),
	}
	b.doc.Title = name
	if record.Title != "" {
		b.doc.Title = fmt.Sprintf("%s - %s", name, strings.TrimSpace(record.Title))
	}
	b.doc.Author = name

	b.header(record)
	b.summary(record.ProfessionalSummary)
	b.skills(record.TechnicalSkills)
	b.experience(record.Experience)
	b.education(record.Education)
	b.certifications(record.Certifications)

	return b.doc, nil
}

func (b *builder) run(text string, bold bool) document.Run {
	return document.Run{Text: text, Bold: bold, Font: b.font, Size: b.size}
}

func (b *builder) highlighted(text string) []document.Run {
	spans := b.hl.Split(text)
	runs := make([]document.Run, 0, len(spans))
	for _, s := range spans {
		runs = append(runs, b.run(s.Text, s.Bold))
	}
	return runs
}

func (b *builder) header(record *types.ResumeRecord) {
	nameRun := b.run(strings.TrimSpace(record.Name), true)
	nameRun.Size = b.size + nameSizeBump
	b.doc.Add(document.Block{
		Kind:       document.Paragraph,
		Align:      document.AlignCenter,
		Runs:       []document.Run{nameRun},
		SpaceAfter: 2,
	})

	if title := strings.TrimSpace(record.Title); title != "" {
		b.doc.Add(document.Block{
			Kind:       document.Paragraph,
			Align:      document.AlignCenter,
			Runs:       []document.Run{b.run(title, false)},
			SpaceAfter: 2,
		})
	}

	entries := record.ContactLine()
	if len(entries) == 0 {
		return
	}
	runs := make([]document.Run, 0, len(entries)*2-1)
	for i, entry := range entries {
		if i > 0 {
			runs = append(runs, b.run(contactSeparator, false))
		}
		link := b.run(entry.Label, false)
		link.Link = entry.Target
		link.Color = document.ColorLink
		runs = append(runs, link)
	}
	b.doc.Add(document.Block{
		Kind:       document.HyperlinkLine,
		Align:      document.AlignCenter,
		Runs:       runs,
		SpaceAfter: 4,
	})
}

func (b *builder) heading(text string) {
	r := b.run(strings.ToUpper(text), true)
	r.Color = document.ColorBlack
	b.doc.Add(document.Block{
		Kind:         document.Heading,
		Align:        document.AlignLeft,
		Runs:         []document.Run{r},
		SpaceAfter:   4,
		BottomBorder: true,
	})
}

func (b *builder) bullets(items []string, highlight bool) {
	for _, item := range items {
		block := document.Block{
			Kind:       document.Bullet,
			Align:      document.AlignLeft,
			SpaceAfter: 2,
			Indent:     bulletIndentIn,
		}
		if highlight {
			block.Align = document.AlignJustify
			block.Runs = b.highlighted(item)
		} else {
			block.Runs = []document.Run{b.run(item, false)}
		}
		b.doc.Add(block)
	}
}

// labelled adds a paragraph made of a bold label followed by plain text.
func (b *builder) labelled(label, text string, spaceAfter float64) {
	runs := []document.Run{b.run(label, true)}
	if text != "" {
		runs = append(runs, b.run(text, false))
	}
	b.doc.Add(document.Block{
		Kind:       document.Paragraph,
		Align:      document.AlignLeft,
		Runs:       runs,
		SpaceAfter: spaceAfter,
	})
}

func (b *builder) summary(items []string) {
	if len(items) == 0 {
		return
	}
	b.heading(HeadingSummary)
	b.bullets(items, true)
}

func (b *builder) skills(categories types.SkillCategories) {
	if len(categories) == 0 {
		return
	}
	b.heading(HeadingSkills)
	for _, cat := range categories {
		b.labelled(fmt.Sprintf("• %s: ", cat.Category), strings.Join(cat.Skills, ", "), 2)
	}
}

func (b *builder) experience(jobs []types.Job) {
	if len(jobs) == 0 {
		return
	}
	b.heading(HeadingExperience)
	for _, job := range jobs {
		b.labelled("Role: "+job.Role, "", 0)

		client := document.Block{
			Kind:       document.Paragraph,
			Align:      document.AlignLeft,
			Runs:       []document.Run{b.run("Client: "+job.Company, true)},
			SpaceAfter: 4,
			TabStop:    durationTabStopIn,
		}
		if d := strings.TrimSpace(job.Duration); d != "" {
			dr := b.run(d, true)
			dr.Size = b.size - 1
			dr.Color = document.ColorBlack
			dr.Tab = true
			client.Runs = append(client.Runs, dr)
		}
		b.doc.Add(client)

		if job.ProjectOverview != "" {
			b.labelled("Project Overview: ", job.ProjectOverview, 4)
		}

		if len(job.Responsibilities) > 0 {
			b.labelled("Responsibilities: ", "", 2)
			b.bullets(job.Responsibilities, true)
		}

		if len(job.Environment) > 0 {
			b.labelled("Environment: ", strings.Join(job.Environment, ", "), 8)
		}
	}
}

// EducationLine joins degree, field, "at institution" and "(year)", skipping
// absent parts.
func EducationLine(edu *types.Education) string {
	if edu == nil {
		return ""
	}
	var parts []string
	if v := strings.TrimSpace(edu.Degree); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(edu.Field); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(edu.Institution); v != "" {
		parts = append(parts, "at "+v)
	}
	if v := strings.TrimSpace(string(edu.Year)); v != "" {
		parts = append(parts, "("+v+")")
	}
	return strings.Join(parts, ", ")
}

func (b *builder) education(edu *types.Education) {
	if edu.IsEmpty() {
		return
	}
	b.heading(HeadingEducation)
	b.doc.Add(document.Block{
		Kind:       document.Paragraph,
		Align:      document.AlignLeft,
		Runs:       []document.Run{b.run(EducationLine(edu), false)},
		SpaceAfter: 2,
	})
}

func (b *builder) certifications(items []string) {
	if len(items) == 0 {
		return
	}
	b.heading(HeadingCertifications)
	b.bullets(items, false)
}
