package rendering

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-docgen/internal/document"
	"github.com/jonathan/resume-docgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord() *types.ResumeRecord {
	return &types.ResumeRecord{
		Name:  "Jane Doe",
		Title: "Senior Data Engineer",
		Contact: types.Contact{
			Portfolio: "https://jane.dev",
			LinkedIn:  "https://linkedin.com/in/jane",
			Email:     "jane@example.com",
			Phone:     "+1 555 0100",
		},
		ProfessionalSummary: []string{"Built Python pipelines on AWS"},
		TechnicalSkills: types.SkillCategories{
			{Category: "Languages", Skills: []string{"Python", "Go"}},
			{Category: "Cloud", Skills: []string{"AWS"}},
		},
		Experience: []types.Job{{
			Role:             "Data Engineer",
			Company:          "Acme",
			Duration:         "2020 - Present",
			ProjectOverview:  "Lakehouse migration",
			Responsibilities: []string{"Tuned Python jobs", "Cut costs"},
			Environment:      []string{"Python", "Spark"},
		}},
		Education: &types.Education{
			Degree:      "BSc",
			Field:       "Computer Science",
			Institution: "MIT",
			Year:        "2015",
		},
		Certifications: []string{"AWS Certified Developer"},
	}
}

func TestRender_NameOnly(t *testing.T) {
	doc, err := Render(&types.ResumeRecord{Name: "Jane Doe"}, types.DefaultStyle(), nil)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	b := doc.Blocks[0]
	assert.Equal(t, document.AlignCenter, b.Align)
	require.Len(t, b.Runs, 1)
	assert.Equal(t, "Jane Doe", b.Runs[0].Text)
	assert.True(t, b.Runs[0].Bold)
	assert.Equal(t, float64(types.DefaultFontSize+3), b.Runs[0].Size)
	assert.Equal(t, types.DefaultFontName, b.Runs[0].Font)
	assert.Empty(t, doc.Headings())
}

func TestRender_RejectsMissingName(t *testing.T) {
	_, err := Render(&types.ResumeRecord{Name: "   "}, types.DefaultStyle(), nil)
	var re *RenderError
	require.ErrorAs(t, err, &re)

	_, err = Render(nil, types.DefaultStyle(), nil)
	require.ErrorAs(t, err, &re)
}

func TestRender_RejectsInvalidStyle(t *testing.T) {
	_, err := Render(&types.ResumeRecord{Name: "Jane"}, types.StyleOptions{FontName: "Papyrus"}, nil)
	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "invalid style options", re.Message)
}

func TestRender_EmailOnlyContact(t *testing.T) {
	rec := &types.ResumeRecord{Name: "Jane", Contact: types.Contact{Email: "a@b.com"}}
	doc, err := Render(rec, types.DefaultStyle(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.CountKind(document.HyperlinkLine))

	var links []document.Run
	for _, b := range doc.Blocks {
		links = append(links, b.Links()...)
	}
	require.Len(t, links, 1)
	assert.Equal(t, "a@b.com", links[0].Text)
	assert.Equal(t, "mailto:a@b.com", links[0].Link)
	assert.Equal(t, document.ColorLink, links[0].Color)
}

func TestRender_ContactSeparators(t *testing.T) {
	doc, err := Render(fullRecord(), types.DefaultStyle(), nil)
	require.NoError(t, err)

	var line document.Block
	for _, b := range doc.Blocks {
		if b.Kind == document.HyperlinkLine {
			line = b
		}
	}
	assert.Len(t, line.Links(), 4)
	assert.Equal(t, "Portfolio | LinkedIn | jane@example.com | +1 555 0100", line.Text())
}

func TestRender_SectionOrder(t *testing.T) {
	doc, err := Render(fullRecord(), types.DefaultStyle(), []string{"Python"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		HeadingSummary,
		HeadingSkills,
		HeadingExperience,
		HeadingEducation,
		HeadingCertifications,
	}, doc.Headings())

	for _, b := range doc.Blocks {
		if b.Kind == document.Heading {
			assert.True(t, b.BottomBorder)
			assert.True(t, b.Runs[0].Bold)
		}
	}
}

func TestRender_HeaderTitleCentered(t *testing.T) {
	doc, err := Render(fullRecord(), types.DefaultStyle(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Senior Data Engineer", doc.Blocks[1].Text())
	assert.Equal(t, document.AlignCenter, doc.Blocks[1].Align)
	assert.Equal(t, "Jane Doe - Senior Data Engineer", doc.Title)
}

func TestRender_SummaryHighlighted(t *testing.T) {
	doc, err := Render(fullRecord(), types.DefaultStyle(), []string{"python", "AWS"})
	require.NoError(t, err)

	var summary document.Block
	for i, b := range doc.Blocks {
		if b.Kind == document.Heading && b.Text() == HeadingSummary {
			summary = doc.Blocks[i+1]
			break
		}
	}
	assert.Equal(t, document.Bullet, summary.Kind)
	assert.Equal(t, document.AlignJustify, summary.Align)
	assert.Equal(t, "Built Python pipelines on AWS", summary.Text())

	var bold []string
	for _, r := range summary.Runs {
		if r.Bold {
			bold = append(bold, r.Text)
		}
	}
	assert.Equal(t, []string{"Python", "AWS"}, bold)
}

func TestRender_CertificationsNotHighlighted(t *testing.T) {
	doc, err := Render(fullRecord(), types.DefaultStyle(), []string{"AWS"})
	require.NoError(t, err)

	last := doc.Blocks[len(doc.Blocks)-1]
	assert.Equal(t, document.Bullet, last.Kind)
	require.Len(t, last.Runs, 1)
	assert.False(t, last.Runs[0].Bold)
	assert.Equal(t, "AWS Certified Developer", last.Text())
}

func TestRender_SkillsLine(t *testing.T) {
	doc, err := Render(fullRecord(), types.DefaultStyle(), nil)
	require.NoError(t, err)

	var lines []string
	for i, b := range doc.Blocks {
		if b.Kind == document.Heading && b.Text() == HeadingSkills {
			lines = append(lines, doc.Blocks[i+1].Text(), doc.Blocks[i+2].Text())
			assert.True(t, doc.Blocks[i+1].Runs[0].Bold)
			assert.False(t, doc.Blocks[i+1].Runs[1].Bold)
		}
	}
	assert.Equal(t, []string{"• Languages: Python, Go", "• Cloud: AWS"}, lines)
}

func TestRender_ClientLineTabbedDuration(t *testing.T) {
	doc, err := Render(fullRecord(), types.StyleOptions{FontName: "Arial", FontSize: 10}, nil)
	require.NoError(t, err)

	var client document.Block
	for _, b := range doc.Blocks {
		if len(b.Runs) > 0 && b.Runs[0].Text == "Client: Acme" {
			client = b
		}
	}
	require.Len(t, client.Runs, 2)
	assert.Equal(t, 6.3, client.TabStop)

	dur := client.Runs[1]
	assert.True(t, dur.Tab)
	assert.True(t, dur.Bold)
	assert.Equal(t, "2020 - Present", dur.Text)
	assert.Equal(t, float64(9), dur.Size)
	assert.Equal(t, "Arial", dur.Font)
}

func TestRender_ExperienceWithoutOptionalParts(t *testing.T) {
	rec := &types.ResumeRecord{
		Name:       "Jane",
		Experience: []types.Job{{Role: "Dev", Company: "Acme"}},
	}
	doc, err := Render(rec, types.DefaultStyle(), nil)
	require.NoError(t, err)

	var texts []string
	for _, b := range doc.Blocks {
		texts = append(texts, b.Text())
	}
	assert.Equal(t, []string{"Jane", HeadingExperience, "Role: Dev", "Client: Acme"}, texts)
}

func TestEducationLine(t *testing.T) {
	tests := []struct {
		name string
		edu  *types.Education
		want string
	}{
		{"nil", nil, ""},
		{"full", &types.Education{Degree: "BSc", Field: "CS", Institution: "MIT", Year: "2015"}, "BSc, CS, at MIT, (2015)"},
		{"degree and year", &types.Education{Degree: "MBA", Year: "2020"}, "MBA, (2020)"},
		{"institution only", &types.Education{Institution: "Stanford"}, "at Stanford"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EducationLine(tt.edu))
		})
	}
}

func TestRender_EmptyEducationSkipped(t *testing.T) {
	rec := &types.ResumeRecord{Name: "Jane", Education: &types.Education{}}
	doc, err := Render(rec, types.DefaultStyle(), nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Headings())
}

func TestRender_EveryRunStyledExplicitly(t *testing.T) {
	doc, err := Render(fullRecord(), types.StyleOptions{FontName: "Georgia", FontSize: 12}, []string{"Python"})
	require.NoError(t, err)
	for _, b := range doc.Blocks {
		for _, r := range b.Runs {
			assert.Equal(t, "Georgia", r.Font)
			assert.NotZero(t, r.Size)
		}
	}
}

func TestRender_NullFieldsSkipSections(t *testing.T) {
	var rec types.ResumeRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Jane",
		"title": null,
		"contact": {"email": "a@b.com", "phone": null},
		"professional_summary": null,
		"technical_skills": null,
		"experience": [{"role": "Dev", "company": "Acme", "duration": null, "responsibilities": null}],
		"education": null,
		"certifications": null
	}`), &rec))

	doc, err := Render(&rec, types.DefaultStyle(), []string{"Dev"})
	require.NoError(t, err)

	assert.Equal(t, []string{HeadingExperience}, doc.Headings())
	assert.Equal(t, 1, doc.CountKind(document.HyperlinkLine))
	assert.Zero(t, doc.CountKind(document.Bullet))

	var texts []string
	for _, b := range doc.Blocks {
		texts = append(texts, b.Text())
	}
	assert.Equal(t, []string{"Jane", "a@b.com", HeadingExperience, "Role: Dev", "Client: Acme"}, texts)
}
