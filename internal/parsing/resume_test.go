package parsing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-docgen/internal/schemas"
)

const fullResume = `{
  "name": "  Jane Doe ",
  "title": "Senior Data Engineer",
  "contact": {"portfolio": "https://jane.dev", "email": "jane@example.com"},
  "phone": "555-0100",
  "professional_summary": ["Built Spark pipelines", "Led a team"],
  "technical_skills": {"Languages": ["Python", "Go"], "Cloud": ["AWS", "GCP"]},
  "experience": [
    {"role": "Data Engineer", "company": "Acme", "duration": "2020 - Present",
     "project_overview": "Lakehouse migration", "responsibilities": ["Wrote ETL"], "environment": ["Spark", "Airflow"]}
  ],
  "education": {"degree": "BSc", "field": "Computer Science", "institution": "State University", "year": 2014},
  "certifications": ["AWS Certified Data Engineer"]
}`

func TestParseResume_Full(t *testing.T) {
	record, err := ParseResume([]byte(fullResume))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "Senior Data Engineer", record.Title)
	assert.Equal(t, "https://jane.dev", record.Contact.Portfolio)
	assert.Equal(t, "555-0100", record.Phone)
	assert.Len(t, record.ProfessionalSummary, 2)
	require.Len(t, record.TechnicalSkills, 2)
	assert.Equal(t, "Languages", record.TechnicalSkills[0].Category)
	require.Len(t, record.Experience, 1)
	assert.Equal(t, "2020 - Present", record.Experience[0].Duration)
	require.NotNil(t, record.Education)
	assert.Equal(t, "2014", string(record.Education.Year))
	assert.Equal(t, []string{"AWS Certified Data Engineer"}, record.Certifications)
}

func TestParseResume_NameOnly(t *testing.T) {
	record, err := ParseResume([]byte(`{"name":"Jane"}`))
	require.NoError(t, err)
	assert.Equal(t, "Jane", record.Name)
	assert.Empty(t, record.Experience)
	assert.Nil(t, record.Education)
}

func TestParseResume_Empty(t *testing.T) {
	_, err := ParseResume([]byte("   "))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "no resume JSON")
}

func TestParseResume_InvalidJSON(t *testing.T) {
	_, err := ParseResume([]byte(`{"name": "Jane",}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "invalid JSON format", vErr.Message)
	assert.NotNil(t, vErr.Cause)
}

func TestParseResume_MissingName(t *testing.T) {
	_, err := ParseResume([]byte(`{"title":"Engineer"}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	var schemaErr *schemas.ValidationError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestParseResume_ExperienceMissingRole(t *testing.T) {
	_, err := ParseResume([]byte(`{"name":"A","experience":[{"company":"Acme"}]}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestParseResumeFile_NotFound(t *testing.T) {
	_, err := ParseResumeFile(filepath.Join(t.TempDir(), "missing.json"))
	var fErr *FileReadError
	require.ErrorAs(t, err, &fErr)
	assert.True(t, os.IsNotExist(fErr.Cause))
}

func TestParseResumeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, []byte(fullResume), 0644))

	record, err := ParseResumeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", record.Name)
}

func TestPeekTitle(t *testing.T) {
	assert.Equal(t, "Senior Data Engineer", PeekTitle([]byte(`{"title":"  Senior Data Engineer "}`)))
	assert.Equal(t, "", PeekTitle([]byte(`{"name":"A"}`)))
	assert.Equal(t, "", PeekTitle([]byte(`{"title": 12}`)))
	// the rest of the document does not need to be valid
	assert.Equal(t, "Engineer", PeekTitle([]byte(`{"title":"Engineer", "experience": [`)))
}

func TestParseResume_NullOptionalFields(t *testing.T) {
	cases := map[string]string{
		"certifications":       `{"name":"A","certifications":null}`,
		"professional_summary": `{"name":"A","professional_summary":null}`,
		"technical_skills":     `{"name":"A","technical_skills":null}`,
		"duration":             `{"name":"A","experience":[{"role":"Dev","company":"Acme","duration":null,"responsibilities":null}]}`,
		"contact.phone":        `{"name":"A","contact":{"email":"a@b.com","phone":null}}`,
		"contact":              `{"name":"A","contact":null,"title":null,"email":null}`,
		"education":            `{"name":"A","education":{"degree":"BSc","year":null}}`,
		"experience":           `{"name":"A","experience":null,"education":null}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			record, err := ParseResume([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, "A", record.Name)
		})
	}
}

func TestParseResume_NullValuesDecodeAsEmpty(t *testing.T) {
	record, err := ParseResume([]byte(`{
		"name": "A",
		"title": null,
		"contact": {"email": "a@b.com", "phone": null},
		"professional_summary": null,
		"technical_skills": null,
		"experience": [{"role": "Dev", "company": "Acme", "duration": null}],
		"education": {"degree": "BSc", "year": null},
		"certifications": null
	}`))
	require.NoError(t, err)

	assert.Empty(t, record.Title)
	assert.Empty(t, record.Contact.Phone)
	assert.Equal(t, "a@b.com", record.Contact.Email)
	assert.Nil(t, record.ProfessionalSummary)
	assert.Nil(t, record.TechnicalSkills)
	require.Len(t, record.Experience, 1)
	assert.Empty(t, record.Experience[0].Duration)
	require.NotNil(t, record.Education)
	assert.Empty(t, string(record.Education.Year))
	assert.Nil(t, record.Certifications)
}

func TestParseResume_NullNameRejected(t *testing.T) {
	_, err := ParseResume([]byte(`{"name":null}`))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}
