package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillCategories_PreservesOrder(t *testing.T) {
	raw := `{"Languages":["Go","Python"],"Cloud":["AWS"],"Databases":["Postgres","Redis"]}`

	var sc SkillCategories
	require.NoError(t, json.Unmarshal([]byte(raw), &sc))

	require.Len(t, sc, 3)
	assert.Equal(t, "Languages", sc[0].Category)
	assert.Equal(t, "Cloud", sc[1].Category)
	assert.Equal(t, "Databases", sc[2].Category)
	assert.Equal(t, []string{"Postgres", "Redis"}, sc[2].Skills)
}

func TestSkillCategories_MarshalKeepsOrder(t *testing.T) {
	sc := SkillCategories{
		{Category: "Zeta", Skills: []string{"a"}},
		{Category: "Alpha", Skills: nil},
	}
	out, err := json.Marshal(sc)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":["a"],"Alpha":[]}`, string(out))
}

func TestSkillCategories_RejectsArray(t *testing.T) {
	var sc SkillCategories
	err := json.Unmarshal([]byte(`["Go"]`), &sc)
	assert.Error(t, err)
}

func TestEducation_YearAsNumber(t *testing.T) {
	var r ResumeRecord
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","education":{"degree":"BSc","year":2015}}`), &r))
	require.NotNil(t, r.Education)
	assert.Equal(t, FlexString("2015"), r.Education.Year)
}

func TestEducation_NonObjectIgnored(t *testing.T) {
	var r ResumeRecord
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","education":"BSc Computer Science"}`), &r))
	assert.True(t, r.Education.IsEmpty())
}

func TestContactLine_Order(t *testing.T) {
	r := ResumeRecord{
		Contact: Contact{
			Phone:     "555-0100",
			Email:     "a@b.com",
			LinkedIn:  "https://linkedin.com/in/a",
			Portfolio: "https://a.dev",
		},
	}

	entries := r.ContactLine()
	require.Len(t, entries, 4)
	assert.Equal(t, ContactEntry{Kind: ContactPortfolio, Label: "Portfolio", Target: "https://a.dev"}, entries[0])
	assert.Equal(t, ContactEntry{Kind: ContactLinkedIn, Label: "LinkedIn", Target: "https://linkedin.com/in/a"}, entries[1])
	assert.Equal(t, ContactEntry{Kind: ContactEmail, Label: "a@b.com", Target: "mailto:a@b.com"}, entries[2])
	assert.Equal(t, ContactEntry{Kind: ContactPhone, Label: "555-0100", Target: "tel:555-0100"}, entries[3])
}

func TestContactLine_LegacyDeduplicatedByValue(t *testing.T) {
	r := ResumeRecord{
		Contact: Contact{Email: "a@b.com"},
		Email:   "a@b.com",
		Phone:   "555-0100",
	}

	entries := r.ContactLine()
	require.Len(t, entries, 2)
	assert.Equal(t, "a@b.com", entries[0].Label)
	assert.Equal(t, "tel:555-0100", entries[1].Target)
}

func TestContactLine_LegacyOnly(t *testing.T) {
	r := ResumeRecord{Portfolio: "https://a.dev", LinkedIn: "https://linkedin.com/in/a"}

	entries := r.ContactLine()
	require.Len(t, entries, 2)
	assert.Equal(t, "Portfolio", entries[0].Label)
	assert.Equal(t, "LinkedIn", entries[1].Label)
}

func TestContactLine_Empty(t *testing.T) {
	r := ResumeRecord{Name: "A"}
	assert.Empty(t, r.ContactLine())
}
