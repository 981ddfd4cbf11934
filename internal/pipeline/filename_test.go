package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		title  string
		want   string
	}{
		{"punctuation removed", "Resume", "Senior Data Engineer!", "Resume_Senior_Data_Engineer"},
		{"default prefix", "", "Data Engineer", "Resume_Data_Engineer"},
		{"custom prefix", "Jane", "ML Engineer", "Jane_ML_Engineer"},
		{"whitespace runs", "Resume", "  Data \t  Engineer ", "Resume_Data_Engineer"},
		{"hyphen kept", "Resume", "Full-Stack Dev (Remote)", "Resume_Full-Stack_Dev_Remote"},
		{"slashes removed", "Resume", "C/C++ Engineer", "Resume_CC_Engineer"},
		{"unicode letters kept", "Resume", "Ingénieur Données", "Resume_Ingénieur_Données"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveFilename(tt.prefix, tt.title))
		})
	}
}

func TestResolveFilename(t *testing.T) {
	tests := []struct {
		name     string
		supplied string
		title    string
		want     string
	}{
		{"derived replaces unrelated", "my_resume", "Senior Data Engineer", "Resume_Senior_Data_Engineer"},
		{"supplied kept when it extends the title stem", "Resume_Senior_Data_Engineer_v2", "Senior Data Engineer", "Resume_Senior_Data_Engineer_v2"},
		{"stem compared against the raw title", "Resume_Senior_Data_Engineer_v2", "Senior Data Engineer!", "Resume_Senior_Data_Engineer"},
		{"empty supplied derives", "", "Data Engineer", "Resume_Data_Engineer"},
		{"no title keeps supplied", "custom_name", "", "custom_name"},
		{"no title no supplied falls back", "", "", "Fallback_Name"},
		{"extension stripped", "custom_name.docx", "", "custom_name"},
		{"directories stripped", "../../etc/custom.pdf", "", "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFilename(tt.supplied, "Resume", tt.title, "Fallback_Name"))
		})
	}
}

func TestResolveFilename_DefaultFallback(t *testing.T) {
	assert.Equal(t, "Resume_Resume", ResolveFilename("", "", "", ""))
	assert.Equal(t, "Jane_Resume", ResolveFilename("  ", "Jane", "  ", ""))
}
