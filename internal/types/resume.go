// Package types provides type definitions for structured data used throughout the resume-docgen system.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ResumeRecord is the typed form of the input resume JSON.
// Only Name is required; every other field may be absent.
type ResumeRecord struct {
	Name    string  `json:"name"`
	Title   string  `json:"title,omitempty"`
	Contact Contact `json:"contact,omitempty"`

	// Legacy top-level contact fields, merged after Contact
	Portfolio string `json:"portfolio,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	ProfessionalSummary []string        `json:"professional_summary,omitempty"`
	TechnicalSkills     SkillCategories `json:"technical_skills,omitempty"`
	Experience          []Job           `json:"experience,omitempty"`
	Education           *Education      `json:"education,omitempty"`
	Certifications      []string        `json:"certifications,omitempty"`
}

// Contact holds the structured contact block.
type Contact struct {
	Portfolio string `json:"portfolio,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Job is a single experience entry.
type Job struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration,omitempty"`
	ProjectOverview  string   `json:"project_overview,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Environment      []string `json:"environment,omitempty"`
}

// Education is a single education record. Year accepts a JSON string or number.
type Education struct {
	Degree      string     `json:"degree,omitempty"`
	Field       string     `json:"field,omitempty"`
	Institution string     `json:"institution,omitempty"`
	Year        FlexString `json:"year,omitempty"`
}

// IsEmpty reports whether no education field carries a value.
func (e *Education) IsEmpty() bool {
	if e == nil {
		return true
	}
	return strings.TrimSpace(e.Degree) == "" &&
		strings.TrimSpace(e.Field) == "" &&
		strings.TrimSpace(e.Institution) == "" &&
		strings.TrimSpace(string(e.Year)) == ""
}

// UnmarshalJSON ignores non-object education values instead of failing the record.
func (e *Education) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*e = Education{}
		return nil
	}
	type plain Education
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*e = Education(p)
	return nil
}

// FlexString decodes from either a JSON string or a JSON number.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(trimmed))
	}
	*s = FlexString(num.String())
	return nil
}

// SkillCategory is one labelled group of skills.
type SkillCategory struct {
	Category string
	Skills   []string
}

// SkillCategories keeps technical skills in the order they appear in the source JSON.
type SkillCategories []SkillCategory

// UnmarshalJSON walks the object token by token so that insertion order is kept.
func (sc *SkillCategories) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*sc = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("technical_skills must be an object")
	}

	var out SkillCategories
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("technical_skills: unexpected key %v", keyTok)
		}
		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("technical_skills[%q]: %w", key, err)
		}
		out = append(out, SkillCategory{Category: key, Skills: skills})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*sc = out
	return nil
}

// MarshalJSON writes the categories back as an object in order.
func (sc SkillCategories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range sc {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Category)
		if err != nil {
			return nil, err
		}
		skills := cat.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ContactKind identifies the type of a contact entry.
type ContactKind string

const (
	ContactPortfolio ContactKind = "portfolio"
	ContactLinkedIn  ContactKind = "linkedin"
	ContactEmail     ContactKind = "email"
	ContactPhone     ContactKind = "phone"
)

// ContactEntry is one clickable item of the header contact line.
type ContactEntry struct {
	Kind   ContactKind
	Label  string
	Target string
}

func newContactEntry(kind ContactKind, value string) ContactEntry {
	switch kind {
	case ContactPortfolio:
		return ContactEntry{Kind: kind, Label: "Portfolio", Target: value}
	case ContactLinkedIn:
		return ContactEntry{Kind: kind, Label: "LinkedIn", Target: value}
	case ContactEmail:
		return ContactEntry{Kind: kind, Label: value, Target: "mailto:" + value}
	default:
		return ContactEntry{Kind: kind, Label: value, Target: "tel:" + value}
	}
}

// ContactLine returns the header contact entries in display order:
// portfolio, linkedin, email, phone from Contact, then the legacy top-level
// fields in the same order when their value is not already present.
func (r *ResumeRecord) ContactLine() []ContactEntry {
	var entries []ContactEntry
	seen := make(map[string]bool)

	add := func(kind ContactKind, value string, legacy bool) {
		value = strings.TrimSpace(value)
		if value == "" || (legacy && seen[value]) {
			return
		}
		seen[value] = true
		entries = append(entries, newContactEntry(kind, value))
	}

	add(ContactPortfolio, r.Contact.Portfolio, false)
	add(ContactLinkedIn, r.Contact.LinkedIn, false)
	add(ContactEmail, r.Contact.Email, false)
	add(ContactPhone, r.Contact.Phone, false)

	add(ContactPortfolio, r.Portfolio, true)
	add(ContactLinkedIn, r.LinkedIn, true)
	add(ContactEmail, r.Email, true)
	add(ContactPhone, r.Phone, true)

	return entries
}
