package models

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFindColumnMismatches(t *testing.T) {
	got := findColumnMismatches(
		[]string{"id", "title", "legacy_slug", "Published"},
		[]string{"id", "title", "published"},
	)
	assert.Equal(t, []string{"legacy_slug"}, got)
}

func TestWriteColumnMismatchReport(t *testing.T) {
	var buf bytes.Buffer
	WriteColumnMismatchReport(&buf, map[string][]string{
		"projects": {"legacy_slug"},
		"articles": {},
	})

	out := buf.String()
	assert.Contains(t, out, "--- Table: articles ---\nAll columns are accounted for in the model.")
	assert.Contains(t, out, "  - legacy_slug")
	assert.Contains(t, out, "Total mismatched columns across all tables: 1")
}

func TestBaseAssignsID(t *testing.T) {
	p := &Project{}
	assert.NoError(t, p.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, p.ID)

	id := p.ID
	assert.NoError(t, p.BeforeCreate(nil))
	assert.Equal(t, id, p.ID, "an existing id is kept")
}

func TestMediaAccessors(t *testing.T) {
	var records []MediaRecord = []MediaRecord{&Article{}, &Project{}, &CaseStudy{}, &Resource{}, &TeamMember{}, &PartnerLogo{}}
	for _, r := range records {
		r.SetMediaURL("https://cdn.example.com/x.png")
		assert.Equal(t, "https://cdn.example.com/x.png", r.MediaURL())
	}
}

func TestNowIsMicrosecondUTC(t *testing.T) {
	now := Now()
	assert.Equal(t, 0, now.Nanosecond()%1000)
	assert.Equal(t, "UTC", now.Location().String())
}
