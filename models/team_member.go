package models

var Departments = []string{"leadership", "operations", "preconstruction", "field", "business-development"}

type TeamMember struct {
	Base
	Ordered
	Name        string `json:"name" db:"name" gorm:"type:text;not null"`
	Title       string `json:"title" db:"title" gorm:"type:text;not null"`
	Department  string `json:"department" db:"department" gorm:"type:text;not null"`
	Bio         string `json:"bio" db:"bio" gorm:"type:text"`
	HeadshotURL string `json:"headshot_url" db:"headshot_url" gorm:"type:text"`
	Email       string `json:"email" db:"email" gorm:"type:text"`
	LinkedInURL string `json:"linkedin_url" db:"linkedin_url" gorm:"column:linkedin_url;type:text"`
	// AnchorID is the fragment used to deep-link a bio on the team page.
	AnchorID string `json:"anchor_id" db:"anchor_id" gorm:"type:text;not null;uniqueIndex:idx_team_members_anchor_id"`
}

func (TeamMember) TableName() string { return "team_members" }

func (m *TeamMember) MediaURL() string       { return m.HeadshotURL }
func (m *TeamMember) SetMediaURL(url string) { m.HeadshotURL = url }
func (m *TeamMember) SlugSource() string     { return m.Name }
func (m *TeamMember) GetSlug() string        { return m.AnchorID }
func (m *TeamMember) SetSlug(slug string)    { m.AnchorID = slug }
