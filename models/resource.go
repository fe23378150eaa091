package models

var ResourceTypes = []string{"guide", "checklist", "whitepaper", "brochure", "capability-statement"}

// Resource is a downloadable document (PDF) offered on the resources page
type Resource struct {
	Base
	Title       string `json:"title" db:"title" gorm:"type:text;not null"`
	Description string `json:"description" db:"description" gorm:"type:text;not null"`
	Type        string `json:"type" db:"type" gorm:"type:text;not null"`
	FileURL     string `json:"file_url" db:"file_url" gorm:"type:text"`
}

func (Resource) TableName() string { return "resources" }

func (r *Resource) MediaURL() string       { return r.FileURL }
func (r *Resource) SetMediaURL(url string) { r.FileURL = url }
