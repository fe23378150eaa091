package models

import "gorm.io/datatypes"

// CaseStudy is a long-form challenge/solution/results write-up of a project
type CaseStudy struct {
	Base
	Ordered
	Title     string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug      string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_case_studies_slug"`
	Client    string                      `json:"client" db:"client" gorm:"type:text"`
	Industry  string                      `json:"industry" db:"industry" gorm:"type:text;not null"`
	Challenge string                      `json:"challenge" db:"challenge" gorm:"type:text;not null"`
	Solution  string                      `json:"solution" db:"solution" gorm:"type:text;not null"`
	Results   datatypes.JSONSlice[string] `json:"results" db:"results"`
	ImageURL  string                      `json:"image_url" db:"image_url" gorm:"type:text"`
}

func (CaseStudy) TableName() string { return "case_studies" }

func (c *CaseStudy) MediaURL() string       { return c.ImageURL }
func (c *CaseStudy) SetMediaURL(url string) { c.ImageURL = url }
func (c *CaseStudy) SlugSource() string     { return c.Title }
func (c *CaseStudy) GetSlug() string        { return c.Slug }
func (c *CaseStudy) SetSlug(slug string)    { c.Slug = slug }
