package models

type Testimonial struct {
	Base
	Ordered
	Quote       string `json:"quote" db:"quote" gorm:"type:text;not null"`
	AuthorName  string `json:"author_name" db:"author_name" gorm:"type:text;not null"`
	AuthorTitle string `json:"author_title" db:"author_title" gorm:"type:text"`
	Company     string `json:"company" db:"company" gorm:"type:text"`
	Industry    string `json:"industry" db:"industry" gorm:"type:text;not null"`
	Rating      int    `json:"rating" db:"rating" gorm:"not null;default:5"`
}

func (Testimonial) TableName() string { return "testimonials" }
