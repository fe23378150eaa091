package models

var SocialPlatforms = []string{"linkedin", "facebook", "instagram", "x", "youtube"}

type SocialLink struct {
	Base
	Ordered
	Platform string `json:"platform" db:"platform" gorm:"type:text;not null"`
	URL      string `json:"url" db:"url" gorm:"type:text;not null"`
	Label    string `json:"label" db:"label" gorm:"type:text"`
}

func (SocialLink) TableName() string { return "social_links" }
