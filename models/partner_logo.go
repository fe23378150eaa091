package models

var PartnerCategories = []string{"client", "partner", "certification", "association"}

type PartnerLogo struct {
	Base
	Ordered
	Name       string `json:"name" db:"name" gorm:"type:text;not null"`
	Category   string `json:"category" db:"category" gorm:"type:text;not null"`
	ImageURL   string `json:"image_url" db:"image_url" gorm:"type:text"`
	WebsiteURL string `json:"website_url" db:"website_url" gorm:"type:text"`
}

func (PartnerLogo) TableName() string { return "partner_logos" }

func (l *PartnerLogo) MediaURL() string       { return l.ImageURL }
func (l *PartnerLogo) SetMediaURL(url string) { l.ImageURL = url }
