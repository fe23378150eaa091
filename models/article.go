package models

// ArticleCategories is the closed set of article categories.
var ArticleCategories = []string{"industry-insights", "project-spotlight", "company-news", "safety", "sustainability"}

// Article is a news/insights post on the public site
type Article struct {
	Base
	Title           string `json:"title" db:"title" gorm:"type:text;not null"`
	Slug            string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_articles_slug"`
	Excerpt         string `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	Content         string `json:"content" db:"content" gorm:"type:text;not null"`
	Category        string `json:"category" db:"category" gorm:"type:text;not null"`
	Author          string `json:"author" db:"author" gorm:"type:text"`
	ImageURL        string `json:"image_url" db:"image_url" gorm:"type:text"`
	ReadTimeMinutes int    `json:"read_time_minutes" db:"read_time_minutes" gorm:"not null;default:0"`
}

func (Article) TableName() string { return "articles" }

func (a *Article) MediaURL() string       { return a.ImageURL }
func (a *Article) SetMediaURL(url string) { a.ImageURL = url }
func (a *Article) SlugSource() string     { return a.Title }
func (a *Article) GetSlug() string        { return a.Slug }
func (a *Article) SetSlug(slug string)    { a.Slug = slug }
