package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Industries is shared by projects, case studies and testimonials.
var Industries = []string{"healthcare", "commercial", "retail", "industrial", "education", "hospitality", "multifamily"}

// Project represents a completed or ongoing build shown in the portfolio
type Project struct {
	Base
	Ordered
	Title          string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description    string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Location       string                      `json:"location" db:"location" gorm:"type:text"`
	Industry       string                      `json:"industry" db:"industry" gorm:"type:text;not null;index"`
	ClientName     string                      `json:"client_name" db:"client_name" gorm:"type:text"`
	SquareFootage  int                         `json:"square_footage" db:"square_footage" gorm:"not null;default:0"`
	CompletionYear int                         `json:"completion_year" db:"completion_year" gorm:"not null;default:0"`
	Services       datatypes.JSONSlice[string] `json:"services" db:"services"`
	ImageURL       string                      `json:"image_url" db:"image_url" gorm:"type:text"`
	Featured       bool                        `json:"featured" db:"featured" gorm:"not null;default:false"`
	Images         []ProjectImage              `json:"images,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) MediaURL() string       { return p.ImageURL }
func (p *Project) SetMediaURL(url string) { p.ImageURL = url }

// ProjectImage is one picture of a project's gallery. Rows are not removed by
// a database cascade; deleting a project deletes its images explicitly so the
// stored files can be cleaned up too.
type ProjectImage struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_images_project_id"`
	ImageURL  string    `json:"image_url" db:"image_url" gorm:"type:text;not null"`
	Caption   string    `json:"caption" db:"caption" gorm:"type:text"`
	Ordered
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}

func (ProjectImage) TableName() string { return "project_images" }

func (i *ProjectImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
