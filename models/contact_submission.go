package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactSubmission is a message left through the public contact form
type ContactSubmission struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string     `json:"name" db:"name" gorm:"type:text;not null"`
	Email       string     `json:"email" db:"email" gorm:"type:text;not null"`
	Phone       string     `json:"phone" db:"phone" gorm:"type:text"`
	Company     string     `json:"company" db:"company" gorm:"type:text"`
	ProjectType string     `json:"project_type" db:"project_type" gorm:"type:text"`
	Message     string     `json:"message" db:"message" gorm:"type:text;not null"`
	NotifiedAt  *time.Time `json:"notified_at,omitempty" db:"notified_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"not null"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c ContactSubmission) GetID() uuid.UUID { return c.ID }
