package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is implemented by every admin-managed content row.
type Record interface {
	GetID() uuid.UUID
	IsPublished() bool
	GetUpdatedAt() time.Time
}

// MediaRecord is a Record that references one object in the file store.
type MediaRecord interface {
	Record
	MediaURL() string
	SetMediaURL(url string)
}

// SlugRecord is a Record carrying a unique, URL-safe identifier derived from
// one of its text fields when left blank.
type SlugRecord interface {
	Record
	SlugSource() string
	GetSlug() string
	SetSlug(slug string)
}

// Base holds the columns shared by every content table.
type Base struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Published bool      `json:"published" db:"published" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}

// BeforeCreate assigns the id on the application side so SQLite and Postgres
// behave the same.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b Base) GetID() uuid.UUID        { return b.ID }
func (b Base) IsPublished() bool       { return b.Published }
func (b Base) GetUpdatedAt() time.Time { return b.UpdatedAt }

// Ordered is embedded by tables sorted explicitly on the public site.
type Ordered struct {
	DisplayOrder int `json:"display_order" db:"display_order" gorm:"not null;default:0;index"`
}

// Now is the clock used for created_at/updated_at. Postgres keeps microseconds,
// so values are truncated to that precision to make them comparable after a
// round trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
