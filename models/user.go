package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RoleAdmin = "admin"

// User is an account able to sign in. Roles live in a side table.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"not null"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserRole maps a user identity to its role string.
type UserRole struct {
	UserID uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;primaryKey;not null"`
	Role   string    `json:"role" db:"role" gorm:"type:text;not null"`
}

func (UserRole) TableName() string { return "user_roles" }
