package database

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// FindByEmail looks up a user case-insensitively
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return errs.NewDatabaseError("create", "user", err)
	}
	return nil
}

// Role returns the role assigned to the user, or "" when none is.
func (r *UserRepo) Role(ctx context.Context, userID uuid.UUID) (string, error) {
	var role models.UserRole
	err := r.db.WithContext(ctx).First(&role, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errs.NewDatabaseError("find", "user role", err)
	}
	return role.Role, nil
}

// SetRole assigns role to the user, replacing any previous one.
func (r *UserRepo) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(&models.UserRole{UserID: userID, Role: role}).Error
	if err != nil {
		return errs.NewDatabaseError("set", "user role", err)
	}
	return nil
}

// UpdatePassword replaces the stored hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password_hash", hash)
	if res.Error != nil {
		return errs.NewDatabaseError("update", "user", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("user")
	}
	return nil
}
