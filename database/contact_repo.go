package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) Create(ctx context.Context, submission *models.ContactSubmission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return errs.NewDatabaseError("create", "contact submission", err)
	}
	return nil
}

// List returns submissions newest first.
func (r *ContactRepo) List(ctx context.Context, limit int) ([]models.ContactSubmission, error) {
	var submissions []models.ContactSubmission
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&submissions).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "contact submission", err)
	}
	return submissions, nil
}

// MarkNotified records when the staff notification went out.
func (r *ContactRepo) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.ContactSubmission{}).Where("id = ?", id).Update("notified_at", at).Error
	if err != nil {
		return errs.NewDatabaseError("update", "contact submission", err)
	}
	return nil
}
