package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type ProjectImageRepo struct {
	db *gorm.DB
}

func NewProjectImageRepo(db *gorm.DB) *ProjectImageRepo {
	return &ProjectImageRepo{db: db}
}

// WithTx returns a copy of the repo bound to tx.
func (r *ProjectImageRepo) WithTx(tx *gorm.DB) *ProjectImageRepo {
	return &ProjectImageRepo{db: tx}
}

// ListByProject returns a project's images in gallery order
func (r *ProjectImageRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.ProjectImage, error) {
	var images []models.ProjectImage
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("display_order ASC, created_at ASC").
		Find(&images).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "project image", err)
	}
	return images, nil
}

func (r *ProjectImageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ProjectImage, error) {
	var image models.ProjectImage
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).First(&image, "id = ?", id).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project image", err)
	}
	return &image, nil
}

// NextDisplayOrder returns one past the highest display_order of the project.
func (r *ProjectImageRepo) NextDisplayOrder(ctx context.Context, projectID uuid.UUID) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(&models.ProjectImage{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(display_order), -1) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, errs.NewDatabaseError("find", "project image", err)
	}
	return next, nil
}

func (r *ProjectImageRepo) Create(ctx context.Context, image *models.ProjectImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return errs.NewDatabaseError("create", "project image", err)
	}
	return nil
}

func (r *ProjectImageRepo) UpdateCaption(ctx context.Context, id uuid.UUID, caption string) error {
	res := r.db.WithContext(ctx).Model(&models.ProjectImage{}).Where("id = ?", id).Update("caption", caption)
	if res.Error != nil {
		return errs.NewDatabaseError("update", "project image", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("project image")
	}
	return nil
}

// Reorder rewrites display_order to match the position of each id in
// orderedIDs. Every id must belong to the project; the whole rewrite happens
// in one transaction.
func (r *ProjectImageRepo) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := tx.Model(&models.ProjectImage{}).
				Where("id = ? AND project_id = ?", id, projectID).
				Update("display_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errs.NewNotFound("project image")
			}
		}
		return nil
	})
	if err != nil {
		return errs.NewDatabaseError("reorder", "project image", err)
	}
	return nil
}

func (r *ProjectImageRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.ProjectImage{}, "id = ?", id)
	if res.Error != nil {
		return false, errs.NewDatabaseError("delete", "project image", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteByProject removes every image row of a project.
func (r *ProjectImageRepo) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.ProjectImage{}).Error; err != nil {
		return errs.NewDatabaseError("delete", "project image", err)
	}
	return nil
}
