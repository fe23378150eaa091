package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// Repo is the table access shared by every content resource type.
type Repo[T models.Record] struct {
	db     *gorm.DB
	entity string
	newT   func() T
}

func NewRepo[T models.Record](db *gorm.DB, entity string, newT func() T) *Repo[T] {
	return &Repo[T]{db: db, entity: entity, newT: newT}
}

// New returns an empty row of the repo's type.
func (r *Repo[T]) New() T {
	return r.newT()
}

// WithTx returns a copy of the repo bound to tx.
func (r *Repo[T]) WithTx(tx *gorm.DB) *Repo[T] {
	return &Repo[T]{db: tx, entity: r.entity, newT: r.newT}
}

// Transaction runs fn inside a transaction on the primary.
func (r *Repo[T]) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Clauses(dbresolver.Write).Transaction(fn)
}

// ListAll returns every row, drafts included, in the given order
func (r *Repo[T]) ListAll(ctx context.Context, order string) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).Order(order).Find(&rows).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", r.entity, err)
	}
	return rows, nil
}

// ListPublished returns only rows flagged published, in the given order
func (r *Repo[T]) ListPublished(ctx context.Context, order string) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).Where("published = ?", true).Order(order).Find(&rows).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list published", r.entity, err)
	}
	return rows, nil
}

// FindByID reads from the primary so a read that follows a write sees it.
func (r *Repo[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	row := r.newT()
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).First(row, "id = ?", id).Error
	if err != nil {
		var zero T
		return zero, errs.NewDatabaseError("find", r.entity, err)
	}
	return row, nil
}

// Create inserts a new row; the id and timestamps are filled in on row
func (r *Repo[T]) Create(ctx context.Context, row T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return errs.NewDatabaseError("create", r.entity, err)
	}
	return nil
}

// Update overwrites every column of row, but only if the stored updated_at
// still equals expected. A row changed by another session in between yields
// errs.ErrStaleWrite instead of being silently overwritten.
func (r *Repo[T]) Update(ctx context.Context, row T, expected time.Time) error {
	res := r.db.WithContext(ctx).
		Model(row).
		Where("updated_at = ?", expected.UTC()).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(row)
	if res.Error != nil {
		return errs.NewDatabaseError("update", r.entity, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	exists, err := r.Exists(ctx, row.GetID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewNotFound(r.entity)
	}
	return errs.NewStaleWriteError(r.entity)
}

// Exists reports whether a row with id is stored.
func (r *Repo[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Model(r.newT()).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errs.NewDatabaseError("find", r.entity, err)
	}
	return count > 0, nil
}

// Delete removes a row by id. Deleting an id that is not stored is not an
// error; the returned bool tells whether anything was removed.
func (r *Repo[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(r.newT(), "id = ?", id)
	if res.Error != nil {
		return false, errs.NewDatabaseError("delete", r.entity, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SlugsLike returns the slug column values starting with base, used to pick a
// free suffix before insert.
func (r *Repo[T]) SlugsLike(ctx context.Context, column, base string) ([]string, error) {
	var taken []string
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Model(r.newT()).
		Where(column+" = ? OR "+column+" LIKE ?", base, base+"-%").
		Pluck(column, &taken).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list slugs", r.entity, err)
	}
	return taken, nil
}
