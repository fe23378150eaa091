// Package content implements the query and mutation layer shared by every
// admin-managed resource type.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rpupo63/construction-site-backend/cache"
	"github.com/rpupo63/construction-site-backend/database"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rpupo63/construction-site-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Input is the tagged input struct of resource T.
type Input[T models.Record] interface {
	Apply(T)
	Load(T)
}

// Definition describes one resource type.
type Definition[T models.Record, I Input[T]] struct {
	Name     string
	Label    string
	Singular string
	// Order is the natural order of both list variants.
	Order string
	// Media is nil for resource types without a file field.
	Media *storage.Destination
	// SlugColumn names the unique identifier column filled from the
	// record's text when left blank; "" when the type has none.
	SlugColumn string
	NewInput   func() I
}

// Deps are the collaborators shared by every Service.
type Deps struct {
	Cache    cache.Cache
	TTL      time.Duration
	Files    *storage.Files
	Notifier *cache.Notifier
}

// cascade removes the rows owned by a record inside the delete transaction;
// childMedia lists the files those rows reference.
type cascade struct {
	rows       func(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	childMedia func(ctx context.Context, id uuid.UUID) ([]string, error)
}

type Service[T models.Record, I Input[T]] struct {
	def     Definition[T, I]
	repo    *database.Repo[T]
	deps    Deps
	cascade *cascade
	logger  zerolog.Logger
}

func NewService[T models.Record, I Input[T]](def Definition[T, I], repo *database.Repo[T], deps Deps) *Service[T, I] {
	if deps.TTL <= 0 {
		deps.TTL = cache.DefaultTTL
	}
	return &Service[T, I]{
		def:    def,
		repo:   repo,
		deps:   deps,
		logger: log.With().Str("service", def.Name).Logger(),
	}
}

func (s *Service[T, I]) Definition() Definition[T, I] {
	return s.def
}

// NewInput returns an empty input struct for this resource type.
func (s *Service[T, I]) NewInput() I {
	return s.def.NewInput()
}

// InputFor returns an input struct holding row's current values.
func (s *Service[T, I]) InputFor(row T) I {
	in := s.def.NewInput()
	in.Load(row)
	return in
}

// ListAdmin returns every row, drafts included, in natural order.
func (s *Service[T, I]) ListAdmin(ctx context.Context) ([]T, error) {
	return s.cached(ctx, cache.Admin, s.repo.ListAll)
}

// ListPublic returns only published rows, in the same order as ListAdmin.
func (s *Service[T, I]) ListPublic(ctx context.Context) ([]T, error) {
	return s.cached(ctx, cache.Public, s.repo.ListPublished)
}

func (s *Service[T, I]) cached(ctx context.Context, audience cache.Audience, fetch func(context.Context, string) ([]T, error)) ([]T, error) {
	key := cache.Key(s.def.Name, audience)

	data, err := s.deps.Cache.Get(ctx, key)
	switch {
	case err == nil:
		var rows []T
		if err := json.Unmarshal(data, &rows); err == nil {
			return rows, nil
		}
		s.logger.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	case !errors.Is(err, cache.ErrCacheMiss):
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, querying database")
	}

	rows, err := fetch(ctx, s.def.Order)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}

	if data, err := json.Marshal(rows); err == nil {
		if err := s.deps.Cache.Set(ctx, key, data, s.deps.TTL); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}
	return rows, nil
}

// Get returns one row by id, published or not.
func (s *Service[T, I]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return s.repo.FindByID(ctx, id)
}

// GetPublic returns one row by id, reporting drafts as not found.
func (s *Service[T, I]) GetPublic(ctx context.Context, id uuid.UUID) (T, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return row, err
	}
	if !row.IsPublished() {
		var zero T
		return zero, errs.NewNotFound(s.def.Singular)
	}
	return row, nil
}

// Create validates input, stores the optional file and inserts the row.
func (s *Service[T, I]) Create(ctx context.Context, input I, file *storage.FileUpload) (T, error) {
	var zero T
	if err := s.validate(input); err != nil {
		return zero, err
	}

	row := s.repo.New()
	input.Apply(row)

	uploaded, err := s.upload(ctx, row, file)
	if err != nil {
		return zero, err
	}
	if err := s.fillSlug(ctx, row, ""); err != nil {
		s.discard(ctx, uploaded)
		return zero, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.discard(ctx, uploaded)
		return zero, err
	}

	s.logger.Info().Str("id", row.GetID().String()).Msg("Record created")
	s.changed(ctx, "create")
	return row, nil
}

// Update replaces the row's editable fields with input. expected must be the
// updated_at the caller loaded; a row changed since then is not overwritten.
// When the file changes, the previous file is removed once the row is saved.
func (s *Service[T, I]) Update(ctx context.Context, id uuid.UUID, input I, expected *time.Time, file *storage.FileUpload) (T, error) {
	var zero T
	if expected == nil || expected.IsZero() {
		return zero, errs.NewPreconditionRequiredError(s.def.Singular)
	}
	if err := s.validate(input); err != nil {
		return zero, err
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	oldURL := mediaURL(row)
	oldSlug := slugOf(row)

	input.Apply(row)
	uploaded, err := s.upload(ctx, row, file)
	if err != nil {
		return zero, err
	}
	if err := s.fillSlug(ctx, row, oldSlug); err != nil {
		s.discard(ctx, uploaded)
		return zero, err
	}

	if err := s.repo.Update(ctx, row, *expected); err != nil {
		s.discard(ctx, uploaded)
		return zero, err
	}

	if newURL := mediaURL(row); oldURL != "" && oldURL != newURL {
		s.discard(ctx, oldURL)
	}

	s.logger.Info().Str("id", id.String()).Msg("Record updated")
	s.changed(ctx, "update")
	return row, nil
}

// Delete removes the row and its stored file. Deleting an id that does not
// exist succeeds without doing anything.
func (s *Service[T, I]) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindByID(ctx, id)
	if errs.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	// Stored files are removed before the row. Removal is best effort: a
	// file that fails to delete stays behind for the orphan sweep.
	urls := []string{mediaURL(row)}
	if s.cascade != nil {
		children, err := s.cascade.childMedia(ctx, id)
		if err != nil {
			return err
		}
		urls = append(urls, children...)
	}
	for _, u := range urls {
		s.discard(ctx, u)
	}

	if s.cascade == nil {
		if _, err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
	} else {
		err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
			if err := s.cascade.rows(ctx, tx, id); err != nil {
				return err
			}
			_, err := s.repo.WithTx(tx).Delete(ctx, id)
			return err
		})
		if err != nil {
			return errs.NewTransactionFailedError("delete "+s.def.Singular, err)
		}
	}

	s.logger.Info().Str("id", id.String()).Msg("Record deleted")
	s.changed(ctx, "delete")
	return nil
}

func (s *Service[T, I]) validate(input I) error {
	res, err := validation.Validate(s.def.Name, any(input))
	if err != nil {
		return err
	}
	return res.Err()
}

// upload stores file and points row at it. It returns the new URL so a
// failed write can discard it again.
func (s *Service[T, I]) upload(ctx context.Context, row T, file *storage.FileUpload) (string, error) {
	if file == nil {
		return "", nil
	}
	media, ok := any(row).(models.MediaRecord)
	if !ok || s.def.Media == nil {
		return "", errs.NewBadRequestErrorWithField(fmt.Sprintf("%s records do not take a file", s.def.Singular), "file")
	}
	url, err := s.deps.Files.Upload(ctx, *file, *s.def.Media)
	if err != nil {
		return "", err
	}
	media.SetMediaURL(url)
	return url, nil
}

// discard removes a stored file without failing the caller.
func (s *Service[T, I]) discard(ctx context.Context, url string) {
	if url == "" || s.deps.Files == nil {
		return
	}
	if err := s.deps.Files.Remove(ctx, url); err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("Failed to remove stored file")
	}
}

// fillSlug derives a free slug from the record's text when none was given.
// current is the slug the row had before this write; it counts as free.
func (s *Service[T, I]) fillSlug(ctx context.Context, row T, current string) error {
	rec, ok := any(row).(models.SlugRecord)
	if !ok || s.def.SlugColumn == "" || rec.GetSlug() != "" {
		return nil
	}
	base := slug.Make(rec.SlugSource())
	if base == "" {
		base = "item"
	}
	taken, err := s.repo.SlugsLike(ctx, s.def.SlugColumn, base)
	if err != nil {
		return err
	}
	rec.SetSlug(freeSlug(base, taken, current))
	return nil
}

func freeSlug(base string, taken []string, current string) string {
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		if t != current {
			used[t] = true
		}
	}
	if !used[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !used[candidate] {
			return candidate
		}
	}
}

// changed drops both cached lists and tells other instances to do the same.
// Failures are logged only.
func (s *Service[T, I]) changed(ctx context.Context, action string) {
	if err := s.deps.Cache.Invalidate(ctx, cache.Keys(s.def.Name)...); err != nil {
		s.logger.Error().Err(err).Msg("Failed to invalidate cache")
	}
	if err := s.deps.Notifier.Publish(s.def.Name, action); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to publish change event")
	}
}

func mediaURL(row any) string {
	if m, ok := row.(models.MediaRecord); ok {
		return m.MediaURL()
	}
	return ""
}

func slugOf(row any) string {
	if r, ok := row.(models.SlugRecord); ok {
		return r.GetSlug()
	}
	return ""
}
