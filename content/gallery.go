package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/database"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rpupo63/construction-site-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var galleryDestination = storage.Destination{Prefix: "projects", Kind: storage.Image}

// UploadFailure names one file of a batch that could not be added.
type UploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// BatchResult reports each file of a batch upload independently.
type BatchResult struct {
	Uploaded []models.ProjectImage `json:"uploaded"`
	Failed   []UploadFailure       `json:"failed"`
}

// Gallery manages the ordered images of a project.
type Gallery struct {
	projects *database.Repo[*models.Project]
	images   *database.ProjectImageRepo
	files    *storage.Files
	logger   zerolog.Logger
}

func NewGallery(projects *database.Repo[*models.Project], images *database.ProjectImageRepo, files *storage.Files) *Gallery {
	return &Gallery{
		projects: projects,
		images:   images,
		files:    files,
		logger:   log.With().Str("service", "gallery").Logger(),
	}
}

func (g *Gallery) List(ctx context.Context, projectID uuid.UUID) ([]models.ProjectImage, error) {
	return g.images.ListByProject(ctx, projectID)
}

// Upload adds files to the end of the project's gallery one at a time. A file
// that fails is reported in Failed and does not stop the rest. The error is
// non-nil only when the project itself cannot be used.
func (g *Gallery) Upload(ctx context.Context, projectID uuid.UUID, files []storage.FileUpload) (BatchResult, error) {
	result := BatchResult{Uploaded: []models.ProjectImage{}, Failed: []UploadFailure{}}
	if _, err := g.projects.FindByID(ctx, projectID); err != nil {
		return result, err
	}
	next, err := g.images.NextDisplayOrder(ctx, projectID)
	if err != nil {
		return result, err
	}

	for _, file := range files {
		url, err := g.files.Upload(ctx, file, galleryDestination)
		if err != nil {
			result.Failed = append(result.Failed, UploadFailure{Filename: file.Filename, Error: err.Error()})
			continue
		}
		image := models.ProjectImage{ProjectID: projectID, ImageURL: url, Ordered: models.Ordered{DisplayOrder: next}}
		if err := g.images.Create(ctx, &image); err != nil {
			g.discard(ctx, url)
			result.Failed = append(result.Failed, UploadFailure{Filename: file.Filename, Error: err.Error()})
			continue
		}
		next++
		result.Uploaded = append(result.Uploaded, image)
	}

	g.logger.Info().
		Str("projectId", projectID.String()).
		Int("uploaded", len(result.Uploaded)).
		Int("failed", len(result.Failed)).
		Msg("Gallery batch upload finished")
	return result, nil
}

// Reorder sets display_order from the position of each id in orderedIDs.
func (g *Gallery) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return errs.NewInvalidFieldError("ids", "contains duplicates")
		}
		seen[id] = true
	}
	return g.images.Reorder(ctx, projectID, orderedIDs)
}

func (g *Gallery) UpdateCaption(ctx context.Context, imageID uuid.UUID, input *validation.ProjectImageInput) error {
	res, err := validation.Validate("project_image", input)
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}
	return g.images.UpdateCaption(ctx, imageID, input.Caption)
}

// Delete removes one image and its file. A missing id is not an error.
func (g *Gallery) Delete(ctx context.Context, imageID uuid.UUID) error {
	image, err := g.images.FindByID(ctx, imageID)
	if errs.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	g.discard(ctx, image.ImageURL)
	_, err = g.images.Delete(ctx, imageID)
	return err
}

func (g *Gallery) discard(ctx context.Context, url string) {
	if err := g.files.Remove(ctx, url); err != nil {
		g.logger.Warn().Err(err).Str("url", url).Msg("Failed to remove stored file")
	}
}
