package admin

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/models"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rpupo63/construction-site-backend/validation"
)

const maxGalleryBody = 100 << 20

// GalleryView is what the gallery panel renders.
type GalleryView struct {
	ProjectID uuid.UUID
	Title     string
	Images    []models.ProjectImage
	Failed    []content.UploadFailure
	Accept    string
}

// mountProjectGallery adds the gallery routes below a project screen.
func (h *Handlers) mountProjectGallery(r chi.Router) {
	r.Get("/{id}/gallery", h.galleryPanel)
	r.Post("/{id}/gallery", h.galleryUpload)
	r.Post("/{id}/gallery/order", h.galleryReorder)
}

func (h *Handlers) mountGallery(r chi.Router) {
	r.Put("/project-images/{imageID}", h.galleryCaption)
	r.Delete("/project-images/{imageID}", h.galleryDelete)
}

func (h *Handlers) renderGallery(w http.ResponseWriter, r *http.Request, projectID uuid.UUID, failed []content.UploadFailure) {
	project, err := h.catalog.Projects.Get(r.Context(), projectID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	images, err := h.catalog.Gallery.List(r.Context(), projectID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.renderPartial(w, "gallery", GalleryView{
		ProjectID: projectID,
		Title:     project.Title,
		Images:    images,
		Failed:    failed,
		Accept:    imageAccept,
	})
}

func (h *Handlers) galleryPanel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	h.renderGallery(w, r, id, nil)
}

func (h *Handlers) galleryUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxGalleryBody)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.storeError(w, errs.NewMalformedPayloadError("multipart form", err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		h.storeError(w, errs.NewMissingRequiredFieldError("files"))
		return
	}
	uploads, closeAll, err := openParts(headers)
	defer closeAll()
	if err != nil {
		h.storeError(w, errs.NewMalformedPayloadError("files", err))
		return
	}

	result, err := h.catalog.Gallery.Upload(r.Context(), id, uploads)
	if err != nil {
		h.storeError(w, err)
		return
	}
	level, msg := toastSuccess, fmt.Sprintf("%d image(s) added", len(result.Uploaded))
	if len(result.Failed) > 0 {
		level = toastError
		msg = fmt.Sprintf("%d added, %d failed", len(result.Uploaded), len(result.Failed))
	}
	h.trigger(w, map[string]any{
		eventRowsChanged: true,
		eventToast:       toastEvent{Level: level, Message: msg},
	})
	h.renderGallery(w, r, id, result.Failed)
}

func openParts(headers []*multipart.FileHeader) ([]storage.FileUpload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	uploads := make([]storage.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, err
		}
		opened = append(opened, f)
		uploads = append(uploads, storage.FileUpload{Filename: fh.Filename, Size: fh.Size, Body: f})
	}
	return uploads, closeAll, nil
}

// galleryReorder takes the image ids in their new order, as sent by the
// sortable list.
func (h *Handlers) galleryReorder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.storeError(w, errs.NewMalformedPayloadError("form", err))
		return
	}
	ordered := make([]uuid.UUID, 0, len(r.PostForm["image_ids"]))
	for _, raw := range r.PostForm["image_ids"] {
		imageID, err := uuid.Parse(raw)
		if err != nil {
			h.storeError(w, errs.NewInvalidFieldError("image_ids", "must be UUIDs"))
			return
		}
		ordered = append(ordered, imageID)
	}
	if err := h.catalog.Gallery.Reorder(r.Context(), id, ordered); err != nil {
		h.storeError(w, err)
		return
	}
	h.toast(w, toastSuccess, "Order saved")
	h.renderGallery(w, r, id, nil)
}

func (h *Handlers) imageID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "imageID"))
	if err != nil {
		h.storeError(w, errs.NewInvalidFieldError("imageID", "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handlers) galleryCaption(w http.ResponseWriter, r *http.Request) {
	id, ok := h.imageID(w, r)
	if !ok {
		return
	}
	input := &validation.ProjectImageInput{}
	if err := r.ParseForm(); err != nil {
		h.storeError(w, errs.NewMalformedPayloadError("form", err))
		return
	}
	if err := validation.DecodeForm(input, r.PostForm); err != nil {
		h.storeError(w, err)
		return
	}
	if err := h.catalog.Gallery.UpdateCaption(r.Context(), id, input); err != nil {
		if fields := errs.FieldErrors(err); len(fields) > 0 {
			err = errs.NewInvalidFieldError("caption", fields["caption"])
		}
		h.storeError(w, err)
		return
	}
	h.toast(w, toastSuccess, "Caption saved")
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusOK)
}

// galleryDelete answers with an empty body so the image's list item is
// swapped out.
func (h *Handlers) galleryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.imageID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.Gallery.Delete(r.Context(), id); err != nil {
		h.storeError(w, err)
		return
	}
	h.trigger(w, map[string]any{
		eventRowsChanged: true,
		eventToast:       toastEvent{Level: toastSuccess, Message: "Image deleted"},
	})
	w.WriteHeader(http.StatusOK)
}
