package api

import (
	"net/http"

	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rpupo63/construction-site-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxGalleryBody bounds one batch upload request.
const maxGalleryBody = 100 << 20

type galleryHandler struct {
	responder Responder
	logger    zerolog.Logger
	gallery   *content.Gallery
}

func newGalleryHandler(gallery *content.Gallery) galleryHandler {
	logger := log.With().Str("handlerName", "galleryHandler").Logger()
	return galleryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gallery:   gallery,
	}
}

// @Router /api/admin/projects/{id}/images [get]
func (h galleryHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		images, err := h.gallery.List(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, images)
	}
}

// upload stores every "files" part independently; one failure does not stop
// the rest
// @Router /api/admin/projects/{id}/images [post]
func (h galleryHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxGalleryBody)
		if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
			h.responder.WriteError(w, bodyError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File["files"]
		if len(headers) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("files"))
			return
		}

		uploads := make([]storage.FileUpload, 0, len(headers))
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				h.responder.WriteError(w, errs.NewMalformedPayloadError("file", err))
				return
			}
			defer f.Close()
			uploads = append(uploads, storage.FileUpload{Filename: fh.Filename, Size: fh.Size, Body: f})
		}

		result, err := h.gallery.Upload(r.Context(), projectID, uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		status := http.StatusCreated
		if len(result.Uploaded) == 0 {
			status = http.StatusUnprocessableEntity
		}
		h.responder.WriteJSONStatus(w, status, result)
	}
}

// @Router /api/admin/projects/{id}/images/order [put]
func (h galleryHandler) reorder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var body ReorderRequest
		if err := decodeJSON(w, r, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.gallery.Reorder(r.Context(), projectID, body.ImageIDs); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

// @Router /api/admin/project-images/{imageID} [put]
func (h galleryHandler) updateCaption() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID, err := pathID(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input := &validation.ProjectImageInput{}
		if err := decodeJSON(w, r, input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.gallery.UpdateCaption(r.Context(), imageID, input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

// @Router /api/admin/project-images/{imageID} [delete]
func (h galleryHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		imageID, err := pathID(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.gallery.Delete(r.Context(), imageID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
