package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rpupo63/construction-site-backend/validation"
)

const (
	// maxBodySize covers the largest document upload plus form fields.
	maxBodySize      = 26 << 20
	maxMultipartMem  = 8 << 20
	contentTypeJSON  = "application/json"
	contentTypeMulti = "multipart/form-data"
)

// pathID parses the {id} URL parameter.
func pathID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(param, "must be a UUID")
	}
	return id, nil
}

// decodeInput fills target from a JSON or multipart body. For multipart
// bodies the optional "file" part is returned; call cleanup once done with it.
func decodeInput(w http.ResponseWriter, r *http.Request, target any) (file *storage.FileUpload, cleanup func(), err error) {
	cleanup = func() {}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case contentTypeJSON, "":
		if err := json.NewDecoder(r.Body).Decode(target); err != nil {
			return nil, cleanup, bodyError("JSON", err)
		}
		return nil, cleanup, nil

	case contentTypeMulti:
		if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
			return nil, cleanup, bodyError("multipart", err)
		}
		cleanup = func() { _ = r.MultipartForm.RemoveAll() }
		if err := validation.DecodeForm(target, r.MultipartForm.Value); err != nil {
			return nil, cleanup, err
		}

		part, header, err := r.FormFile("file")
		if errors.Is(err, http.ErrMissingFile) {
			return nil, cleanup, nil
		}
		if err != nil {
			return nil, cleanup, errs.NewMalformedPayloadError("file", err)
		}
		removeAll := cleanup
		cleanup = func() {
			part.Close()
			removeAll()
		}
		return &storage.FileUpload{Filename: header.Filename, Size: header.Size, Body: part}, cleanup, nil
	}

	return nil, cleanup, errs.NewUnsupportedMediaTypeError(mediaType, []string{contentTypeJSON, contentTypeMulti})
}

// decodeJSON decodes a JSON body into target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return bodyError("JSON", err)
	}
	return nil
}

func bodyError(payload string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.NewMaxBodySizeExceededError(tooLarge.Limit)
	}
	return errs.NewMalformedPayloadError(payload, err)
}

// ifMatch reads the updated_at precondition from the If-Match header. An
// absent header yields nil.
func ifMatch(r *http.Request) (*time.Time, error) {
	raw := strings.TrimSpace(r.Header.Get("If-Match"))
	if raw == "" {
		return nil, nil
	}
	raw = strings.Trim(strings.TrimPrefix(raw, "W/"), `"`)
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError("If-Match", "must be the record's updated_at as RFC 3339")
	}
	return &t, nil
}

// etag formats updated_at as the value clients send back in If-Match.
func etag(updatedAt time.Time) string {
	return `"` + updatedAt.UTC().Format(time.RFC3339Nano) + `"`
}

func queryBool(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
