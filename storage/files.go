package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Kind selects the allow-list and size cap applied to an upload.
type Kind int

const (
	Image Kind = iota
	Document
)

var allowedTypes = map[Kind][]string{
	Image:    {"image/jpeg", "image/png", "image/webp", "image/gif", "image/svg+xml"},
	Document: {"application/pdf"},
}

var maxSizes = map[Kind]int64{
	Image:    10 << 20,
	Document: 25 << 20,
}

// sniffLen is how much of the body is inspected to detect its type.
const sniffLen = 3072

// FileUpload is a file received from a client, before it is stored.
type FileUpload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// Destination is where uploads of one resource type go.
type Destination struct {
	Prefix string
	Kind   Kind
}

// Files uploads to and removes from an ObjectStore and maps keys to the
// public URLs stored in content rows.
type Files struct {
	store     ObjectStore
	publicURL string
	bucket    string
	now       func() time.Time
	logger    zerolog.Logger
}

// NewFiles builds a Files whose public URLs have the shape
// <publicURL>/<bucket>/<key>.
func NewFiles(store ObjectStore, publicURL, bucket string) *Files {
	return &Files{
		store:     store,
		publicURL: strings.TrimRight(publicURL, "/"),
		bucket:    bucket,
		now:       time.Now,
		logger:    log.With().Str("service", "files").Logger(),
	}
}

func (f *Files) Store() ObjectStore {
	return f.store
}

// Upload checks the file against the destination's allow-list and size cap,
// stores it under a fresh key and returns its public URL.
func (f *Files) Upload(ctx context.Context, file FileUpload, dest Destination) (string, error) {
	if file.Body == nil {
		return "", errs.NewMissingRequiredFieldError("file")
	}
	limit := maxSizes[dest.Kind]
	if file.Size > limit {
		return "", errs.NewMaxBodySizeExceededError(limit)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", errs.NewMalformedPayloadError("file", err)
	}
	head = head[:n]
	if n == 0 {
		return "", errs.NewInvalidFieldError("file", "file is empty")
	}

	detected := mimetype.Detect(head)
	contentType := detected.String()
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if !mimetype.EqualsAny(contentType, allowedTypes[dest.Kind]...) {
		return "", errs.NewUnsupportedMediaTypeError(contentType, allowedTypes[dest.Kind])
	}

	body := io.MultiReader(bytes.NewReader(head), file.Body)
	size := file.Size
	if size <= 0 {
		// unknown length: buffer so the store gets an exact content length
		data, err := io.ReadAll(io.LimitReader(body, limit+1))
		if err != nil {
			return "", errs.NewMalformedPayloadError("file", err)
		}
		if int64(len(data)) > limit {
			return "", errs.NewMaxBodySizeExceededError(limit)
		}
		size = int64(len(data))
		body = bytes.NewReader(data)
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ext = detected.Extension()
	}
	key := f.newKey(dest.Prefix, ext)
	if err := f.store.Put(ctx, key, body, size, contentType); err != nil {
		return "", err
	}

	f.logger.Info().Str("key", key).Str("contentType", contentType).Int64("size", size).Msg("File uploaded")
	return f.URLForKey(key), nil
}

func (f *Files) newKey(prefix, ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s/%d-%s%s", strings.Trim(prefix, "/"), f.now().UnixMilli(), suffix, ext)
}

// Remove deletes the object behind publicURL. URLs that do not point into
// the bucket are ignored.
func (f *Files) Remove(ctx context.Context, publicURL string) error {
	key, ok := f.KeyFromURL(publicURL)
	if !ok {
		f.logger.Debug().Str("url", publicURL).Msg("Not a bucket URL, nothing to remove")
		return nil
	}
	return f.store.Delete(ctx, key)
}

// KeyFromURL extracts the object key from a public URL by splitting on
// "/<bucket>/".
func (f *Files) KeyFromURL(publicURL string) (string, bool) {
	marker := "/" + f.bucket + "/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return "", false
	}
	key := publicURL[idx+len(marker):]
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	if key == "" {
		return "", false
	}
	return key, true
}

func (f *Files) URLForKey(key string) string {
	return f.publicURL + "/" + f.bucket + "/" + key
}
