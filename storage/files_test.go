package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://abc.supabase.co/storage/v1/object/public"

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

func newTestFiles() (*Files, *MemoryStore) {
	store := NewMemoryStore()
	f := NewFiles(store, testBase+"/", "company-assets")
	f.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return f, store
}

func TestKeyFromURL(t *testing.T) {
	f, _ := newTestFiles()

	key, ok := f.KeyFromURL(testBase + "/company-assets/logos/mercy-health.png")
	require.True(t, ok)
	assert.Equal(t, "logos/mercy-health.png", key)

	key, ok = f.KeyFromURL(testBase + "/company-assets/team/a.jpg?v=2")
	require.True(t, ok)
	assert.Equal(t, "team/a.jpg", key)

	_, ok = f.KeyFromURL("https://images.example.com/logo.png")
	assert.False(t, ok)
	_, ok = f.KeyFromURL("")
	assert.False(t, ok)
}

func TestUploadStoresUnderDestination(t *testing.T) {
	ctx := context.Background()
	f, store := newTestFiles()

	url, err := f.Upload(ctx, FileUpload{Filename: "Mercy Health.PNG", Size: int64(len(pngBytes)), Body: bytes.NewReader(pngBytes)}, Destination{Prefix: "partners", Kind: Image})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, testBase+"/company-assets/partners/1700000000000-"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	key, ok := f.KeyFromURL(url)
	require.True(t, ok)
	data, contentType, ok := store.Read(key)
	require.True(t, ok)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, "image/png", contentType)
}

func TestUploadUnknownSize(t *testing.T) {
	f, store := newTestFiles()

	url, err := f.Upload(context.Background(), FileUpload{Filename: "brochure.pdf", Body: strings.NewReader("%PDF-1.7\n%...")}, Destination{Prefix: "resources", Kind: Document})
	require.NoError(t, err)
	key, _ := f.KeyFromURL(url)
	assert.True(t, store.Has(key))
}

func TestUploadKeysAreUnique(t *testing.T) {
	ctx := context.Background()
	f, _ := newTestFiles()
	dest := Destination{Prefix: "projects", Kind: Image}

	a, err := f.Upload(ctx, FileUpload{Filename: "a.png", Body: bytes.NewReader(pngBytes)}, dest)
	require.NoError(t, err)
	b, err := f.Upload(ctx, FileUpload{Filename: "a.png", Body: bytes.NewReader(pngBytes)}, dest)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	f, store := newTestFiles()

	_, err := f.Upload(context.Background(), FileUpload{Filename: "notes.png", Body: strings.NewReader("just some text pretending")}, Destination{Prefix: "team", Kind: Image})
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedMediaTypeError(err))

	_, err = f.Upload(context.Background(), FileUpload{Filename: "logo.png", Body: bytes.NewReader(pngBytes)}, Destination{Prefix: "resources", Kind: Document})
	assert.True(t, errs.IsUnsupportedMediaTypeError(err))

	objs, _ := store.List(context.Background(), "")
	assert.Empty(t, objs)
}

func TestUploadRejectsOversize(t *testing.T) {
	f, _ := newTestFiles()

	_, err := f.Upload(context.Background(), FileUpload{Filename: "big.png", Size: 11 << 20, Body: bytes.NewReader(pngBytes)}, Destination{Prefix: "team", Kind: Image})
	require.Error(t, err)
	assert.True(t, errs.IsMaxBodySizeExceededError(err))
}

func TestUploadEmptyFile(t *testing.T) {
	f, _ := newTestFiles()

	_, err := f.Upload(context.Background(), FileUpload{Filename: "empty.png", Body: bytes.NewReader(nil)}, Destination{Prefix: "team", Kind: Image})
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	f, store := newTestFiles()
	require.NoError(t, store.Put(ctx, "logos/mercy-health.png", bytes.NewReader(pngBytes), int64(len(pngBytes)), "image/png"))

	require.NoError(t, f.Remove(ctx, testBase+"/company-assets/logos/mercy-health.png"))
	assert.False(t, store.Has("logos/mercy-health.png"))

	// unknown shapes are ignored
	assert.NoError(t, f.Remove(ctx, "https://elsewhere.example.com/x.png"))
	assert.NoError(t, f.Remove(ctx, ""))
}

func TestMemoryStoreNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "k", strings.NewReader("one"), 3, "text/plain"))
	err := store.Put(ctx, "k", strings.NewReader("two"), 3, "text/plain")
	require.Error(t, err)
	assert.True(t, errs.IsObjectExistsError(err))

	data, _, _ := store.Read("k")
	assert.Equal(t, "one", string(data))
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, key := range []string{"team/b.png", "team/a.png", "projects/c.png"} {
		require.NoError(t, store.Put(ctx, key, strings.NewReader("x"), 1, "image/png"))
	}

	objs, err := store.List(ctx, "team/")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "team/a.png", objs[0].Key)
	assert.Equal(t, "team/b.png", objs[1].Key)
}
