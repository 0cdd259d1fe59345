package minio

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	appErrors "github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
)

type fakeObjectAPI struct {
	objects map[string][]byte
	types   map[string]string
	statErr error
	putErr  error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeObjectAPI) BucketExists(context.Context, string) (bool, error) { return true, nil }

func (f *fakeObjectAPI) MakeBucket(context.Context, string, minio.MakeBucketOptions) error {
	return nil
}

func (f *fakeObjectAPI) PutObject(_ context.Context, _ string, key string, r io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[key] = data
	f.types[key] = opts.ContentType
	return minio.UploadInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeObjectAPI) PresignedGetObject(_ context.Context, bucket, key string, _ time.Duration, _ url.Values) (*url.URL, error) {
	return url.Parse("https://storage.local/" + bucket + "/" + key + "?sig=abc")
}

func (f *fakeObjectAPI) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	go func() {
		defer close(ch)
		for key, data := range f.objects {
			if len(key) >= len(opts.Prefix) && key[:len(opts.Prefix)] == opts.Prefix {
				ch <- minio.ObjectInfo{
					Key:          key,
					Size:         int64(len(data)),
					ContentType:  f.types[key],
					LastModified: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
				}
			}
		}
	}()
	return ch
}

func (f *fakeObjectAPI) StatObject(_ context.Context, _ string, key string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if f.statErr != nil {
		return minio.ObjectInfo{}, f.statErr
	}
	data, ok := f.objects[key]
	if !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}
	}
	return minio.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func newStore(api *fakeObjectAPI) *DocumentStore {
	return newDocumentStoreWithAPI(api, "labqc-documents", 1024, logging.NewNopLogger())
}

func TestPutStoresUnderLaudoPrefix(t *testing.T) {
	api := newFakeObjectAPI()
	store := newStore(api)

	err := store.Put(context.Background(), "laudo-1", "laudo.pdf", "application/pdf",
		bytes.NewReader([]byte("pdf-bytes")), 9)
	require.NoError(t, err)

	assert.Equal(t, []byte("pdf-bytes"), api.objects["laudos/laudo-1/laudo.pdf"])
	assert.Equal(t, "application/pdf", api.types["laudos/laudo-1/laudo.pdf"])
}

func TestPutRejectsOversizedDocument(t *testing.T) {
	store := newStore(newFakeObjectAPI())

	err := store.Put(context.Background(), "laudo-1", "big.pdf", "application/pdf",
		bytes.NewReader(nil), 2048)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeDocumentTooLarge))
}

func TestPresignGet(t *testing.T) {
	api := newFakeObjectAPI()
	api.objects["laudos/laudo-1/laudo.pdf"] = []byte("pdf")
	store := newStore(api)

	u, err := store.PresignGet(context.Background(), "laudo-1", "laudo.pdf", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, u, "laudos/laudo-1/laudo.pdf")
}

func TestPresignGetMissingDocument(t *testing.T) {
	store := newStore(newFakeObjectAPI())

	_, err := store.PresignGet(context.Background(), "laudo-1", "missing.pdf", time.Minute)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrCodeDocumentNotFound))
}

func TestListReturnsLaudoDocuments(t *testing.T) {
	api := newFakeObjectAPI()
	store := newStore(api)

	require.NoError(t, store.Put(context.Background(), "laudo-1", "a.pdf", "application/pdf",
		bytes.NewReader([]byte("aa")), 2))
	require.NoError(t, store.Put(context.Background(), "laudo-2", "b.pdf", "application/pdf",
		bytes.NewReader([]byte("bb")), 2))

	docs, err := store.List(context.Background(), "laudo-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a.pdf", docs[0].Name)
	assert.Equal(t, int64(2), docs[0].Size)
}
