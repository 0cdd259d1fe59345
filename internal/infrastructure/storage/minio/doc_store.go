// Package minio stores laudo document attachments (signed PDFs, instrument
// exports) in S3-compatible object storage.
package minio

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// objectAPI is the subset of the minio client the store uses.  Narrowed for
// testability.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// Config holds the object storage settings.
type Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	MaxDocumentSize int64         `mapstructure:"max_document_size"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// DocumentStore keeps laudo attachments under laudos/{laudoID}/{name}.
type DocumentStore struct {
	api           objectAPI
	bucket        string
	maxSize       int64
	presignExpiry time.Duration
	logger        logging.Logger
}

// NewDocumentStore connects to the object store and ensures the bucket
// exists.
func NewDocumentStore(ctx context.Context, cfg Config, log logging.Logger) (*DocumentStore, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = "labqc-documents"
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.MaxDocumentSize == 0 {
		cfg.MaxDocumentSize = 32 * 1024 * 1024
	}
	if cfg.PresignExpiry == 0 {
		cfg.PresignExpiry = time.Hour
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create object storage client")
	}

	store := &DocumentStore{
		api:           client,
		bucket:        cfg.Bucket,
		maxSize:       cfg.MaxDocumentSize,
		presignExpiry: cfg.PresignExpiry,
		logger:        log,
	}
	if err := store.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	log.Info("object storage connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket))
	return store, nil
}

// newDocumentStoreWithAPI wires a custom API (for testing).
func newDocumentStoreWithAPI(api objectAPI, bucket string, maxSize int64, log logging.Logger) *DocumentStore {
	return &DocumentStore{api: api, bucket: bucket, maxSize: maxSize, presignExpiry: time.Hour, logger: log}
}

func (s *DocumentStore) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to reach object storage")
	}
	if exists {
		return nil
	}
	if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create document bucket")
	}
	s.logger.Info("created document bucket", logging.String("bucket", s.bucket))
	return nil
}

func objectKey(laudoID common.ID, name string) string {
	return "laudos/" + string(laudoID) + "/" + name
}

// Put stores one document under the laudo's prefix.
func (s *DocumentStore) Put(ctx context.Context, laudoID common.ID, name, contentType string, r io.Reader, size int64) error {
	if s.maxSize > 0 && size > s.maxSize {
		return errors.New(errors.ErrCodeDocumentTooLarge, "document exceeds size limit")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.api.PutObject(ctx, s.bucket, objectKey(laudoID, name), r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDocumentStoreError, "failed to store document")
	}

	s.logger.Info("document stored",
		logging.String("laudo_id", string(laudoID)),
		logging.String("name", name),
		logging.Int64("size", size))
	return nil
}

// PresignGet returns a time-limited download URL for a stored document.
func (s *DocumentStore) PresignGet(ctx context.Context, laudoID common.ID, name string, expiry time.Duration) (string, error) {
	key := objectKey(laudoID, name)
	if expiry <= 0 {
		expiry = s.presignExpiry
	}

	if _, err := s.api.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return "", errors.New(errors.ErrCodeDocumentNotFound, "laudo document not found").
			WithDetail("name=" + name).WithCause(err)
	}

	u, err := s.api.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeDocumentStoreError, "failed to presign document")
	}
	return u.String(), nil
}

// List enumerates the documents stored under a laudo.
func (s *DocumentStore) List(ctx context.Context, laudoID common.ID) ([]ltypes.Document, error) {
	prefix := "laudos/" + string(laudoID) + "/"

	var docs []ltypes.Document
	for info := range s.api.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if info.Err != nil {
			return nil, errors.Wrap(info.Err, errors.ErrCodeDocumentStoreError, "failed to list documents")
		}
		docs = append(docs, ltypes.Document{
			Name:        strings.TrimPrefix(info.Key, prefix),
			ContentType: info.ContentType,
			Size:        info.Size,
			UploadedAt:  info.LastModified,
		})
	}
	return docs, nil
}
