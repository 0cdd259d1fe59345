package report

import (
	"context"
	"io"
	"time"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// DocumentStore is the object-storage boundary for laudo attachments
// (signed PDFs, instrument exports, calibration certificates).
type DocumentStore interface {
	Put(ctx context.Context, laudoID common.ID, name, contentType string, r io.Reader, size int64) error
	PresignGet(ctx context.Context, laudoID common.ID, name string, expiry time.Duration) (string, error)
	List(ctx context.Context, laudoID common.ID) ([]ltypes.Document, error)
}

// DocumentService checks laudo existence before delegating to the store, so
// handlers never attach documents to unknown laudos.
type DocumentService struct {
	reports *Service
	store   DocumentStore
}

// NewDocumentService wires the document service over the report service and
// an object store.
func NewDocumentService(reports *Service, store DocumentStore) *DocumentService {
	return &DocumentService{reports: reports, store: store}
}

// Attach stores a document under the laudo's prefix.
func (d *DocumentService) Attach(ctx context.Context, laudoID common.ID, name, contentType string, r io.Reader, size int64) error {
	if name == "" {
		return errors.Validation("document name is required")
	}
	if _, err := d.reports.Get(ctx, laudoID); err != nil {
		return err
	}
	if err := d.store.Put(ctx, laudoID, name, contentType, r, size); err != nil {
		return errors.Wrap(err, errors.ErrCodeDocumentStoreError, "failed to store laudo document")
	}
	return nil
}

// URL returns a time-limited download link for a stored document.
func (d *DocumentService) URL(ctx context.Context, laudoID common.ID, name string, expiry time.Duration) (string, error) {
	if _, err := d.reports.Get(ctx, laudoID); err != nil {
		return "", err
	}
	url, err := d.store.PresignGet(ctx, laudoID, name, expiry)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeDocumentNotFound, "failed to presign laudo document")
	}
	return url, nil
}

// List enumerates the documents stored under a laudo.
func (d *DocumentService) List(ctx context.Context, laudoID common.ID) ([]ltypes.Document, error) {
	if _, err := d.reports.Get(ctx, laudoID); err != nil {
		return nil, err
	}
	docs, err := d.store.List(ctx, laudoID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDocumentStoreError, "failed to list laudo documents")
	}
	return docs, nil
}
