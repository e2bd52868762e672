package transactions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"dsikea/core/storage"
	"dsikea/feature/transactions/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver snapshots committed transactions to object storage as JSON
// documents. Archival is best effort: a storage fault is logged, never
// surfaced, the database remains the source of truth.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates an archiver. A nil client disables archival, every
// method becomes a no-op.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, logger: logger}
}

// Enabled reports whether a storage client is configured.
func (a *Archiver) Enabled() bool {
	return a != nil && a.client != nil
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	if !a.Enabled() {
		return nil
	}
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	return nil
}

func objectName(id string) string {
	return "transactions/" + id + ".json"
}

// Save uploads the transaction snapshot, overwriting any previous version.
func (a *Archiver) Save(ctx context.Context, tx *models.Transaction) {
	if !a.Enabled() {
		return
	}

	data, err := json.Marshal(tx)
	if err != nil {
		a.logger.Error("Failed to marshal transaction for archive",
			zap.String("id", tx.ID), zap.Error(err))
		return
	}

	_, err = a.client.PutObject(ctx, a.bucket, objectName(tx.ID),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		a.logger.Error("Failed to archive transaction",
			zap.String("id", tx.ID), zap.Error(err))
	}
}

// Remove drops the snapshot of a deleted transaction.
func (a *Archiver) Remove(ctx context.Context, id string) {
	if !a.Enabled() {
		return
	}

	if err := a.client.RemoveObject(ctx, a.bucket, objectName(id), minio.RemoveObjectOptions{}); err != nil {
		a.logger.Error("Failed to remove archived transaction",
			zap.String("id", id), zap.Error(err))
	}
}
