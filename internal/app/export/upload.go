package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Uploader stores rendered reports in a MinIO bucket.
type Uploader struct {
	Client *minio.Client
	Bucket string
}

// ObjectName is the bucket key of a new upload of calculation id's report.
func ObjectName(id uint) string {
	return fmt.Sprintf("reports/calculation-%d/%s.xlsx", id, uuid.New().String())
}

// Upload puts data into the bucket and returns the object name.
func (u *Uploader) Upload(ctx context.Context, id uint, data []byte) (string, error) {
	if u == nil || u.Client == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	objectName := ObjectName(id)
	_, err := u.Client.PutObject(
		ctx,
		u.Bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: ContentType},
	)
	if err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}
	return objectName, nil
}
