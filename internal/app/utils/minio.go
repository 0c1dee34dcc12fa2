package utils

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// InitMinio connects to endpoint and makes sure bucket exists. It returns nil
// when storage is not configured or unreachable.
func InitMinio(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) *minio.Client {
	if endpoint == "" {
		logrus.Warn("minio endpoint not set, report upload disabled")
		return nil
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		logrus.Warnf("minio client: %v", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		logrus.Warnf("minio bucket check %s: %v, report upload disabled", bucket, err)
		return nil
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			logrus.Warnf("minio make bucket %s: %v, report upload disabled", bucket, err)
			return nil
		}
		logrus.Infof("minio bucket %s created", bucket)
	}
	return client
}
