package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossStorage struct {
	bucket *oss.Bucket
}

// NewOSS stores blobs in an Aliyun OSS bucket, keyed by "folder/filename".
func NewOSS(endpoint, accessKeyID, accessKeySecret, bucketName string) (Storage, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &ossStorage{bucket: bucket}, nil
}

func (o *ossStorage) Save(ctx context.Context, folder, filename string, data []byte) (string, error) {
	key := folder + "/" + filename
	if err := o.bucket.PutObject(key, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return key, nil
}

func (o *ossStorage) Open(ctx context.Context, storedPath string) (io.ReadCloser, error) {
	return o.bucket.GetObject(storedPath)
}

func (o *ossStorage) Remove(ctx context.Context, storedPath string) error {
	return o.bucket.DeleteObject(storedPath)
}
