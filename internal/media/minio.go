package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrNotImage = errors.New("uploaded file is not an image")

// ImageUploader stores product images in a MinIO bucket and hands back their public URL.
type ImageUploader struct {
	client *minio.Client
	bucket string
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewImageUploader(opts Options) (*ImageUploader, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &ImageUploader{client: client, bucket: opts.Bucket}, nil
}

// EnsureBucket creates the bucket on first start.
func (u *ImageUploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", u.bucket, err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", u.bucket, err)
	}
	return nil
}

// Upload writes the image under a fresh object name and returns the URL to store in Product.Image.
func (u *ImageUploader) Upload(
	ctx context.Context,
	productID, filename, contentType string,
	r io.Reader,
	size int64) (string, error) {

	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, contentType)
	}

	name := objectName(productID, filename)
	info, err := u.client.PutObject(ctx, u.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return u.publicURL(info.Key), nil
}

func (u *ImageUploader) publicURL(object string) string {
	base := u.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", base.Scheme, base.Host, u.bucket, object)
}

func objectName(productID, filename string) string {
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}
