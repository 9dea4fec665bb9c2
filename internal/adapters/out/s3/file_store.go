// Package s3 stores order files (demos, final deliveries, reference tracks)
// in an S3 bucket.
package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"trackorder/internal/core/ports"
	"trackorder/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var _ ports.FileStore = (*FileStore)(nil)

// FileStore implements blob storage on S3. Objects live under
// s3://<bucket>/<prefix>/<key>; the stable URL recorded on orders is the
// virtual-hosted bucket URL for that object.
type FileStore struct {
	bucket   string
	prefix   string
	baseURL  string
	client   *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
}

// NewFileStore creates a FileStore. Region and credentials come from the
// environment (AWS_REGION, AWS_ACCESS_KEY_ID/SECRET etc.). The prefix may be
// empty; no leading slash required.
func NewFileStore(ctx context.Context, bucket, prefix string) (*FileStore, error) {
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &FileStore{
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		baseURL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region),
		client:   client,
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
	}, nil
}

// Store uploads an object and returns its stored location.
func (fs *FileStore) Store(ctx context.Context, key, contentType string, body io.Reader) (ports.StoredFile, error) {
	if key == "" {
		return ports.StoredFile{}, errs.NewValueIsRequiredError("key")
	}

	_, err := fs.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(fs.bucket),
		Key:         aws.String(fs.objectKey(key)),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return ports.StoredFile{}, fmt.Errorf("s3 upload failed: %w", err)
	}

	return ports.StoredFile{Key: key, URL: fs.URLFor(key)}, nil
}

// PresignDownload returns a time-limited download URL for a stored object.
func (fs *FileStore) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	req, err := fs.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(fs.objectKey(key)),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3 presign failed: %w", err)
	}

	return req.URL, nil
}

// URLFor returns the stable object URL for a key. The result is valid before
// the object exists.
func (fs *FileStore) URLFor(key string) string {
	return fs.baseURL + "/" + fs.objectKey(key)
}

// KeyFromURL recovers the storage key from a URL produced by URLFor.
func (fs *FileStore) KeyFromURL(url string) (string, error) {
	trimmed, found := strings.CutPrefix(url, fs.baseURL+"/")
	if !found {
		return "", errs.NewValueIsInvalidError("url")
	}
	if fs.prefix != "" {
		trimmed, found = strings.CutPrefix(trimmed, fs.prefix+"/")
		if !found {
			return "", errs.NewValueIsInvalidError("url")
		}
	}
	if trimmed == "" {
		return "", errs.NewValueIsInvalidError("url")
	}
	return trimmed, nil
}

func (fs *FileStore) objectKey(key string) string {
	return path.Join(fs.prefix, key)
}
