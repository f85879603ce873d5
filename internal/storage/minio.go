package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrInvalidURL means a delete request named a URL this store never issued.
var ErrInvalidURL = errors.New("url does not belong to this store")

// BlobStorage wraps the minio client for the media upload endpoints. Objects
// are uploaded publicly readable and addressed by stable URLs.
type BlobStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// ObjectInfo is the listing projection for one stored blob.
type ObjectInfo struct {
	URL        string    `json:"url"`
	Pathname   string    `json:"pathname"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	Filename   string    `json:"filename"`
}

// NewBlobStorage creates the storage client and ensures the bucket exists
// with public read access. Missing configuration is an explicit error, not a
// silent no-op.
func NewBlobStorage(cfg *MinIOConfig) (*BlobStorage, error) {
	if cfg == nil || cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("blob storage not configured: MINIO_ENDPOINT, MINIO_ACCESS_KEY, and MINIO_SECRET_KEY are required")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	s := &BlobStorage{
		client:  mc,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}
	if cfg.PublicURL != "" {
		s.baseURL = strings.TrimRight(cfg.PublicURL, "/")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, s.bucket)
	if err := mc.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return nil, fmt.Errorf("minio bucket policy: %w", err)
	}
	return s, nil
}

// Upload stores the file under a timestamped key and returns its public URL.
// No content-type allow-list is enforced here; that is left to the caller.
func (s *BlobStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeKey(filename))
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("blob upload: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// List returns all stored blobs with their public URLs.
func (s *BlobStorage) List(ctx context.Context) ([]ObjectInfo, error) {
	out := []ObjectInfo{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("blob list: %w", obj.Err)
		}
		out = append(out, ObjectInfo{
			URL:        s.baseURL + "/" + obj.Key,
			Pathname:   obj.Key,
			Size:       obj.Size,
			UploadedAt: obj.LastModified,
			Filename:   filenameOf(obj.Key),
		})
	}
	return out, nil
}

// Delete removes the blob behind a previously issued URL. URLs outside this
// store's base yield ErrInvalidURL.
func (s *BlobStorage) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return ErrInvalidURL
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("blob delete: %w", err)
	}
	return nil
}

// sanitizeKey keeps object keys URL-safe: path separators and whitespace
// become hyphens.
func sanitizeKey(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return strings.Join(strings.Fields(name), "-")
}

// filenameOf is the last path segment of an object key.
func filenameOf(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
