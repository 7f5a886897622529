package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/princinho/catalogadmin/config"
	"github.com/princinho/catalogadmin/models"
	"google.golang.org/api/option"
)

// ErrUploadsDisabled is returned when no storage driver is configured.
var ErrUploadsDisabled = errors.New("image uploads are not configured")

// ImageStore puts product images somewhere publicly reachable.
type ImageStore interface {
	Upload(ctx context.Context, objectName, contentType string, body io.Reader) (publicURL string, err error)
	Delete(ctx context.Context, objectName string) error
	// ObjectName maps a public URL back to the object it serves. ok is false
	// for URLs this store did not produce.
	ObjectName(publicURL string) (objectName string, ok bool)
}

// NewImageStore picks the driver from cfg. An empty driver yields nil.
func NewImageStore(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case config.StorageGCS:
		gcs, err := NewGCSImageStore(ctx, cfg.GCSBucket, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return gcs, nil
	case config.StorageR2:
		r2, err := NewR2ImageStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r2, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ProductImageObjectName builds a unique object name under products/.
func ProductImageObjectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("products/%s%s", uuid.NewString(), ext)
}

// UploadProductImage stores a validated multipart file and describes the
// resulting object.
func UploadProductImage(ctx context.Context, store ImageStore, fh *multipart.FileHeader, contentType string) (*models.UploadedImage, error) {
	if store == nil {
		return nil, ErrUploadsDisabled
	}
	if contentType == "" {
		contentType = fh.Header.Get("Content-Type")
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	objectName := ProductImageObjectName(fh.Filename)
	url, err := store.Upload(ctx, objectName, contentType, f)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
	}
	return &models.UploadedImage{
		URL:         url,
		ObjectName:  objectName,
		ContentType: contentType,
		SizeBytes:   fh.Size,
	}, nil
}

// RemoveProductImage deletes the object behind publicURL when it lives in
// store. Foreign URLs and empty values are ignored.
func RemoveProductImage(ctx context.Context, store ImageStore, publicURL string) error {
	if store == nil || publicURL == "" {
		return nil
	}
	objectName, ok := store.ObjectName(publicURL)
	if !ok {
		return nil
	}
	if err := store.Delete(ctx, objectName); err != nil {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}
	return nil
}

// objectNameAfter strips prefix from raw and returns the remaining path.
func objectNameAfter(prefix, raw string) (string, bool) {
	name, found := strings.CutPrefix(raw, prefix)
	if !found || name == "" {
		return "", false
	}
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return name, name != ""
}

// GCSImageStore writes to a Google Cloud Storage bucket.
type GCSImageStore struct {
	client *storage.Client
	bucket string
}

func NewGCSImageStore(ctx context.Context, bucket, credentialsFile string) (*GCSImageStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSImageStore{client: client, bucket: bucket}, nil
}

func (g *GCSImageStore) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	w := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload close: %w", err)
	}
	return g.publicURL(objectName), nil
}

func (g *GCSImageStore) publicURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, objectName)
}

func (g *GCSImageStore) ObjectName(publicURL string) (string, bool) {
	return objectNameAfter(g.publicURL(""), publicURL)
}

func (g *GCSImageStore) Delete(ctx context.Context, objectName string) error {
	return g.client.Bucket(g.bucket).Object(objectName).Delete(ctx)
}

func (g *GCSImageStore) Close() error {
	return g.client.Close()
}

// R2ImageStore writes to a Cloudflare R2 bucket through the S3 API.
type R2ImageStore struct {
	s3           *s3.Client
	bucket       string
	publicDomain string
}

func NewR2ImageStore(ctx context.Context, cfg config.StorageConfig) (*R2ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true // required for R2
	})
	return &R2ImageStore{s3: client, bucket: cfg.R2Bucket, publicDomain: cfg.R2PublicDomain}, nil
}

func (r *R2ImageStore) Upload(ctx context.Context, objectName, contentType string, body io.Reader) (string, error) {
	_, err := r.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(objectName),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return r.publicURL(objectName), nil
}

func (r *R2ImageStore) Delete(ctx context.Context, objectName string) error {
	_, err := r.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(objectName),
	})
	return err
}

// publicURL joins R2_PUBLIC_DOMAIN (custom domain or r2.dev URL) with the
// object name.
func (r *R2ImageStore) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s", r.publicDomain, objectName)
}

func (r *R2ImageStore) ObjectName(publicURL string) (string, bool) {
	if r.publicDomain == "" {
		return "", false
	}
	return objectNameAfter(r.publicURL(""), publicURL)
}
