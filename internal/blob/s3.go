package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"photovault/internal/config"
	"photovault/internal/gallery"
)

// presignTTL bounds how long a shared direct URL stays valid.
const presignTTL = 15 * time.Minute

// S3Store implements the BlobStore interface against an S3 bucket.
// Uploads go through the multipart upload manager with a progress-counting
// reader; direct URLs are presigned GETs.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
	bucket   string
	prefix   string
}

// NewS3Store creates an S3 blob store from configuration. Static
// credentials are used when configured, otherwise the default AWS
// credential chain applies.
func NewS3Store(ctx context.Context, cfg config.BlobConfig) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 blob store requires s3_bucket to be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.S3Bucket,
		prefix:   cfg.S3Prefix,
	}, nil
}

func (s *S3Store) key(id string) string {
	if s.prefix == "" {
		return id
	}
	return s.prefix + "/" + id
}

// Store uploads data under id, reporting read progress as the upload
// manager consumes the body.
func (s *S3Store) Store(ctx context.Context, id string, data []byte, onProgress func(int)) (string, error) {
	body := &progressReader{
		r:          bytes.NewReader(data),
		total:      int64(len(data)),
		onProgress: onProgress,
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("%w: uploading to s3: %v", gallery.ErrBlobUnavailable, err)
	}
	if onProgress != nil {
		onProgress(100)
	}
	return "s3://" + s.bucket + "/" + s.key(id), nil
}

// FetchBytes downloads the full object stored under id.
func (s *S3Store) FetchBytes(ctx context.Context, id string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching from s3: %v", gallery.ErrBlobUnavailable, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading s3 object: %v", gallery.ErrBlobUnavailable, err)
	}
	return data, nil
}

// DirectURL returns a presigned GET URL for the object.
func (s *S3Store) DirectURL(ctx context.Context, id string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	}, func(o *s3.PresignOptions) {
		o.Expires = presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("%w: presigning url: %v", gallery.ErrBlobUnavailable, err)
	}
	return req.URL, nil
}

// progressReader exposes only Read so the upload manager consumes the body
// sequentially, letting byte position translate directly into a
// percentage. Percentages are non-decreasing by construction.
type progressReader struct {
	r          io.Reader
	total      int64
	onProgress func(int)

	mu   sync.Mutex
	read int64
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.onProgress != nil && p.total > 0 {
		p.mu.Lock()
		p.read += int64(n)
		percent := int(p.read * 100 / p.total)
		p.mu.Unlock()
		if percent > 100 {
			percent = 100
		}
		p.onProgress(percent)
	}
	return n, err
}

var _ gallery.BlobStore = (*S3Store)(nil)
