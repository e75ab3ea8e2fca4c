package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/settings"
)

// ComplaintBucket is where complaint attachments live. The bucket is public;
// attachment URLs stored on the complaint row are plain public object URLs.
const ComplaintBucket = "complaints"

// MaxObjectSize caps a single attachment at 20 MB.
const MaxObjectSize = 20 * 1024 * 1024

// s3API is the slice of the S3 client the storage layer uses. Tests swap in a
// capturing fake; production code always holds a *s3.Client.
type s3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var (
	s3Client s3API
	endpoint string
	enabled  bool

	bucketMu       sync.Mutex
	bucketsEnsured = map[string]bool{}
)

// Initialize sets up the S3 client against the provider's storage endpoint.
func Initialize() error {
	enabled = settings.Get("STORAGE.ENABLED", true).Bool()
	if !enabled {
		log.Notice("Object storage is disabled")
		return nil
	}

	endpoint = settings.Get("STORAGE.ENDPOINT").String()
	region := settings.Get("STORAGE.REGION", "us-east-1").String()
	accessKey := settings.Get("STORAGE.ACCESS_KEY").String()
	secretKey := settings.Get("STORAGE.SECRET_KEY").String()

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return fmt.Errorf("storage configuration incomplete")
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	cfg := aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		EndpointResolverWithOptions: aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               endpoint,
					SigningRegion:     region,
					HostnameImmutable: true,
				}, nil
			},
		),
	}

	s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true // Required for S3-compatible services
	})

	log.Notice("Object storage initialized: endpoint=%s", endpoint)
	return nil
}

// IsEnabled returns whether object storage is available
func IsEnabled() bool {
	return enabled && s3Client != nil
}

// EnsureBucket creates the bucket if it does not exist yet. Buckets are
// public-read; the result is cached per process.
func EnsureBucket(ctx context.Context, bucket string) error {
	if !IsEnabled() {
		return fmt.Errorf("object storage not enabled")
	}

	bucketMu.Lock()
	defer bucketMu.Unlock()
	if bucketsEnsured[bucket] {
		return nil
	}

	_, err := s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		// Anonymous reads must work: attachment URLs stored on the
		// complaint row are plain public object URLs.
		_, err = s3Client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(bucket),
			ACL:    types.BucketCannedACLPublicRead,
		})
		if err != nil && !strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	bucketsEnsured[bucket] = true
	return nil
}

// Upload stores an object. Objects above MaxObjectSize are rejected before any
// network call.
func Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if len(data) > MaxObjectSize {
		return fmt.Errorf("object %s exceeds the %d byte limit", key, MaxObjectSize)
	}
	if !IsEnabled() {
		return fmt.Errorf("object storage not enabled")
	}

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
		ACL:          types.ObjectCannedACLPublicRead,
	})

	return err
}

// Delete removes an object from the bucket.
func Delete(ctx context.Context, bucket, key string) error {
	if !IsEnabled() {
		return fmt.Errorf("object storage not enabled")
	}

	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	return err
}

// PublicURL returns the public object URL for a key.
func PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint, "/"), bucket, key)
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips anything outside [a-zA-Z0-9._-] from a client
// provided filename.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// ObjectPath namespaces an attachment under its complaint and upload time.
func ObjectPath(complaintID string, uploadedAt time.Time, filename string) string {
	return fmt.Sprintf("%s/%d_%s", complaintID, uploadedAt.UnixMilli(), SanitizeFilename(filename))
}
