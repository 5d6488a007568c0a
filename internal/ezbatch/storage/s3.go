// Package storage answers reachability questions about S3 buckets and
// objects for mount validation.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/encrypt"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/mount"
	"github.com/ehsaniara/ezbatch/pkg/logger"
)

const (
	markerPrefix = "test/"
	listMaxKeys  = 10
	sseHeader    = "X-Amz-Server-Side-Encryption"
	sseKeyHeader = "X-Amz-Server-Side-Encryption-Aws-Kms-Key-Id"
)

var markerBody = []byte("test")

// objectAPI is the part of the minio client the checker uses.
type objectAPI interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// S3Config holds connection settings for S3-compatible storage.
type S3Config struct {
	Endpoint string // host[:port], e.g. "s3.amazonaws.com"
	Region   string
	UseSSL   bool
}

// S3Checker implements mount.StorageChecker.
type S3Checker struct {
	client objectAPI
	logger *logger.Logger
}

var _ mount.StorageChecker = (*S3Checker)(nil)

// NewS3Checker connects with credentials from the environment, the shared
// credentials file or the instance role, in that order.
func NewS3Checker(cfg S3Config, log *logger.Logger) (*S3Checker, error) {
	creds := credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
	})

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client for %s: %w", cfg.Endpoint, err)
	}
	return newS3Checker(client, log), nil
}

func newS3Checker(client objectAPI, log *logger.Logger) *S3Checker {
	if log == nil {
		log = logger.New()
	}
	return &S3Checker{
		client: client,
		logger: log.WithField("component", "s3-checker"),
	}
}

// ObjectExists reports whether any object lives under the uri's key prefix.
// A missing bucket is a negative answer, not an error.
func (c *S3Checker) ObjectExists(ctx context.Context, uri string) (bool, error) {
	bucket, key, err := mount.ParseURI(uri)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range c.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    key,
		Recursive: true,
		MaxKeys:   listMaxKeys,
	}) {
		if obj.Err != nil {
			if isNegative(obj.Err) {
				c.logger.Debug("object lookup denied or bucket missing", "uri", uri, "error", obj.Err)
				return false, nil
			}
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}

// IsWritable uploads a small marker object with the requested encryption and
// removes it again. A rejected upload is a negative answer.
func (c *S3Checker) IsWritable(ctx context.Context, bucket string, mode mount.EncryptionMode, keyID string) (bool, error) {
	opts, err := putOptions(mode, keyID)
	if err != nil {
		return false, err
	}

	key := markerPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	info, err := c.client.PutObject(ctx, bucket, key, bytes.NewReader(markerBody), int64(len(markerBody)), opts)
	if err != nil {
		if isNegative(err) {
			c.logger.Debug("write marker rejected", "bucket", bucket, "sse", string(mode), "error", err)
			return false, nil
		}
		return false, err
	}

	if err := c.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{VersionID: info.VersionID}); err != nil {
		c.logger.Warn("failed to remove write marker", "bucket", bucket, "key", key, "error", err)
	}
	return true, nil
}

// putOptions maps an encryption mode onto upload options.
func putOptions(mode mount.EncryptionMode, keyID string) (minio.PutObjectOptions, error) {
	opts := minio.PutObjectOptions{ContentType: "text/plain"}
	switch mode {
	case mount.EncryptionNone:
	case mount.EncryptionAES256:
		opts.ServerSideEncryption = encrypt.NewSSE()
	case mount.EncryptionKMS:
		sse, err := encrypt.NewSSEKMS(keyID, nil)
		if err != nil {
			return opts, fmt.Errorf("invalid KMS encryption settings: %w", err)
		}
		opts.ServerSideEncryption = sse
	case mount.EncryptionKMSDSSE:
		// no dedicated helper in the client, so the headers are set directly
		opts.UserMetadata = map[string]string{sseHeader: string(mode)}
		if keyID != "" {
			opts.UserMetadata[sseKeyHeader] = keyID
		}
	default:
		return opts, fmt.Errorf("unsupported encryption mode %q", mode)
	}
	return opts, nil
}

func isNegative(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "AccessDenied", "NoSuchBucket", "AllAccessDisabled", "KMS.AccessDeniedException", "InvalidBucketName":
		return true
	}
	return false
}
