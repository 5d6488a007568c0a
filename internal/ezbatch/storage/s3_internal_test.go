package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/encrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/mount"
)

type fakeObjectAPI struct {
	objects []minio.ObjectInfo
	listErr error

	putErr     error
	putInfo    minio.UploadInfo
	putBucket  string
	putKey     string
	putOpts    minio.PutObjectOptions
	removeErr  error
	removed    []string
	removeOpts []minio.RemoveObjectOptions
	listOpts   minio.ListObjectsOptions
}

func (f *fakeObjectAPI) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.listOpts = opts
	ch := make(chan minio.ObjectInfo, len(f.objects)+1)
	if f.listErr != nil {
		ch <- minio.ObjectInfo{Err: f.listErr}
	}
	for _, obj := range f.objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.putBucket, f.putKey, f.putOpts = bucket, key, opts
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	info := f.putInfo
	info.Bucket, info.Key = bucket, key
	return info, nil
}

func (f *fakeObjectAPI) RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error {
	f.removed = append(f.removed, bucket+"/"+key)
	f.removeOpts = append(f.removeOpts, opts)
	return f.removeErr
}

func TestObjectExists(t *testing.T) {
	tests := []struct {
		name    string
		api     *fakeObjectAPI
		uri     string
		want    bool
		wantErr bool
	}{
		{"found", &fakeObjectAPI{objects: []minio.ObjectInfo{{Key: "raw/a.csv"}}}, "s3://data/raw/", true, false},
		{"empty listing", &fakeObjectAPI{}, "s3://data/raw/", false, false},
		{"missing bucket", &fakeObjectAPI{listErr: minio.ErrorResponse{Code: "NoSuchBucket"}}, "s3://nope/raw", false, false},
		{"access denied", &fakeObjectAPI{listErr: minio.ErrorResponse{Code: "AccessDenied"}}, "s3://data/raw", false, false},
		{"transport error", &fakeObjectAPI{listErr: errors.New("connection reset")}, "s3://data/raw", false, true},
		{"not an s3 uri", &fakeObjectAPI{}, "/local/path", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := newS3Checker(tt.api, nil)
			got, err := checker.ObjectExists(context.Background(), tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectExists_ListOptions(t *testing.T) {
	api := &fakeObjectAPI{}
	_, err := newS3Checker(api, nil).ObjectExists(context.Background(), "s3://data/raw/train.csv")
	require.NoError(t, err)
	assert.Equal(t, "raw/train.csv", api.listOpts.Prefix)
	assert.True(t, api.listOpts.Recursive)
	assert.Equal(t, listMaxKeys, api.listOpts.MaxKeys)
}

func TestIsWritable(t *testing.T) {
	t.Run("writable removes the marker", func(t *testing.T) {
		api := &fakeObjectAPI{putInfo: minio.UploadInfo{VersionID: "v1"}}
		ok, err := newS3Checker(api, nil).IsWritable(context.Background(), "results", mount.EncryptionAES256, "")
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Equal(t, "results", api.putBucket)
		assert.True(t, strings.HasPrefix(api.putKey, markerPrefix))
		require.NotNil(t, api.putOpts.ServerSideEncryption)
		assert.Equal(t, encrypt.S3, api.putOpts.ServerSideEncryption.Type())

		require.Equal(t, []string{"results/" + api.putKey}, api.removed)
		assert.Equal(t, "v1", api.removeOpts[0].VersionID)
	})

	t.Run("rejected upload is a negative answer", func(t *testing.T) {
		api := &fakeObjectAPI{putErr: minio.ErrorResponse{Code: "AccessDenied"}}
		ok, err := newS3Checker(api, nil).IsWritable(context.Background(), "locked", mount.EncryptionNone, "")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, api.removed)
	})

	t.Run("transport error is returned", func(t *testing.T) {
		api := &fakeObjectAPI{putErr: errors.New("dial tcp: timeout")}
		_, err := newS3Checker(api, nil).IsWritable(context.Background(), "results", mount.EncryptionNone, "")
		assert.Error(t, err)
	})

	t.Run("marker cleanup failure does not change the answer", func(t *testing.T) {
		api := &fakeObjectAPI{removeErr: errors.New("denied")}
		ok, err := newS3Checker(api, nil).IsWritable(context.Background(), "results", mount.EncryptionNone, "")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestPutOptions(t *testing.T) {
	opts, err := putOptions(mount.EncryptionNone, "")
	require.NoError(t, err)
	assert.Nil(t, opts.ServerSideEncryption)

	opts, err = putOptions(mount.EncryptionKMS, "alias/data")
	require.NoError(t, err)
	require.NotNil(t, opts.ServerSideEncryption)
	assert.Equal(t, encrypt.KMS, opts.ServerSideEncryption.Type())

	opts, err = putOptions(mount.EncryptionKMSDSSE, "alias/data")
	require.NoError(t, err)
	assert.Equal(t, "aws:kms:dsse", opts.UserMetadata[sseHeader])
	assert.Equal(t, "alias/data", opts.UserMetadata[sseKeyHeader])

	_, err = putOptions(mount.EncryptionMode("rot13"), "")
	assert.Error(t, err)
}
