package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProofStorage_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalProofStorage(dir, "http://localhost:8080/")
	require.NoError(t, err)

	body := []byte("jpeg-bytes")
	url, err := store.Save(context.Background(), "proofs/2024/09/collector-1/abc.jpg", "image/jpeg", int64(len(body)), bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/proofs/2024/09/collector-1/abc.jpg", url)

	stored, err := os.ReadFile(filepath.Join(dir, "proofs", "2024", "09", "collector-1", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, body, stored)

	_, err = store.Save(context.Background(), "proofs/2024/09/collector-1/abc.jpg", "image/jpeg", int64(len(body)), bytes.NewReader(body))
	assert.Error(t, err, "existing proofs are never overwritten")
}

func TestLocalProofStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalProofStorage(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../outside.jpg", "image/jpeg", 1, bytes.NewReader([]byte("x")))
	assert.Error(t, err)
}

func TestLocalProofStorage_SizeMismatchRemovesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalProofStorage(dir, "http://localhost:8080")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "proofs/short.png", "image/png", 10, bytes.NewReader([]byte("abc")))
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "proofs", "short.png"))
	assert.True(t, os.IsNotExist(statErr))
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3ProofStorage_Save(t *testing.T) {
	putter := &fakePutter{}
	store := newS3ProofStorage(putter, "proofs-bucket", "http://minio:9000/proofs-bucket")

	url, err := store.Save(context.Background(), "proofs/2024/09/c/abc.png", "image/png", 3, bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/proofs-bucket/proofs/2024/09/c/abc.png", url)
	require.NotNil(t, putter.input)
	assert.Equal(t, "proofs-bucket", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(putter.input.ContentLength))
	assert.Equal(t, []byte("png"), putter.body)
}

func TestS3ProofStorage_UploadFailure(t *testing.T) {
	store := newS3ProofStorage(&fakePutter{err: errors.New("access denied")}, "b", "https://b.s3.us-east-1.amazonaws.com")

	_, err := store.Save(context.Background(), "proofs/x.jpg", "image/jpeg", 1, bytes.NewReader([]byte("x")))
	assert.ErrorContains(t, err, "access denied")
}
