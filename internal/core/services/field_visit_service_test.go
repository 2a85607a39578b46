package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/apperrors"
	"github.com/SscSPs/municipal_tax_app/internal/core/services"
	"github.com/SscSPs/municipal_tax_app/internal/repositories/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStorage struct {
	key         string
	contentType string
	body        string
}

func (s *recordingStorage) Save(_ context.Context, key, contentType string, _ int64, body io.Reader) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.key, s.contentType, s.body = key, contentType, string(b)
	return "https://files.example.test/" + key, nil
}

func TestUploadProof(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	storage := &recordingStorage{}
	now := time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC)
	svc := services.NewFieldVisitService(store, store, nil, storage, 16, services.WithClock(func() time.Time { return now }))

	url, err := svc.UploadProof(ctx, collector, "door.jpg", "image/jpeg", 5, strings.NewReader("jpeg!"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(storage.key, "proofs/2024/09/collector-1/"))
	assert.True(t, strings.HasSuffix(storage.key, ".jpg"))
	assert.Equal(t, "https://files.example.test/"+storage.key, url)
	assert.Equal(t, "jpeg!", storage.body)

	_, err = svc.UploadProof(ctx, collector, "notes.pdf", "application/pdf", 5, strings.NewReader("pdf"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UploadProof(ctx, collector, "big.png", "image/png", 17, strings.NewReader(strings.Repeat("x", 17)))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UploadProof(ctx, cashier, "door.jpg", "image/jpeg", 5, strings.NewReader("jpeg!"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUploadProof_NotConfigured(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewFieldVisitService(store, store, nil, nil, 0)

	_, err := svc.UploadProof(context.Background(), collector, "door.jpg", "image/jpeg", 5, strings.NewReader("jpeg!"))

	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}
