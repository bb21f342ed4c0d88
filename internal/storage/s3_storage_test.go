package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/casaviva/hogar-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestS3Storage(baseURL string) *S3Storage {
	return NewS3Storage(context.Background(), config.S3Config{
		Region:          "eu-west-1",
		Bucket:          "casaviva-test",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY",
		BaseURL:         baseURL,
	})
}

func TestS3Storage_PresignImageUpload(t *testing.T) {
	s := newTestS3Storage("")

	upload, err := s.PresignImageUpload(context.Background(), "image/png", 4096)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "products/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Contains(t, upload.UploadURL, "casaviva-test")
	assert.Contains(t, upload.UploadURL, "X-Amz-Signature")
	assert.Equal(t, "https://casaviva-test.s3.eu-west-1.amazonaws.com/"+upload.Key, upload.FileURL)
	assert.False(t, upload.ExpiresAt.IsZero())

	again, err := s.PresignImageUpload(context.Background(), "image/png", 4096)
	require.NoError(t, err)
	assert.NotEqual(t, upload.Key, again.Key)
}

func TestS3Storage_PresignRejectsInvalidImage(t *testing.T) {
	s := newTestS3Storage("")

	_, err := s.PresignImageUpload(context.Background(), "text/html", 100)
	assert.ErrorIs(t, err, ErrUnsupportedImageType)

	_, err = s.PresignImageUpload(context.Background(), "image/jpeg", MaxImageSize+1)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestS3Storage_FileURLWithBaseURL(t *testing.T) {
	s := newTestS3Storage("https://cdn.casaviva.local/")

	assert.Equal(t, "https://cdn.casaviva.local/products/a.jpg", s.FileURL("products/a.jpg"))
}
