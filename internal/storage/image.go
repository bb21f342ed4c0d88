package storage

import (
	"errors"
	"fmt"
	"strings"
)

// MaxImageSize is the largest product image accepted by either backend.
const MaxImageSize int64 = 5 << 20

var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds maximum size")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ValidateImage checks an upload's declared content type and size.
func ValidateImage(contentType string, size int64) error {
	if _, ok := imageExtensions[normalizeContentType(contentType)]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}
	if size <= 0 || size > MaxImageSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, size, MaxImageSize)
	}
	return nil
}

// ImageExtension returns the file extension stored for contentType.
func ImageExtension(contentType string) string {
	return imageExtensions[normalizeContentType(contentType)]
}

// normalizeContentType drops parameters such as "; charset=binary"
func normalizeContentType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
