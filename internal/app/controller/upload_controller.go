package controller

import (
	"context"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/casaviva/hogar-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

// ImagePresigner signs direct browser uploads
type ImagePresigner interface {
	PresignImageUpload(ctx context.Context, contentType string, size int64) (*storage.PresignedUpload, error)
}

// ImageUploader stores an image sent through the API
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader) (*storage.UploadedImage, error)
}

type UploadController struct {
	presigner ImagePresigner
	uploader  ImageUploader
}

// NewUploadController takes either backend as nil when it is not configured.
func NewUploadController(presigner ImagePresigner, uploader ImageUploader) *UploadController {
	return &UploadController{
		presigner: presigner,
		uploader:  uploader,
	}
}

type PresignedURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// GeneratePresignedURL signs an S3 PUT for a product image
// POST /api/v1/admin/uploads/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.presigner == nil {
		apperrors.ServiceUnavailable(c, apperrors.UploadNotConfigured, "La subida directa de imágenes no está configurada")
		return
	}

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	upload, err := ctrl.presigner.PresignImageUpload(c.Request.Context(), req.ContentType, req.Size)
	if err != nil {
		if respondImageValidationError(c, err) {
			return
		}
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"content_type": req.ContentType,
			"size":         req.Size,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "No se pudo preparar la subida de la imagen")
		return
	}

	c.JSON(http.StatusOK, upload)
}

// UploadImage stores a multipart "image" field in Cloudinary
// POST /api/v1/admin/uploads/image
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.uploader == nil {
		apperrors.ServiceUnavailable(c, apperrors.UploadNotConfigured, "La subida de imágenes no está configurada")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImageSize+1<<20)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "La imagen supera el tamaño máximo de 5 MB")
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Falta la imagen en el campo \"image\"")
		return
	}

	if err := storage.ValidateImage(fileHeader.Header.Get("Content-Type"), fileHeader.Size); err != nil {
		respondImageValidationError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "No se pudo leer la imagen")
		return
	}
	defer file.Close()

	image, err := ctrl.uploader.UploadImage(c.Request.Context(), file)
	if err != nil {
		log.Error("Image upload failed", err, map[string]interface{}{
			"filename": fileHeader.Filename,
			"size":     fileHeader.Size,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.UploadFailed, "No se pudo subir la imagen. Inténtalo de nuevo en unos minutos")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image": image})
}

func respondImageValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, storage.ErrUnsupportedImageType):
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Solo se admiten imágenes JPEG, PNG, GIF o WEBP")
	case errors.Is(err, storage.ErrImageTooLarge):
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "La imagen supera el tamaño máximo de 5 MB")
	default:
		return false
	}
	return true
}
