package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/casaviva/hogar-backend/internal/app/service"
	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AIController struct {
	aiService       service.AIService
	productService  service.ProductService
	categoryService service.CategoryService
}

func NewAIController(
	aiService service.AIService,
	productService service.ProductService,
	categoryService service.CategoryService,
) *AIController {
	return &AIController{
		aiService:       aiService,
		productService:  productService,
		categoryService: categoryService,
	}
}

// ImageURL is an http(s) URL or a data:image/... URI
type AnalyzeImageRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

type ImagePromptRequest struct {
	service.ImagePromptRequest
	ProductID string `json:"product_id"`
	Save      bool   `json:"save"`
}

// AnalyzeImage drafts title, description, category and tags from a photo
// POST /api/v1/admin/ai/analyze-image
func (ctrl *AIController) AnalyzeImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if !isImageReference(req.ImageURL) {
		apperrors.RespondWithValidationError(c, map[string]string{
			"image_url": "Debe ser una URL http(s) o un data URI de imagen",
		})
		return
	}

	var categoryNames []string
	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Warn("Analyzing image without category list", map[string]interface{}{
			"error": err.Error(),
		})
	}
	for _, category := range categories {
		categoryNames = append(categoryNames, category.Name)
	}

	analysis, err := ctrl.aiService.AnalyzeProductImage(c.Request.Context(), req.ImageURL, categoryNames)
	if err != nil {
		respondAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// SuggestDescription writes a product description
// POST /api/v1/admin/ai/suggest-description
func (ctrl *AIController) SuggestDescription(c *gin.Context) {
	var req service.DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	description, err := ctrl.aiService.SuggestDescription(c.Request.Context(), req)
	if err != nil {
		respondAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}

// GenerateImagePrompt writes an image-generation prompt and, with save and
// product_id, stores it on the product.
// POST /api/v1/admin/ai/image-prompt
func (ctrl *AIController) GenerateImagePrompt(c *gin.Context) {
	var req ImagePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Save && req.ProductID == "" {
		apperrors.RespondWithValidationError(c, map[string]string{
			"product_id": "Campo obligatorio para guardar el prompt",
		})
		return
	}

	prompt, err := ctrl.aiService.GenerateImagePrompt(c.Request.Context(), req.ImagePromptRequest)
	if err != nil {
		respondAIError(c, err)
		return
	}

	if req.Save {
		if err := ctrl.productService.SaveImagePrompt(c.Request.Context(), req.ProductID, prompt); err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				apperrors.NotFound(c, apperrors.ProductNotFound, "No se encontró el producto")
				return
			}
			middleware.GetLoggerFromContext(c).Error("Failed to save image prompt", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"prompt": prompt,
		"saved":  req.Save,
	})
}

func respondAIError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrAIInvalidResponse):
		log.Warn("AI returned an unusable response", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.AIInvalidResponse, "El asistente devolvió una respuesta no válida. Inténtalo de nuevo")
	case errors.Is(err, service.ErrAIUnavailable):
		log.Warn("AI unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.ServiceUnavailable(c, apperrors.AIUnavailable, "El asistente no está disponible en este momento")
	default:
		log.Error("AI request failed", err)
		apperrors.InternalError(c, "")
	}
}

func isImageReference(ref string) bool {
	return strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "data:image/")
}
