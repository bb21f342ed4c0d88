package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/casaviva/hogar-backend/internal/app/service"
	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// ListCategories
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// CreateCategory
// POST /api/v1/admin/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := ctrl.categoryService.CreateCategory(input)
	if err != nil {
		ctrl.respondError(c, err, "create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory
// PUT /api/v1/admin/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(id, input)
	if err != nil {
		ctrl.respondError(c, err, "update category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory refuses categories that still have products
// DELETE /api/v1/admin/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		ctrl.respondError(c, err, "delete category")
		return
	}

	c.Status(http.StatusNoContent)
}

func (ctrl *CategoryController) respondError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.NotFound(c, apperrors.CategoryNotFound, "No se encontró la categoría")
	case errors.Is(err, service.ErrCategoryExists):
		apperrors.Conflict(c, apperrors.CategoryNameExists, "Ya existe una categoría con ese nombre")
	case errors.Is(err, service.ErrCategoryInUse):
		apperrors.Conflict(c, apperrors.CategoryInUse, "La categoría tiene productos y no se puede eliminar")
	default:
		middleware.GetLoggerFromContext(c).Error("Category write failed", err, map[string]interface{}{
			"operation":   operation,
			"category_id": c.Param("id"),
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, operation)
	}
}

func parseCategoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "El identificador de categoría no es válido")
		return 0, false
	}
	return uint(id), true
}
