package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/casaviva/hogar-backend/internal/app/service"
	"github.com/casaviva/hogar-backend/internal/catalog"
	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/casaviva/hogar-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProductController struct {
	productService service.ProductService
	exportService  service.ExportService
}

func NewProductController(productService service.ProductService, exportService service.ExportService) *ProductController {
	return &ProductController{
		productService: productService,
		exportService:  exportService,
	}
}

// ListProducts returns one catalog page
// GET /api/v1/products?q=&category=&sort=&page=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	spec := catalog.ParseSpec(c.Request.URL.Query())
	result, err := ctrl.productService.ListCatalog(c.Request.Context(), spec)
	if err != nil {
		log.Error("Failed to build catalog page", err, map[string]interface{}{
			"query": c.Request.URL.RawQuery,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    result.Items,
		"total_count": result.TotalCount,
		"total_pages": result.TotalPages,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"filters":     spec,
		"query":       spec.Values().Encode(),
	})
}

// GetProduct returns a product with its recommendations
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	externalID := c.Param("id")

	detail, err := ctrl.productService.GetProduct(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "No se encontró el producto")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": externalID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateProduct creates a product (admin)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{
			"error": err.Error(),
		})
		respondBindError(c, err)
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		ctrl.respondWriteError(c, err, "create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct replaces the editable fields of a product (admin)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{
			"product_id": c.Param("id"),
			"error":      err.Error(),
		})
		respondBindError(c, err)
		return
	}

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		ctrl.respondWriteError(c, err, "update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a product (admin)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	if err := ctrl.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		ctrl.respondWriteError(c, err, "delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportProducts sends the catalog as an .xlsx workbook (admin)
// GET /api/v1/admin/products/export
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var buf bytes.Buffer
	count, err := ctrl.exportService.WriteCatalog(&buf)
	if err != nil {
		log.Error("Failed to export catalog", err)
		apperrors.InternalError(c, "No se pudo exportar el catálogo")
		return
	}

	filename := fmt.Sprintf("catalogo-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())

	log.Info("Catalog export sent", map[string]interface{}{
		"products": count,
	})
}

func (ctrl *ProductController) respondWriteError(c *gin.Context, err error, operation string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "No se encontró el producto")
	case errors.Is(err, service.ErrCategoryNotFound):
		apperrors.BadRequest(c, apperrors.CategoryNotFound, "La categoría no existe")
	default:
		log.Error("Product write failed", err, map[string]interface{}{
			"operation":  operation,
			"product_id": c.Param("id"),
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, operation)
	}
}
