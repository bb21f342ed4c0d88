package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
	}{
		{"nil error", nil, "list products", InternalServerError},
		{"product not found", gorm.ErrRecordNotFound, "get product", ProductNotFound},
		{"wrapped category not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), "update category", CategoryNotFound},
		{"duplicate category name", errors.New(`ERROR: duplicate key value violates unique constraint "idx_categories_name" (SQLSTATE 23505)`), "create category", CategoryNameExists},
		{"sqlite unique external id", errors.New("UNIQUE constraint failed: products.external_id"), "create product", ProductExternalIDDup},
		{"category still referenced", errors.New(`update or delete on table "categories" violates foreign key constraint "fk_products_category" on table "products" (SQLSTATE 23503): Key (id)=(1) is still referenced`), "delete category", CategoryInUse},
		{"missing category reference", errors.New(`insert or update on table "products" violates foreign key constraint "fk_products_category"`), "create product", CategoryNotFound},
		{"not null title", errors.New(`null value in column "title" violates not-null constraint`), "create product", ValidationRequired},
		{"check rating", errors.New(`new row violates check constraint "chk_products_rating"`), "update product", ValidationInvalidRange},
		{"timeout", errors.New("dial tcp: i/o timeout"), "list products", InternalExternalAPI},
		{"unknown", errors.New("boom"), "create product", InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
			if tt.err != nil {
				assert.NotContains(t, info.Message, "SQLSTATE")
			}
		})
	}
}

func TestParseAndRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ParseAndRespond(c, http.StatusNotFound, gorm.ErrRecordNotFound, "get product")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"PRODUCT_NOT_FOUND","message":"No se encontró el producto"}`, w.Body.String())
}
