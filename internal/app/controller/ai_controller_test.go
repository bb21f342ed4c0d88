package controller

import (
	"net/http"
	"testing"

	"github.com/casaviva/hogar-backend/internal/app/service"
	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAIController_AnalyzeImage(t *testing.T) {
	app := setupTestApp(t)
	token := app.adminToken(t)

	app.ai.On("AnalyzeProductImage", mock.Anything, "data:image/png;base64,AAAA", []string{"Iluminación", "Textiles", "Muebles"}).
		Return(&service.ImageAnalysis{Title: "Lámpara de pie", Category: "Iluminación", Tags: []string{"latón"}}, nil)

	w := app.do(http.MethodPost, "/api/v1/admin/ai/analyze-image", map[string]string{"image_url": "data:image/png;base64,AAAA"}, withToken(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	analysis := decodeJSON(t, w)["analysis"].(map[string]interface{})
	assert.Equal(t, "Lámpara de pie", analysis["title"])
	app.ai.AssertExpectations(t)
}

func TestAIController_AnalyzeImage_RejectsReference(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(http.MethodPost, "/api/v1/admin/ai/analyze-image", map[string]string{"image_url": "file:///etc/passwd"}, withToken(app.adminToken(t)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image_url")
	app.ai.AssertNotCalled(t, "AnalyzeProductImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestAIController_SuggestDescription_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"Unavailable", service.ErrAIUnavailable, http.StatusServiceUnavailable, apperrors.AIUnavailable},
		{"Invalid response", service.ErrAIInvalidResponse, http.StatusBadGateway, apperrors.AIInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t)
			app.ai.On("SuggestDescription", mock.Anything, mock.Anything).Return("", tt.err)

			w := app.do(http.MethodPost, "/api/v1/admin/ai/suggest-description", map[string]string{"title": "Cojín"}, withToken(app.adminToken(t)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeJSON(t, w)["error"])
		})
	}
}

func TestAIController_SuggestDescription(t *testing.T) {
	app := setupTestApp(t)
	app.ai.On("SuggestDescription", mock.Anything, service.DescriptionRequest{Title: "Cojín", Category: "Textiles"}).
		Return("Un cojín suave.", nil)

	w := app.do(http.MethodPost, "/api/v1/admin/ai/suggest-description",
		map[string]string{"title": "Cojín", "category": "Textiles"}, withToken(app.adminToken(t)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Un cojín suave.", decodeJSON(t, w)["description"])
}

func TestAIController_GenerateImagePrompt_Save(t *testing.T) {
	app := setupTestApp(t)
	app.addProduct(t, "lamp", "Lámpara", "Iluminación", 40, 2)
	app.ai.On("GenerateImagePrompt", mock.Anything, mock.Anything).Return("A brass floor lamp in a bright room", nil)
	token := app.adminToken(t)

	w := app.do(http.MethodPost, "/api/v1/admin/ai/image-prompt", map[string]interface{}{
		"title":      "Lámpara",
		"product_id": "lamp",
		"save":       true,
	}, withToken(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decodeJSON(t, w)["saved"])

	product, err := app.products.FindByExternalID("lamp")
	require.NoError(t, err)
	assert.Equal(t, "A brass floor lamp in a bright room", product.ImagePrompt)

	w = app.do(http.MethodPost, "/api/v1/admin/ai/image-prompt", map[string]interface{}{
		"title": "Lámpara",
		"save":  true,
	}, withToken(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPost, "/api/v1/admin/ai/image-prompt", map[string]interface{}{
		"title":      "Lámpara",
		"product_id": "missing",
		"save":       true,
	}, withToken(token))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
