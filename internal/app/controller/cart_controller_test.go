package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartFrom(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeJSON(t, w)["cart"].(map[string]interface{})
}

func TestCartController_SessionLifecycle(t *testing.T) {
	app := setupTestApp(t)
	app.addProduct(t, "lamp", "Lámpara Nórdica", "Iluminación", 40, 2)
	app.addProduct(t, "rug", "Alfombra", "Textiles", 90, 5)

	w := app.do(http.MethodGet, "/api/v1/cart", nil)
	state := cartFrom(t, w)
	assert.Empty(t, state["items"])
	assert.Equal(t, false, state["isOpen"])
	session := withCookies(w.Result().Cookies())

	for i := 0; i < 3; i++ {
		state = cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": "lamp"}, session))
	}
	items := state["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["quantity"])
	assert.Equal(t, float64(2), state["totalItems"])
	assert.Equal(t, float64(80), state["totalPrice"])

	state = cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": "rug"}, session))
	assert.Equal(t, float64(3), state["totalItems"])

	state = cartFrom(t, app.do(http.MethodPut, "/api/v1/cart/items/rug", map[string]int{"quantity": 4}, session))
	assert.Equal(t, float64(6), state["totalItems"])
	assert.Equal(t, float64(440), state["totalPrice"])

	state = cartFrom(t, app.do(http.MethodPut, "/api/v1/cart/items/lamp", map[string]int{"quantity": 0}, session))
	assert.Len(t, state["items"], 1)

	state = cartFrom(t, app.do(http.MethodDelete, "/api/v1/cart/items/rug", nil, session))
	assert.Empty(t, state["items"])
	assert.Equal(t, float64(0), state["totalPrice"])
}

func TestCartController_OpenCloseToggle(t *testing.T) {
	app := setupTestApp(t)
	w := app.do(http.MethodGet, "/api/v1/cart", nil)
	session := withCookies(w.Result().Cookies())

	assert.Equal(t, true, cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/open", nil, session))["isOpen"])
	assert.Equal(t, false, cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/toggle", nil, session))["isOpen"])
	assert.Equal(t, true, cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/toggle", nil, session))["isOpen"])
	assert.Equal(t, false, cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/close", nil, session))["isOpen"])
}

func TestCartController_ClearKeepsOpenFlag(t *testing.T) {
	app := setupTestApp(t)
	app.addProduct(t, "rug", "Alfombra", "Textiles", 90, 5)
	w := app.do(http.MethodGet, "/api/v1/cart", nil)
	session := withCookies(w.Result().Cookies())

	cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": "rug"}, session))
	cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/open", nil, session))

	state := cartFrom(t, app.do(http.MethodDelete, "/api/v1/cart", nil, session))
	assert.Empty(t, state["items"])
	assert.Equal(t, float64(0), state["totalItems"])
	assert.Equal(t, true, state["isOpen"])
}

func TestCartController_SessionsAreIsolated(t *testing.T) {
	app := setupTestApp(t)
	app.addProduct(t, "rug", "Alfombra", "Textiles", 90, 5)

	alice := withCookies(app.do(http.MethodGet, "/api/v1/cart", nil).Result().Cookies())
	bob := withCookies(app.do(http.MethodGet, "/api/v1/cart", nil).Result().Cookies())

	cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": "rug"}, alice))

	assert.Len(t, cartFrom(t, app.do(http.MethodGet, "/api/v1/cart", nil, alice))["items"], 1)
	assert.Empty(t, cartFrom(t, app.do(http.MethodGet, "/api/v1/cart", nil, bob))["items"])
}

func TestCartController_Errors(t *testing.T) {
	app := setupTestApp(t)
	session := withCookies(app.do(http.MethodGet, "/api/v1/cart", nil).Result().Cookies())

	w := app.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": "missing"}, session)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.ProductNotFound)

	w = app.do(http.MethodPost, "/api/v1/cart/items", map[string]string{}, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodPut, "/api/v1/cart/items/x", map[string]string{}, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity")
}

func TestCartController_AddOutOfStockLeavesCartUnchanged(t *testing.T) {
	app := setupTestApp(t)
	app.addProduct(t, "mimbre", "Colgante de mimbre", "Iluminación", 79, 0)
	app.addProduct(t, "rug", "Alfombra", "Textiles", 90, 5)
	session := withCookies(app.do(http.MethodGet, "/api/v1/cart", nil).Result().Cookies())

	cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": "rug"}, session))
	state := cartFrom(t, app.do(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": "mimbre"}, session))

	items := state["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "rug", items[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(1), state["totalItems"])
}
