package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/tab-pos/models"
)

func TestGetProducts(t *testing.T) {
	s := newTestServer(t, models.ModeTable, 1)

	var products []models.Product
	code, _ := s.do(http.MethodGet, "/api/products", nil, "", &products)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, products, 3)

	var p models.Product
	code, _ = s.do(http.MethodGet, "/api/products/p-burger", nil, "", &p)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, p.Steps, 1)
	assert.True(t, p.Steps[0].Required)

	code, _ = s.do(http.MethodGet, "/api/products/ghost", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateProduct(t *testing.T) {
	s := newTestServer(t, models.ModeTable, 1)
	body := gin.H{"id": "p-cola", "name": "Refrigerante", "class": "resale", "price": "6.50"}

	code, _ := s.do(http.MethodPost, "/api/products", body, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token := s.login()
	code, _ = s.do(http.MethodPost, "/api/products", gin.H{"name": "X", "class": "gadget"}, token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	code, _ = s.do(http.MethodPost, "/api/products", gin.H{"name": "X", "class": "resale", "price": "-1"}, token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	var p models.Product
	code, _ = s.do(http.MethodPost, "/api/products", body, token, &p)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, p.Sellable)
	assert.True(t, p.TracksStock)

	// the new product is sellable right away
	tab := s.seat("tab-1", 1, "p-cola")
	assert.Equal(t, "6.50", tab.Total.StringFixed(2))
}

func TestHealthAndPaymentMethods(t *testing.T) {
	s := newTestServer(t, models.ModeTable, 1)

	code, env := s.do(http.MethodGet, "/api/health", nil, "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", env.Message)

	var methods []models.PaymentMethod
	code, _ = s.do(http.MethodGet, "/api/payment-methods", nil, "", &methods)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, methods, 3)
	assert.Equal(t, "Dinheiro", methods[0].Name)
}
