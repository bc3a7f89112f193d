package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-product-service/internal/api/http/handlers"
	"github.com/spec-kit/insurance-product-service/internal/auth"
	"github.com/spec-kit/insurance-product-service/internal/domain"
	"github.com/spec-kit/insurance-product-service/internal/observability"
	"github.com/spec-kit/insurance-product-service/internal/service"
)

const testSecret = "test-secret"

type memProductRepo struct {
	products map[string]*domain.Product
	nextID   int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*domain.Product{}, nextID: 1}
}

func (m *memProductRepo) FindByCodeAndLocation(_ context.Context, code, location string) (*domain.Product, error) {
	p, ok := m.products[code]
	if !ok || p.Location != location {
		return nil, pgx.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (m *memProductRepo) GetByCode(_ context.Context, code string) (*domain.Product, error) {
	p, ok := m.products[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (m *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	product.ID = m.nextID
	m.nextID++
	clone := *product
	m.products[product.ProductCode] = &clone
	return nil
}

func (m *memProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := m.products[product.ProductCode]; !ok {
		return pgx.ErrNoRows
	}
	clone := *product
	m.products[product.ProductCode] = &clone
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, code string) (int64, error) {
	if _, ok := m.products[code]; !ok {
		return 0, nil
	}
	delete(m.products, code)
	return 1, nil
}

func newTestServer(t *testing.T, secret string) (*fiber.App, *memProductRepo) {
	t.Helper()

	repo := newMemProductRepo()
	productService := service.NewProductService(repo, nil, nil)

	logger := zap.NewNop()
	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)

	authMiddleware := auth.NewAuthMiddleware(auth.NewTokenVerifier(secret), logger)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Products:       handlers.NewProductsHandler(productService),
		AuthMiddleware: authMiddleware,
		AdminRole:      "admin",
	})
	return app, repo
}

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func jsonRequest(method, target, token string, payload any) *http.Request {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestProductRoutes_AdminCanMutate(t *testing.T) {
	app, repo := newTestServer(t, testSecret)
	adminToken := mintToken(t, jwt.MapClaims{
		"sub": "123", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})

	createBody := map[string]any{"productCode": "1000", "location": "West Malaysia", "price": 300}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/product", adminToken, createBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID          int64   `json:"id"`
			ProductCode string  `json:"productCode"`
			Price       float64 `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "1000", created.Data.ProductCode)
	assert.NotZero(t, created.Data.ID)

	resp, err = app.Test(jsonRequest(http.MethodPut, "/product?productCode=1000", adminToken,
		map[string]any{"location": "East Malaysia", "price": 450}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "East Malaysia", repo.products["1000"].Location)

	resp, err = app.Test(jsonRequest(http.MethodDelete, "/product?productCode=1000", adminToken, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, repo.products)
}

func TestProductRoutes_NonAdminForbidden(t *testing.T) {
	app, repo := newTestServer(t, testSecret)
	userToken := mintToken(t, jwt.MapClaims{
		"sub": "456", "role": "user", "exp": time.Now().Add(time.Hour).Unix(),
	})

	createBody := map[string]any{"productCode": "1000", "location": "West Malaysia", "price": 300}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/product", userToken, createBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, repo.products, "handler must not run")
}

func TestProductRoutes_NoTokenUnauthorized(t *testing.T) {
	app, _ := newTestServer(t, testSecret)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/product", "",
		map[string]any{"productCode": "1000", "location": "West Malaysia", "price": 300}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductRoutes_ReadRequiresAuthentication(t *testing.T) {
	app, repo := newTestServer(t, testSecret)
	repo.products["1000"] = &domain.Product{ID: 1, ProductCode: "1000", Location: "West Malaysia", Price: 300}

	// Expired token fails even on the unprivileged read route.
	expired := mintToken(t, jwt.MapClaims{
		"sub": "456", "role": "user", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	resp, err := app.Test(jsonRequest(http.MethodGet, "/product?productCode=1000&location=West+Malaysia", expired, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Any authenticated caller can read, role or not.
	userToken := mintToken(t, jwt.MapClaims{"sub": "456", "exp": time.Now().Add(time.Hour).Unix()})
	resp, err = app.Test(jsonRequest(http.MethodGet, "/product?productCode=1000&location=West+Malaysia", userToken, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var found struct {
		Data struct {
			Price float64 `json:"price"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	assert.Equal(t, 300.0, found.Data.Price)
}

func TestProductRoutes_NotFoundAndValidation(t *testing.T) {
	app, _ := newTestServer(t, testSecret)
	userToken := mintToken(t, jwt.MapClaims{"sub": "456", "exp": time.Now().Add(time.Hour).Unix()})
	adminToken := mintToken(t, jwt.MapClaims{"sub": "123", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})

	resp, err := app.Test(jsonRequest(http.MethodGet, "/product?productCode=9999&location=Nowhere", userToken, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/product", userToken, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/product", adminToken,
		map[string]any{"productCode": "1000", "location": "West Malaysia", "price": -1}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodDelete, "/product?productCode=9999", adminToken, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductRoutes_MisconfiguredSecretIsInternalError(t *testing.T) {
	app, _ := newTestServer(t, "")
	token := mintToken(t, jwt.MapClaims{"sub": "123", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})

	resp, err := app.Test(jsonRequest(http.MethodGet, "/product?productCode=1000&location=X", token, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealthLive(t *testing.T) {
	app, _ := newTestServer(t, testSecret)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
