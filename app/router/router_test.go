package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfit-studio/app/controller"
	"outfit-studio/models"
	"outfit-studio/repository"
	"outfit-studio/service"
)

type fakeAuth struct{}

func (fakeAuth) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if req.Password != "secret" {
		return nil, service.ErrUnauthorized
	}
	return &models.AuthResponse{Token: "good-token", User: models.User{ID: "u1", Email: req.Email}}, nil
}

func (fakeAuth) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	return &models.AuthResponse{Token: "good-token", User: models.User{ID: "u2", Email: req.Email, Name: req.Name}}, nil
}

func (fakeAuth) Verify(ctx context.Context, token string) (*models.User, error) {
	if token != "good-token" {
		return nil, service.ErrUnauthorized
	}
	return &models.User{ID: "u1", Email: "ana@example.com"}, nil
}

type fakeProducts struct {
	err error
}

func (f fakeProducts) Search(ctx context.Context, query string, gender string) ([]models.CatalogItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.CatalogItem{{ID: "p1", Title: "Red Dress", Price: 49.99}}, nil
}

type memCart struct {
	lines map[string][]models.CartLine
}

func newMemCart() *memCart {
	return &memCart{lines: make(map[string][]models.CartLine)}
}

func (m *memCart) UpsertLine(ctx context.Context, userID string, line models.CartLine) (*models.CartLine, error) {
	for i := range m.lines[userID] {
		if m.lines[userID][i].ProductID == line.ProductID {
			m.lines[userID][i].Qty++
			out := m.lines[userID][i]
			return &out, nil
		}
	}
	line.Qty = 1
	m.lines[userID] = append(m.lines[userID], line)
	return &line, nil
}

func (m *memCart) UpsertLines(ctx context.Context, userID string, lines []models.CartLine) error {
	for _, line := range lines {
		if _, err := m.UpsertLine(ctx, userID, line); err != nil {
			return err
		}
	}
	return nil
}

func (m *memCart) ListLines(ctx context.Context, userID string) ([]models.CartLine, error) {
	out := make([]models.CartLine, len(m.lines[userID]))
	copy(out, m.lines[userID])
	return out, nil
}

func (m *memCart) SetQty(ctx context.Context, userID string, productID string, qty int) (*models.CartLine, error) {
	for i, line := range m.lines[userID] {
		if line.ProductID != productID {
			continue
		}
		if qty == 0 {
			m.lines[userID] = append(m.lines[userID][:i], m.lines[userID][i+1:]...)
			return nil, nil
		}
		m.lines[userID][i].Qty = qty
		out := m.lines[userID][i]
		return &out, nil
	}
	return nil, repository.ErrCartLineNotFound
}

func (m *memCart) RemoveLine(ctx context.Context, userID string, productID string) error {
	_, err := m.SetQty(ctx, userID, productID, 0)
	return err
}

type stubPreview struct{}

func (stubPreview) RenderPNG(ctx context.Context, pageHTML []byte, size string) ([]byte, error) {
	return []byte("\x89PNG-" + size), nil
}

type testServer struct {
	mux  *http.ServeMux
	cart *memCart
}

func newTestServer(products service.ProductServiceInterface) *testServer {
	sessions := service.NewSessionStore(time.Hour)
	cart := newMemCart()
	auth := fakeAuth{}

	mux := http.NewServeMux()
	SetupRoutes(mux, &Controllers{
		Auth:        controller.NewAuthController(auth),
		Product:     controller.NewProductController(products),
		Outfit:      controller.NewOutfitController(sessions, service.NewRenderService(nil), stubPreview{}),
		Checkout:    controller.NewCheckoutController(sessions, cart),
		Cart:        controller.NewCartController(cart),
		AuthService: auth,
	})
	return &testServer{mux: mux, cart: cart}
}

func (s *testServer) do(t *testing.T, method, path, tab, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if tab != "" {
		req.Header.Set(controller.TabSessionHeader, tab)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createAvatar(t *testing.T, s *testServer, tab string) models.BaseAvatarConfig {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/avatar", tab, "", map[string]string{
		"ageGroup": "adult",
		"gender":   "female",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.BaseAvatarConfig](t, rec)
}

func TestPing(t *testing.T) {
	s := newTestServer(fakeProducts{})
	rec := s.do(t, http.MethodGet, "/ping", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOutfitToCartScenario(t *testing.T) {
	s := newTestServer(fakeProducts{})
	tab := "tab-1"

	avatar := createAvatar(t, s, tab)
	assert.NotEmpty(t, avatar.ID)
	assert.Equal(t, "female", avatar.Gender)

	rec := s.do(t, http.MethodPost, "/api/outfit/items", tab, "", map[string]any{
		"item": map[string]any{"id": "dress-1", "title": "Red Dress", "price": 49.99, "imageUrl": "https://img/dress.png"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	dress := decode[models.AppliedItem](t, rec)
	assert.Equal(t, models.RegionDress, dress.Region)

	rec = s.do(t, http.MethodPost, "/api/outfit/items", tab, "", map[string]any{
		"item": map[string]any{"product_id": "shoes-1", "name": "Running Shoes", "price": "79"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/outfit", tab, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[models.OutfitStateResponse](t, rec)
	require.Len(t, state.Items, 2)
	assert.Equal(t, models.RegionDress, state.Items[0].Region)
	assert.Equal(t, models.RegionShoes, state.Items[1].Region)
	assert.Equal(t, 128.99, state.Total)
	assert.Equal(t, "$128.99", state.TotalFormatted)

	rec = s.do(t, http.MethodPost, "/api/outfit/finalize", tab, "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	finalized := decode[models.FinalizeResponse](t, rec)
	assert.Equal(t, 2, finalized.ItemCount)
	assert.Equal(t, avatar.ID, finalized.Payload.Avatar.ID)

	// The builder session ends with the handoff
	rec = s.do(t, http.MethodGet, "/api/outfit", tab, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/checkout", tab, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[models.CheckoutSummaryResponse](t, rec)
	assert.Equal(t, models.CheckoutStateReady, summary.State)
	assert.Equal(t, 128.99, summary.Total)

	rec = s.do(t, http.MethodPost, "/api/checkout/cart", tab, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.cart.lines["u1"] = []models.CartLine{{ProductID: "shoes-1", Title: "Running Shoes", Price: 79, Qty: 2}}
	rec = s.do(t, http.MethodPost, "/api/checkout/cart", tab, "good-token", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	added := decode[models.AddToCartResponse](t, rec)
	assert.Equal(t, 2, added.Added)
	require.Len(t, added.Cart, 2)
	assert.Equal(t, 3, added.Cart[0].Qty)
	assert.Equal(t, "dress-1", added.Cart[1].ProductID)
	assert.Equal(t, 1, added.Cart[1].Qty)

	rec = s.do(t, http.MethodGet, "/api/cart", tab, "good-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[models.CartResponse](t, rec)
	assert.Equal(t, "$286.99", cart.TotalFormatted)
}

func TestFinalizeEmptyOutfitIsRejected(t *testing.T) {
	s := newTestServer(fakeProducts{})
	createAvatar(t, s, "tab-2")

	rec := s.do(t, http.MethodPost, "/api/outfit/finalize", "tab-2", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "outfit has no items")

	// Still on the builder with the same avatar
	rec = s.do(t, http.MethodGet, "/api/outfit", "tab-2", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckoutWithoutHandoffShowsEmptyState(t *testing.T) {
	s := newTestServer(fakeProducts{})

	rec := s.do(t, http.MethodGet, "/api/checkout", "tab-3", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[models.CheckoutSummaryResponse](t, rec)
	assert.Equal(t, models.CheckoutStateEmpty, summary.State)
	assert.Empty(t, summary.Items)

	rec = s.do(t, http.MethodPost, "/api/checkout/buy-now", "tab-3", "good-token", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandoffIsScopedToTab(t *testing.T) {
	s := newTestServer(fakeProducts{})
	createAvatar(t, s, "tab-a")
	rec := s.do(t, http.MethodPost, "/api/outfit/items", "tab-a", "", map[string]any{
		"item": map[string]any{"id": "hat-1", "title": "Sun Hat", "price": 12},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/outfit/finalize", "tab-a", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/checkout", "tab-b", "", nil)
	summary := decode[models.CheckoutSummaryResponse](t, rec)
	assert.Equal(t, models.CheckoutStateEmpty, summary.State)
}

func TestMoveAndRemoveItem(t *testing.T) {
	s := newTestServer(fakeProducts{})
	createAvatar(t, s, "tab-4")
	rec := s.do(t, http.MethodPost, "/api/outfit/items", "tab-4", "", map[string]any{
		"item": map[string]any{"id": "w1", "title": "Gold Watch", "price": 120},
	})
	applied := decode[models.AppliedItem](t, rec)

	rec = s.do(t, http.MethodPatch, "/api/outfit/items/"+applied.InstanceID, "tab-4", "", models.MoveItemRequest{
		Position: models.Position{X: 150, Y: 10},
		Scale:    9,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	moved := decode[models.AppliedItem](t, rec)
	assert.Equal(t, 100.0, moved.Position.X)
	assert.Equal(t, 3.0, moved.Scale)

	rec = s.do(t, http.MethodPatch, "/api/outfit/items/missing", "tab-4", "", models.MoveItemRequest{})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/outfit/items/"+applied.InstanceID, "tab-4", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[models.OutfitStateResponse](t, rec)
	assert.Empty(t, state.Items)

	rec = s.do(t, http.MethodDelete, "/api/outfit/items/missing", "tab-4", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAvatarRenderingEndpoints(t *testing.T) {
	s := newTestServer(fakeProducts{})
	createAvatar(t, s, "tab-5")

	rec := s.do(t, http.MethodGet, "/api/outfit/avatar.svg", "tab-5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "<svg"))

	rec = s.do(t, http.MethodGet, "/api/outfit/preview.png?size=thumb", "tab-5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG-thumb", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/outfit/preview.png?size=huge", "tab-5", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAvatarValidatesInput(t *testing.T) {
	s := newTestServer(fakeProducts{})
	rec := s.do(t, http.MethodPost, "/api/avatar", "", "", map[string]string{"ageGroup": "teen", "gender": "female"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/avatar", "", "", map[string]string{"ageGroup": "kid", "gender": "boy"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/avatar", "", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCreateAvatarIssuesTabSession(t *testing.T) {
	s := newTestServer(fakeProducts{})
	rec := s.do(t, http.MethodPost, "/api/avatar", "", "", map[string]string{"ageGroup": "kid", "gender": "other"})
	require.Equal(t, http.StatusCreated, rec.Code)

	tab := rec.Header().Get(controller.TabSessionHeader)
	require.NotEmpty(t, tab)

	rec = s.do(t, http.MethodGet, "/api/avatar", tab, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kid", decode[models.BaseAvatarConfig](t, rec).AgeGroup)
}

func TestProductSearch(t *testing.T) {
	s := newTestServer(fakeProducts{})
	rec := s.do(t, http.MethodGet, "/api/products/search?query=dress", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[models.ProductSearchResponse](t, rec)
	assert.Equal(t, "dress", resp.Query)
	assert.Len(t, resp.Products, 1)

	rec = s.do(t, http.MethodGet, "/api/products/search", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductSearchUpstreamFailureIsRetryable(t *testing.T) {
	s := newTestServer(fakeProducts{err: &service.UpstreamError{Op: "search products", StatusCode: http.StatusServiceUnavailable}})
	rec := s.do(t, http.MethodGet, "/api/products/search?query=dress", "", "", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["retryable"])
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(fakeProducts{})

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", "", models.LoginRequest{Email: "ana@example.com", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "good-token", decode[models.AuthResponse](t, rec).Token)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", "", models.LoginRequest{Email: "ana@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/signup", "", "", models.SignupRequest{Name: "Ana", Email: "not-an-email", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/me", "", "good-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", decode[models.User](t, rec).ID)

	rec = s.do(t, http.MethodGet, "/api/auth/me", "", "bad-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartLineUpdates(t *testing.T) {
	s := newTestServer(fakeProducts{})
	s.cart.lines["u1"] = []models.CartLine{
		{ProductID: "a", Title: "A", Price: 10, Qty: 1},
		{ProductID: "b", Title: "B", Price: 5.5, Qty: 1},
	}

	rec := s.do(t, http.MethodPut, "/api/cart/a", "", "good-token", models.UpdateCartQtyRequest{Qty: 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode[models.CartResponse](t, rec)
	assert.Equal(t, 35.5, cart.Total)

	rec = s.do(t, http.MethodPut, "/api/cart/b", "", "good-token", models.UpdateCartQtyRequest{Qty: 0})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[models.CartResponse](t, rec)
	assert.Len(t, cart.Lines, 1)

	rec = s.do(t, http.MethodDelete, "/api/cart/zzz", "", "good-token", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/cart/a", "", "good-token", models.UpdateCartQtyRequest{Qty: -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
