package storefronthandler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/database/memory"
	storefronthandler "storefront/internal/handlers/storefront"
	cartservice "storefront/internal/service/cart"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*storefronthandler.Handler, *cartservice.CartService) {
	t.Helper()
	log := slogdiscard.NewDiscardLogger()
	c := catalog.New()
	svc := cartservice.NewWithParams(log, memory.New(log), c, func() time.Time { return fixedNow })
	return storefronthandler.New(log, svc, c), svc
}

func getPage(t *testing.T, h *storefronthandler.Handler, target string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ww := httptest.NewRecorder()

	h.Index(ww, req)
	resp := ww.Result()
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func postForm(t *testing.T, handle http.HandlerFunc, target string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ww := httptest.NewRecorder()

	handle(ww, req)
	return ww.Result()
}

func TestIndex_EmptyCart(t *testing.T) {
	h, _ := newTestHandler(t)

	page := getPage(t, h, "/")

	for _, id := range []string{"products-grid", "cart-items", "cart-count", "cart-total", "cart-sidebar", "success-modal"} {
		assert.Contains(t, page, `id="`+id+`"`)
	}
	assert.Contains(t, page, "Your cart is empty")
	assert.Contains(t, page, `class="checkout-btn" disabled`)
	assert.Contains(t, page, `<span id="cart-total">0.00</span>`)
	assert.NotContains(t, page, `class="modal show"`)
	assert.Equal(t, 6, strings.Count(page, `class="product-card"`))
}

func TestIndex_WithItems(t *testing.T) {
	h, svc := newTestHandler(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, 1)
	require.NoError(t, err)

	page := getPage(t, h, "/?cart=open")

	assert.NotContains(t, page, "Your cart is empty")
	assert.NotContains(t, page, `class="checkout-btn" disabled`)
	assert.Contains(t, page, `<span id="cart-count">2</span>`)
	assert.Contains(t, page, `<span id="cart-total">199.98</span>`)
	assert.Contains(t, page, "$99.99 each")
	assert.Contains(t, page, `class="cart-sidebar open"`)
}

func TestAddToCart_RedirectsWithAddedMarker(t *testing.T) {
	h, svc := newTestHandler(t)

	resp := postForm(t, h.AddToCart, "/ui/cart/add", url.Values{"product_id": {"3"}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?added=3", resp.Header.Get("Location"))

	view, err := svc.ViewCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)

	assert.Contains(t, getPage(t, h, "/?added=3"), "✓ Added!")
}

func TestAddToCart_BadProductId(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := postForm(t, h.AddToCart, "/ui/cart/add", url.Values{"product_id": {"x"}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateQuantity_ToZeroRemoves(t *testing.T) {
	h, svc := newTestHandler(t)
	_, err := svc.AddToCart(context.Background(), 5)
	require.NoError(t, err)

	resp := postForm(t, h.UpdateQuantity, "/ui/cart/update", url.Values{"product_id": {"5"}, "delta": {"-1"}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?cart=open", resp.Header.Get("Location"))

	view, err := svc.ViewCart(context.Background())
	require.NoError(t, err)
	assert.True(t, view.Empty)
}

func TestUpdateQuantity_BadDelta(t *testing.T) {
	h, _ := newTestHandler(t)

	resp := postForm(t, h.UpdateQuantity, "/ui/cart/update", url.Values{"product_id": {"5"}, "delta": {"many"}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRemoveFromCart(t *testing.T) {
	h, svc := newTestHandler(t)
	_, err := svc.AddToCart(context.Background(), 2)
	require.NoError(t, err)

	resp := postForm(t, h.RemoveFromCart, "/ui/cart/remove", url.Values{"product_id": {"2"}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	view, err := svc.ViewCart(context.Background())
	require.NoError(t, err)
	assert.True(t, view.Empty)
}

func TestCheckout_ShowsConfirmation(t *testing.T) {
	h, svc := newTestHandler(t)
	_, err := svc.AddToCart(context.Background(), 6)
	require.NoError(t, err)

	resp := postForm(t, h.Checkout, "/ui/checkout", url.Values{"name": {"Ada"}})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?ordered=1792315800000", resp.Header.Get("Location"))

	page := getPage(t, h, "/?ordered=1792315800000")
	assert.Contains(t, page, `class="modal show"`)
	assert.Contains(t, page, "#1792315800000")
	assert.Contains(t, page, `class="cart-sidebar"`)
	assert.Contains(t, page, "Your cart is empty")

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ada", orders[0].CustomerName)
	assert.Equal(t, "customer@example.com", orders[0].CustomerEmail)
}

func TestCheckout_EmptyCartRedirectsHome(t *testing.T) {
	h, svc := newTestHandler(t)

	resp := postForm(t, h.Checkout, "/ui/checkout", url.Values{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

type brokenRenderer struct{}

func (brokenRenderer) Render(io.Writer, int) error { return errors.New("template broken") }

func TestIndex_RenderFailure(t *testing.T) {
	log := slogdiscard.NewDiscardLogger()
	svc := cartservice.New(log, memory.New(log), catalog.New())
	h := storefronthandler.New(log, svc, brokenRenderer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ww := httptest.NewRecorder()
	h.Index(ww, req)

	assert.Equal(t, http.StatusInternalServerError, ww.Result().StatusCode)
}
