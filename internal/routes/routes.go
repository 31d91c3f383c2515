package routes

import (
	"net/http"
	"strconv"

	carthandler "storefront/internal/handlers/cart"
	storefronthandler "storefront/internal/handlers/storefront"
	"storefront/pkg/lib/urlparser"
)

type Routes struct {
	cartHandler       *carthandler.Handler
	storefrontHandler *storefronthandler.Handler
}

func New(cartHandler *carthandler.Handler, storefrontHandler *storefronthandler.Handler) *Routes {
	return &Routes{
		cartHandler:       cartHandler,
		storefrontHandler: storefrontHandler,
	}
}

func (r *Routes) Register(mux *http.ServeMux) {
	// JSON API
	mux.HandleFunc("/products", only(http.MethodGet, r.cartHandler.ListProducts))
	mux.HandleFunc("/cart", only(http.MethodGet, r.cartHandler.ViewCart))
	mux.HandleFunc("/cart/items", only(http.MethodPost, r.cartHandler.AddToCart))
	mux.HandleFunc("/cart/items/", r.itemPathParser)
	mux.HandleFunc("/checkout", only(http.MethodPost, r.cartHandler.Checkout))
	mux.HandleFunc("/orders", only(http.MethodGet, r.cartHandler.ListOrders))
	mux.HandleFunc("/orders/notification", only(http.MethodGet, r.cartHandler.Notification))

	// HTML pages
	mux.HandleFunc("/", r.index)
	mux.HandleFunc("/ui/cart/add", only(http.MethodPost, r.storefrontHandler.AddToCart))
	mux.HandleFunc("/ui/cart/update", only(http.MethodPost, r.storefrontHandler.UpdateQuantity))
	mux.HandleFunc("/ui/cart/remove", only(http.MethodPost, r.storefrontHandler.RemoveFromCart))
	mux.HandleFunc("/ui/checkout", only(http.MethodPost, r.storefrontHandler.Checkout))
}

func (r *Routes) index(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" || req.Method != http.MethodGet {
		http.NotFound(w, req)
		return
	}
	r.storefrontHandler.Index(w, req)
}

func (r *Routes) itemPathParser(w http.ResponseWriter, req *http.Request) {
	params, err := urlparser.ParseItemPath(req.URL.Path)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	switch req.Method {
	case http.MethodPatch:
		// PATCH /cart/items/{productId}
		r.cartHandler.UpdateQuantity(w, req, strconv.Itoa(params.ProductId))
	case http.MethodDelete:
		// DELETE /cart/items/{productId}
		r.cartHandler.RemoveFromCart(w, req, strconv.Itoa(params.ProductId))
	default:
		http.NotFound(w, req)
	}
}

func only(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}
}
