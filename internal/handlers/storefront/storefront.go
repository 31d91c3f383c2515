package storefronthandler

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/catalog"
	carthandler "storefront/internal/handlers/cart"
	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"
	"storefront/pkg/lib/urlparser"
)

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"price": catalog.FormatPrice}).
		ParseFS(templates, "templates/index.html"),
)

type CartService interface {
	ViewCart(ctx context.Context) (models.CartView, error)
	AddToCart(ctx context.Context, productId int) (models.CartView, error)
	RemoveFromCart(ctx context.Context, productId int) (models.CartView, error)
	UpdateQuantity(ctx context.Context, productId int, delta int) (models.CartView, error)
	Checkout(ctx context.Context, form models.CheckoutForm) (models.Confirmation, error)
}

type CatalogRenderer interface {
	Render(w io.Writer, addedId int) error
}

type Handler struct {
	log     *slog.Logger
	service CartService
	catalog CatalogRenderer
}

func New(log *slog.Logger, service CartService, catalog CatalogRenderer) *Handler {
	return &Handler{
		log:     log,
		service: service,
		catalog: catalog,
	}
}

type page struct {
	Grid     template.HTML
	Cart     models.CartView
	CartOpen bool
	OrderId  string
}

// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.Index"
	log := h.log.With("op", op)

	query := r.URL.Query()
	addedId, _ := strconv.Atoi(query.Get("added"))

	view, err := h.service.ViewCart(r.Context())
	if err != nil {
		writeError(w, log, err, "Failed to load cart")
		return
	}

	var grid bytes.Buffer
	if err := h.catalog.Render(&grid, addedId); err != nil {
		log.Error("Failed to render catalog", sl.Err(err))
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}

	data := page{
		Grid:     template.HTML(grid.String()),
		Cart:     view,
		CartOpen: query.Get("cart") == "open",
		OrderId:  query.Get("ordered"),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Error("Failed to render page", sl.Err(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
	}
}

// POST /ui/cart/add
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.AddToCart"
	log := h.log.With("op", op)

	productId, ok := formProductId(w, r, log)
	if !ok {
		return
	}

	if _, err := h.service.AddToCart(r.Context(), productId); err != nil {
		writeError(w, log, err, "Failed to add to cart")
		return
	}

	redirect(w, r, url.Values{"added": {strconv.Itoa(productId)}})
}

// POST /ui/cart/update
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.UpdateQuantity"
	log := h.log.With("op", op)

	productId, ok := formProductId(w, r, log)
	if !ok {
		return
	}

	delta, err := strconv.Atoi(r.PostForm.Get("delta"))
	if err != nil {
		log.Error("Delta must be int", sl.Err(err))
		http.Error(w, "Delta must be int", http.StatusBadRequest)
		return
	}

	if _, err := h.service.UpdateQuantity(r.Context(), productId, delta); err != nil {
		writeError(w, log, err, "Failed to update quantity")
		return
	}

	redirect(w, r, url.Values{"cart": {"open"}})
}

// POST /ui/cart/remove
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.RemoveFromCart"
	log := h.log.With("op", op)

	productId, ok := formProductId(w, r, log)
	if !ok {
		return
	}

	if _, err := h.service.RemoveFromCart(r.Context(), productId); err != nil {
		writeError(w, log, err, "Failed to remove from cart")
		return
	}

	redirect(w, r, url.Values{"cart": {"open"}})
}

// POST /ui/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.Checkout"
	log := h.log.With("op", op)

	if err := r.ParseForm(); err != nil {
		log.Error("Cannot parse form", sl.Err(err))
		http.Error(w, "Cannot parse form", http.StatusBadRequest)
		return
	}

	form := models.CheckoutForm{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Address: r.PostForm.Get("address"),
		Phone:   r.PostForm.Get("phone"),
	}

	conf, err := h.service.Checkout(r.Context(), form)
	if err != nil {
		if errors.Is(err, serviceerrors.ErrEmptyCart) {
			redirect(w, r, nil)
			return
		}
		writeError(w, log, err, "Failed to checkout")
		return
	}

	redirect(w, r, url.Values{"ordered": {conf.Order.Id}})
}

func formProductId(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int, bool) {
	if err := r.ParseForm(); err != nil {
		log.Error("Cannot parse form", sl.Err(err))
		http.Error(w, "Cannot parse form", http.StatusBadRequest)
		return 0, false
	}

	productId, err := urlparser.ParseProductId(r.PostForm.Get("product_id"))
	if err != nil {
		log.Error("ProductId must be int", sl.Err(err))
		http.Error(w, "ProductId must be int", http.StatusBadRequest)
		return 0, false
	}

	return productId, true
}

func redirect(w http.ResponseWriter, r *http.Request, query url.Values) {
	target := "/"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, serviceerrors.ErrContextCanceled):
		log.Warn("Context canceled", sl.Err(err))
		http.Error(w, "Context canceled", carthandler.StatusClientClosedRequest)
	case errors.Is(err, serviceerrors.ErrDeadlineExceeded):
		log.Warn("Deadline exceeded", sl.Err(err))
		http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
	case errors.Is(err, serviceerrors.ErrInvalidCustomer):
		log.Warn("Invalid customer data", sl.Err(err))
		http.Error(w, "Please provide at least your name and email to complete the order.", http.StatusBadRequest)
	default:
		log.Error(msg, sl.Err(err))
		http.Error(w, msg, http.StatusInternalServerError)
	}
}
