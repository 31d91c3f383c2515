package carthandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"
	"storefront/pkg/lib/urlparser"

	"github.com/go-playground/validator/v10"
)

const StatusClientClosedRequest = 499

type CartService interface {
	ViewCart(ctx context.Context) (models.CartView, error)
	AddToCart(ctx context.Context, productId int) (models.CartView, error)
	RemoveFromCart(ctx context.Context, productId int) (models.CartView, error)
	UpdateQuantity(ctx context.Context, productId int, delta int) (models.CartView, error)
	Checkout(ctx context.Context, form models.CheckoutForm) (models.Confirmation, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	Notification(ctx context.Context) (models.Notification, error)
}

type ProductLister interface {
	Products() []models.Product
}

type AddItemRequest struct {
	ProductId int `json:"product_id" validate:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	Delta *int `json:"delta" validate:"required"`
}

type Handler struct {
	log      *slog.Logger
	service  CartService
	catalog  ProductLister
	validate *validator.Validate
}

func New(log *slog.Logger, service CartService, catalog ProductLister) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ListProducts"
	log := h.log.With("op", op)

	respond(w, log, http.StatusOK, h.catalog.Products())
}

// GET /cart
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ViewCart"
	log := h.log.With("op", op)

	view, err := h.service.ViewCart(r.Context())
	if err != nil {
		writeServiceError(w, log, err, "Failed to view cart")
		return
	}

	respond(w, log, http.StatusOK, view)
}

// POST /cart/items
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.AddToCart"
	log := h.log.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		log.Error("Failed to validate", sl.Err(err))
		http.Error(w, "Failed to validate", http.StatusBadRequest)
		return
	}

	view, err := h.service.AddToCart(r.Context(), req.ProductId)
	if err != nil {
		writeServiceError(w, log, err, "Failed to add to cart")
		return
	}

	respond(w, log, http.StatusOK, view)
}

// PATCH /cart/items/{productId}
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, sproductId string) {
	const op = "handlers.cart.UpdateQuantity"
	log := h.log.With("op", op)

	productId, err := urlparser.ParseProductId(sproductId)
	if err != nil {
		log.Error("ProductId must be int", sl.Err(err))
		http.Error(w, "ProductId must be int", http.StatusBadRequest)
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		log.Error("Failed to validate", sl.Err(err))
		http.Error(w, "Failed to validate", http.StatusBadRequest)
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), productId, *req.Delta)
	if err != nil {
		writeServiceError(w, log, err, "Failed to update quantity")
		return
	}

	respond(w, log, http.StatusOK, view)
}

// DELETE /cart/items/{productId}
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request, sproductId string) {
	const op = "handlers.cart.RemoveFromCart"
	log := h.log.With("op", op)

	productId, err := urlparser.ParseProductId(sproductId)
	if err != nil {
		log.Error("ProductId must be int", sl.Err(err))
		http.Error(w, "ProductId must be int", http.StatusBadRequest)
		return
	}

	view, err := h.service.RemoveFromCart(r.Context(), productId)
	if err != nil {
		writeServiceError(w, log, err, "Failed to remove from cart")
		return
	}

	respond(w, log, http.StatusOK, view)
}

// POST /checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.Checkout"
	log := h.log.With("op", op)

	// Every field is optional, so an empty body is an empty form.
	var form models.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil && !errors.Is(err, io.EOF) {
		log.Error("Cannot unmarshal request body", sl.Err(err))
		http.Error(w, "Cannot unmarshal request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	conf, err := h.service.Checkout(r.Context(), form)
	if err != nil {
		writeServiceError(w, log, err, "Failed to checkout")
		return
	}

	respond(w, log, http.StatusCreated, conf)
}

// GET /orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ListOrders"
	log := h.log.With("op", op)

	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, log, err, "Failed to list orders")
		return
	}

	respond(w, log, http.StatusOK, orders)
}

// GET /orders/notification
func (h *Handler) Notification(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.Notification"
	log := h.log.With("op", op)

	n, err := h.service.Notification(r.Context())
	if err != nil {
		writeServiceError(w, log, err, "Failed to read notification")
		return
	}

	respond(w, log, http.StatusOK, n)
}

func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, serviceerrors.ErrContextCanceled):
		log.Warn("Context canceled", sl.Err(serviceerrors.ErrContextCanceled))
		http.Error(w, "Context canceled", StatusClientClosedRequest)
	case errors.Is(err, serviceerrors.ErrDeadlineExceeded):
		log.Warn("Deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
		http.Error(w, "Deadline exceeded", http.StatusGatewayTimeout)
	case errors.Is(err, serviceerrors.ErrEmptyCart):
		log.Warn("Cart is empty", sl.Err(err))
		http.Error(w, "Cart is empty", http.StatusConflict)
	case errors.Is(err, serviceerrors.ErrInvalidCustomer):
		log.Warn("Invalid customer data", sl.Err(err))
		http.Error(w, "Please provide at least your name and email to complete the order.", http.StatusBadRequest)
	default:
		log.Error(msg, sl.Err(err))
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func respond(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to responde user", sl.Err(err))
	}
}
