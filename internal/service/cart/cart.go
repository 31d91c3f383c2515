package cartservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	databaseerrors "storefront/internal/database"
	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"

	"github.com/go-playground/validator/v10"
)

// Storage keys shared with the order owner.
const (
	KeyCart                 = "cart"
	KeyOrders               = "orders"
	KeyNewOrderNotification = "newOrderNotification"
	KeyLastOrderTime        = "lastOrderTime"
)

const (
	DefaultCustomerName    = "Customer"
	DefaultCustomerEmail   = "customer@example.com"
	DefaultCustomerAddress = "No address provided"
	DefaultCustomerPhone   = "No phone provided"
)

const orderDateLayout = "2006-01-02T15:04:05.000Z"

type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type ProductCatalog interface {
	Find(productId int) (models.Product, bool)
}

// CartService mirrors the cart to storage after every change. The mutex
// serializes read-modify-write cycles inside one process only.
type CartService struct {
	log      *slog.Logger
	storage  Storage
	catalog  ProductCatalog
	validate *validator.Validate
	now      func() time.Time

	mu sync.Mutex
}

func New(log *slog.Logger, storage Storage, catalog ProductCatalog) *CartService {
	return NewWithParams(log, storage, catalog, time.Now)
}

func NewWithParams(log *slog.Logger, storage Storage, catalog ProductCatalog, now func() time.Time) *CartService {
	return &CartService{
		log:      log,
		storage:  storage,
		catalog:  catalog,
		validate: validator.New(),
		now:      now,
	}
}

func (c *CartService) ViewCart(ctx context.Context) (models.CartView, error) {
	const op = "service.cart.ViewCart"
	log := c.log.With("op", op)

	if err := checkContext(ctx, log); err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart, err := c.loadCart(ctx, log)
	if err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to load cart"))
	}

	return cart.View(), nil
}

func (c *CartService) AddToCart(ctx context.Context, productId int) (models.CartView, error) {
	const op = "service.cart.AddToCart"
	log := c.log.With("op", op, "product_id", productId)

	if err := checkContext(ctx, log); err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart, err := c.loadCart(ctx, log)
	if err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to load cart"))
	}

	product, ok := c.catalog.Find(productId)
	if !ok {
		log.Debug("Product not in catalog, ignoring")
		return cart.View(), nil
	}

	cart.Add(product)

	if err := c.saveCart(ctx, cart); err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to save cart"))
	}

	return cart.View(), nil
}

func (c *CartService) RemoveFromCart(ctx context.Context, productId int) (models.CartView, error) {
	const op = "service.cart.RemoveFromCart"
	log := c.log.With("op", op, "product_id", productId)

	if err := checkContext(ctx, log); err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart, err := c.loadCart(ctx, log)
	if err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to load cart"))
	}

	return c.remove(ctx, log, cart, productId, op)
}

func (c *CartService) UpdateQuantity(ctx context.Context, productId int, delta int) (models.CartView, error) {
	const op = "service.cart.UpdateQuantity"
	log := c.log.With("op", op, "product_id", productId, "delta", delta)

	if err := checkContext(ctx, log); err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart, err := c.loadCart(ctx, log)
	if err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to load cart"))
	}

	quantity := cart.Quantity(productId)
	if quantity == 0 {
		log.Debug("Item not in cart, ignoring")
		return cart.View(), nil
	}

	if models.AddQuantity(quantity, delta) <= 0 {
		return c.remove(ctx, log, cart, productId, op)
	}

	cart.UpdateQuantity(productId, delta)

	if err := c.saveCart(ctx, cart); err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to save cart"))
	}

	return cart.View(), nil
}

// Checkout turns the cart into a pending order, prepends it to the order list,
// raises the owner notification flags and empties the cart.
func (c *CartService) Checkout(ctx context.Context, form models.CheckoutForm) (models.Confirmation, error) {
	const op = "service.cart.Checkout"
	log := c.log.With("op", op)

	if err := checkContext(ctx, log); err != nil {
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart, err := c.loadCart(ctx, log)
	if err != nil {
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to load cart"))
	}

	if cart.IsEmpty() {
		log.Debug("Cart is empty, nothing to check out")
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrEmptyCart)
	}

	form = withDefaults(form)
	if err := c.validate.Struct(form); err != nil {
		log.Warn("Customer data rejected", sl.Err(err))
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrInvalidCustomer)
	}

	now := c.now()
	order := models.Order{
		Id:              strconv.FormatInt(now.UnixMilli(), 10),
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerAddress: form.Address,
		CustomerPhone:   form.Phone,
		Items:           cart.OrderItems(),
		Total:           cart.Total(),
		Date:            now.UTC().Format(orderDateLayout),
		Status:          models.OrderStatusPending,
		IsNew:           true,
	}

	orders, err := readList[models.Order](ctx, c.storage, log, KeyOrders)
	if err != nil {
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to load orders"))
	}
	orders = append([]models.Order{order}, orders...)

	if err := writeJSON(ctx, c.storage, KeyOrders, orders); err != nil {
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to save orders"))
	}
	if err := c.storage.Set(ctx, KeyNewOrderNotification, "true"); err != nil {
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to raise order notification"))
	}
	if err := c.storage.Set(ctx, KeyLastOrderTime, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to save last order time"))
	}

	cart.Clear()
	if err := c.saveCart(ctx, cart); err != nil {
		return models.Confirmation{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to save cart"))
	}

	log.Info("Order placed", "order_id", order.Id, "total", order.Total.StringFixed(2), "items", len(order.Items))

	return models.Confirmation{
		Order: order,
		Cart:  cart.View(),
	}, nil
}

// ListOrders returns stored orders, newest first.
func (c *CartService) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "service.cart.ListOrders"
	log := c.log.With("op", op)

	if err := checkContext(ctx, log); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	orders, err := readList[models.Order](ctx, c.storage, log, KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to load orders"))
	}

	return orders, nil
}

func (c *CartService) Notification(ctx context.Context) (models.Notification, error) {
	const op = "service.cart.Notification"
	log := c.log.With("op", op)

	if err := checkContext(ctx, log); err != nil {
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	flag, err := c.getOptional(ctx, KeyNewOrderNotification)
	if err != nil {
		return models.Notification{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to read order notification"))
	}

	lastOrderTime, err := c.getOptional(ctx, KeyLastOrderTime)
	if err != nil {
		return models.Notification{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to read last order time"))
	}

	return models.Notification{
		NewOrder:      flag == "true",
		LastOrderTime: lastOrderTime,
	}, nil
}

func (c *CartService) remove(ctx context.Context, log *slog.Logger, cart models.Cart, productId int, op string) (models.CartView, error) {
	if !cart.Remove(productId) {
		log.Debug("Item not in cart")
	}

	if err := c.saveCart(ctx, cart); err != nil {
		return models.CartView{}, fmt.Errorf("%s: %w", op, storageError(log, err, "Failed to save cart"))
	}

	return cart.View(), nil
}

func (c *CartService) loadCart(ctx context.Context, log *slog.Logger) (models.Cart, error) {
	items, err := readList[models.CartItem](ctx, c.storage, log, KeyCart)
	if err != nil {
		return models.Cart{}, err
	}
	return models.NewCart(items), nil
}

func (c *CartService) saveCart(ctx context.Context, cart models.Cart) error {
	return writeJSON(ctx, c.storage, KeyCart, models.NewCart(cart.Items).Items)
}

func (c *CartService) getOptional(ctx context.Context, key string) (string, error) {
	value, err := c.storage.Get(ctx, key)
	if errors.Is(err, databaseerrors.ErrNotFound) {
		return "", nil
	}
	return value, err
}

// readList decodes a JSON array stored under key. A missing key, a null value
// or a value that does not decode all read as an empty list.
func readList[T any](ctx context.Context, storage Storage, log *slog.Logger, key string) ([]T, error) {
	raw, err := storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, databaseerrors.ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}

	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Warn("Stored value is unreadable, using empty list", "key", key, sl.Err(err))
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

func writeJSON(ctx context.Context, storage Storage, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return storage.Set(ctx, key, string(raw))
}

func withDefaults(form models.CheckoutForm) models.CheckoutForm {
	if form.Name == "" {
		form.Name = DefaultCustomerName
	}
	if form.Email == "" {
		form.Email = DefaultCustomerEmail
	}
	if form.Address == "" {
		form.Address = DefaultCustomerAddress
	}
	if form.Phone == "" {
		form.Phone = DefaultCustomerPhone
	}
	return form
}

func checkContext(ctx context.Context, log *slog.Logger) error {
	select {
	case <-ctx.Done():
		err := ctx.Err()
		if errors.Is(err, context.Canceled) {
			log.Warn("context canceled", sl.Err(err))
			return serviceerrors.ErrContextCanceled
		} else if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("deadline exceeded", sl.Err(err))
			return serviceerrors.ErrDeadlineExceeded
		}
		log.Error("unexpected error", sl.Err(err))
		return err
	default:
	}
	return nil
}

func storageError(log *slog.Logger, err error, msg string) error {
	if errors.Is(err, context.Canceled) {
		log.Warn("context canceled", sl.Err(serviceerrors.ErrContextCanceled))
		return serviceerrors.ErrContextCanceled
	} else if errors.Is(err, context.DeadlineExceeded) {
		log.Warn("deadline exceeded", sl.Err(serviceerrors.ErrDeadlineExceeded))
		return serviceerrors.ErrDeadlineExceeded
	}
	log.Error(msg, sl.Err(err))
	return err
}
