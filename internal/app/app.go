package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/catalog"
	carthandler "storefront/internal/handlers/cart"
	storefronthandler "storefront/internal/handlers/storefront"
	"storefront/internal/middleware"
	"storefront/internal/routes"
	cartservice "storefront/internal/service/cart"
)

type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type App struct {
	log    *slog.Logger
	port   int
	server *http.Server
}

func New(log *slog.Logger, port int, storage Storage) *App {
	a := &App{
		log:  log,
		port: port,
	}

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           newHandler(log, storage),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a
}

func newHandler(log *slog.Logger, storage Storage) http.Handler {
	products := catalog.New()
	cartService := cartservice.New(log, storage, products)

	cartHandler := carthandler.New(log, cartService, products)
	storefrontHandler := storefronthandler.New(log, cartService, products)

	mux := http.NewServeMux()
	routes.New(cartHandler, storefrontHandler).Register(mux)

	return middleware.RequestLogger(log)(mux)
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "app.Run"

	a.log.Info("Starting storefront", "port", a.port)

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *App) Stop(ctx context.Context) error {
	const op = "app.Stop"

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
