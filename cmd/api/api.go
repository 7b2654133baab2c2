package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flyerprice/internal/auth"
	"flyerprice/internal/jobs"
	"flyerprice/internal/ratelimiter"
	"flyerprice/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	jobs          *jobs.Queue
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	frontendURL string
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
	r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

	r.Get("/stores", app.listStoresHandler)
	r.Get("/categories", app.listCategoriesHandler)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", app.listProductsHandler)
		r.Get("/{productID}", app.getProductHandler)
	})

	r.Route("/offers", func(r chi.Router) {
		r.Get("/", app.listOffersHandler)
		r.Get("/{offerID}", app.getOfferHandler)
	})

	r.Route("/flyers", func(r chi.Router) {
		r.Get("/", app.listFlyersHandler)
		r.With(app.AuthTokenMiddleware, app.RequireAdmin).Post("/fetch", app.triggerFetchFlyersHandler)
		r.Get("/{flyerID}", app.getFlyerHandler)
		r.With(app.AuthTokenMiddleware, app.RequireAdmin).Post("/{flyerID}/extract", app.triggerExtractFlyerHandler)
	})

	r.Get("/history", app.listHistoryHandler)

	r.Route("/logs", func(r chi.Router) {
		r.Use(app.AuthTokenMiddleware, app.RequireAdmin)
		r.Get("/extraction", app.listExtractionLogsHandler)
		r.Get("/llm", app.listLLMLogsHandler)
	})

	r.With(app.AuthTokenMiddleware, app.RequireAdmin).Get("/stats/parsing-errors", app.parsingErrorStatsHandler)

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
