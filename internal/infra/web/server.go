package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-smm-storefront/internal/application"
	"telegram-smm-storefront/internal/config"
	"telegram-smm-storefront/internal/domain/ports/adapter"
	"telegram-smm-storefront/internal/usecase"
)

// Server hosts the admin API plus the ops endpoints (/health, /metrics) on a
// single port. All /api/v1 routes except login sit behind JWT auth.
type Server struct {
	cfg       *config.WebConfig
	auth      *AuthManager
	orderUC   usecase.OrderUseCase
	catalogUC usecase.CatalogUseCase
	userUC    usecase.UserUseCase
	notify    adapter.TelegramBotAdapter
	presenter *application.Presenter
	log       *zerolog.Logger

	srv *http.Server
}

func NewServer(
	cfg *config.WebConfig,
	auth *AuthManager,
	orderUC usecase.OrderUseCase,
	catalogUC usecase.CatalogUseCase,
	userUC usecase.UserUseCase,
	notify adapter.TelegramBotAdapter,
	presenter *application.Presenter,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cfg:       cfg,
		auth:      auth,
		orderUC:   orderUC,
		catalogUC: catalogUC,
		userUC:    userUC,
		notify:    notify,
		presenter: presenter,
		log:       logger,
	}
}

// Router builds the chi mux. Split from Start so tests can drive it with
// httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/login", s.handleLogin)
		api.Post("/logout", s.handleLogout)

		api.Group(func(priv chi.Router) {
			priv.Use(s.authMiddleware)

			priv.Get("/stats", s.handleStats)

			priv.Route("/orders", func(orders chi.Router) {
				orders.Get("/", s.handleOrdersList)
				orders.Get("/{id}", s.handleOrderGet)
				orders.Patch("/{id}", s.handleOrderPatch)
			})

			priv.Route("/packages", func(pkgs chi.Router) {
				pkgs.Get("/", s.handlePackagesList)
				pkgs.Post("/", s.handlePackageCreate)
				pkgs.Delete("/{id}", s.handlePackageDelete)
			})
		})
	})

	return r
}

func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Int("port", s.cfg.Port).Msg("web server listening")
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
