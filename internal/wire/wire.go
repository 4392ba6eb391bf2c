package wire

import (
	"context"
	"net/http"
	"time"

	"sports-booking/internal/adaptor"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/usecase"
	"sports-booking/pkg/metrics"
	"sports-booking/pkg/middleware"
	"sports-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the HTTP application is assembled from
type Deps struct {
	Repo    *repository.Repository
	Infra   usecase.Infra
	Tokens  middleware.TokenParser
	Metrics *metrics.Metrics
	DB      Pinger
	Config  *utils.Config
	Logger  *zap.Logger
}

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are the per-route access middlewares
type guards struct {
	authenticate func(http.Handler) http.Handler
	admin        func(http.Handler) http.Handler
}

func Wiring(deps Deps) *App {
	service := usecase.NewService(deps.Repo, deps.Infra, deps.Logger)
	handler := adaptor.NewHandler(service, deps.Logger)

	g := guards{
		authenticate: middleware.Authenticate(deps.Tokens, service.User, deps.Logger),
		admin:        middleware.Admin(deps.Logger),
	}

	return &App{
		Router:  setupRouter(handler, g, deps),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, g guards, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recover(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.Method(http.MethodGet, deps.Config.Metrics.Path, deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		wireGame(r, handler.Game, g)
		wireTimeSlot(r, handler.TimeSlot, g)
		wireBooking(r, handler.Booking, g)
		wireUser(r, handler.User, handler.Booking, g)
	})

	r.Get("/health", healthHandler(deps.DB))

	return r
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				utils.ResponseServiceUnavailable(w, "Database unavailable")
				return
			}
		}

		utils.ResponseSuccess(w, "OK", nil)
	}
}
