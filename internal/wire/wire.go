package wire

import (
	"net/http"

	"queue-booking/internal/adaptor"
	"queue-booking/internal/data/repository"
	"queue-booking/internal/notify"
	"queue-booking/internal/usecase"
	"queue-booking/pkg/mailer"
	"queue-booking/pkg/middleware"
	"queue-booking/pkg/token"
	"queue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and mounts every route.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	tokens *token.JWTService,
	mail mailer.Mailer,
	gateway notify.Gateway,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, tokens, mail, gateway, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, tokens, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, tokens *token.JWTService, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, tokens, logger)
	wireOrganization(r, handler.Organization, tokens, logger)
	wireBranch(r, handler.Branch, tokens, logger)
	wireSlot(r, handler.Slot, tokens, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
