// Routes of the store service:
//
//	GET  /api/v1/health
//	POST /api/v1/user/register            identity provider (public)
//	POST /api/v1/user/login               identity provider (public)
//	POST /api/v1/auth/signin              token exchange (public)
//	POST /api/v1/auth/signout             (auth)
//	POST /api/v1/schema                   (auth)
//	POST /api/v1/zones                    (auth)
//	GET  /api/v1/zones/{zone}/books       (auth)
//	PUT  /api/v1/zones/{zone}/books       (auth)
//	POST /api/v1/zones/{zone}/books/delete (auth)
//	GET  /metrics
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	bookAPI "bookshelf/internal/app/server/api/http/book"
	healthAPI "bookshelf/internal/app/server/api/http/health"
	"bookshelf/internal/app/server/api/http/middleware"
	"bookshelf/internal/app/server/api/http/middleware/auth"
	"bookshelf/internal/app/server/api/http/middleware/logger"
	schemaAPI "bookshelf/internal/app/server/api/http/schema"
	sessionAPI "bookshelf/internal/app/server/api/http/session"
	userAPI "bookshelf/internal/app/server/api/http/user"
	zoneAPI "bookshelf/internal/app/server/api/http/zone"
	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/schema"
	"bookshelf/internal/domain/session"
	"bookshelf/internal/domain/user"
	"bookshelf/internal/domain/zone"
	"bookshelf/internal/infrastructure/metrics"
)

// Services are the domain services the API exposes.
type Services struct {
	Users    user.Servicer
	Issuer   userAPI.TokenIssuer
	Sessions session.Servicer
	Schemas  schema.Servicer
	Zones    zone.Servicer
	Books    book.Servicer
}

type Handlers struct {
	Health  *healthAPI.Handler
	User    *userAPI.Handler
	Session *sessionAPI.Handler
	Schema  *schemaAPI.Handler
	Zone    *zoneAPI.Handler
	Book    *bookAPI.Handler
}

// New builds the router with every huma operation and the metrics endpoint.
func New(svc Services, m *metrics.Metrics, log *slog.Logger, pingers ...healthAPI.Pinger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Bookshelf API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(API, svc, m, log, pingers)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Session.SetupRoutes(API)
	h.Schema.SetupRoutes(API)
	h.Zone.SetupRoutes(API)
	h.Book.SetupRoutes(API)

	mux.Handle("/metrics", m.Handler())

	return mux
}

func handlers(api huma.API, svc Services, m *metrics.Metrics, log *slog.Logger, pingers []healthAPI.Pinger) *Handlers {
	authMW := auth.New(api, svc.Sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	public := func() huma.Middlewares {
		return middlewares.Add(m.Middleware(), loggerMW.Middleware()).GetAllAndClear()
	}
	private := func() huma.Middlewares {
		return middlewares.Add(m.Middleware(), loggerMW.Middleware(), authMW.Middleware()).GetAllAndClear()
	}

	return &Handlers{
		Health:  healthAPI.NewHandler(log, public(), pingers...),
		User:    userAPI.NewHandler(svc.Users, svc.Issuer, log, public()),
		Session: sessionAPI.NewHandler(svc.Sessions, log, public(), private()),
		Schema:  schemaAPI.NewHandler(svc.Schemas, log, private()),
		Zone:    zoneAPI.NewHandler(svc.Zones, log, private()),
		Book:    bookAPI.NewHandler(svc.Books, m, log, private()),
	}
}
