package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/sirawit/asset-borrowing/internal/auth"
	"github.com/sirawit/asset-borrowing/internal/borrow"
	"github.com/sirawit/asset-borrowing/internal/transport/middleware"
	"github.com/sirawit/asset-borrowing/internal/transport/swagger"

	assetPkg "github.com/sirawit/asset-borrowing/internal/asset"
)

// RegisterAllRoutes wires the full HTTP surface. Paths are mounted at the
// root to preserve the original wire contract of the service.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	assetHandler *assetPkg.Handler,
	borrowHandler *borrow.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// API docs
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Health and session surface
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Post("/register", authHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Post("/logout", authHandler.Logout)
	router.Get("/me", authHandler.Me)

	// Public read-only views
	router.Get("/api/asset", assetHandler.ListAssets)
	router.Get("/api/dashboard", assetHandler.Dashboard)
	router.Get("/api/checkrequest", borrowHandler.PendingQueue)

	// Session-protected lifecycle routes
	router.Group(func(pr chi.Router) {
		pr.Use(authHandler.SessionMiddleware)

		pr.Post("/api/borrow", borrowHandler.SubmitBorrow)
		pr.Get("/api/history", borrowHandler.History)
		pr.Get("/api/borrow-requests/check", borrowHandler.CheckRequests)

		pr.Group(func(lr chi.Router) {
			lr.Use(middleware.RequireRole(auth.RoleLender))
			lr.Patch("/api/borrow/{id}", borrowHandler.DecideBorrow)
		})
	})
}
