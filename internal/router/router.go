// Package router sets up all HTTP routes and middleware chains for the
// МонголШоп API. It organizes routes into public, auth, and admin groups
// with appropriate middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"mongolshop/internal/handlers"
	"mongolshop/internal/middleware"
	"mongolshop/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, public *handlers.Public, auth *handlers.Auth, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", public.Health)

	r.Route("/api", func(r chi.Router) {
		// Public directory endpoints.
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", public.ListStores)
			r.Get("/search", public.SearchStores)
			r.Get("/{id}", public.GetStore)
			r.Get("/{id}/reviews", public.StoreReviews)
			r.Post("/{id}/reviews", public.AddReview)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", public.ListCategories)
			r.Get("/{id}", public.GetCategory)
			r.Get("/{id}/stores", public.CategoryStores)
		})

		r.Get("/reviews", public.ListReviews)
		r.Get("/settings", public.GetSettings)
		r.Get("/maps/embed", public.EmbedMapLink)

		// Authentication — login is rate-limited against brute force.
		r.Route("/auth", func(r chi.Router) {
			loginLimiter := middleware.NewRateLimiter(10, time.Minute)
			r.With(loginLimiter.Middleware).Post("/login", auth.Login)
			r.With(loginLimiter.Middleware).Post("/register", auth.Register)
			r.Post("/logout", auth.Logout)
			r.Get("/me", auth.Me)

			// 2FA — requires auth but NOT completed 2FA.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/2fa/setup", auth.TwoFASetup)
				r.Post("/2fa/verify", auth.TwoFAVerify)
			})
		})

		// Admin area — authenticated, 2FA-verified admins only.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireAdmin)

			r.Route("/stores", func(r chi.Router) {
				r.Post("/", admin.CreateStore)
				r.Put("/{id}", admin.UpdateStore)
				r.Delete("/{id}", admin.DeleteStore)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", admin.CreateCategory)
				r.Put("/{id}", admin.UpdateCategory)
				r.Delete("/{id}", admin.DeleteCategory)
				r.Post("/recount", admin.RecountCategories)
			})

			r.Delete("/reviews/{id}", admin.DeleteReview)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", admin.ListUsers)
				r.Post("/", admin.CreateUser)
				r.Get("/{id}", admin.GetUser)
				r.Put("/{id}", admin.UpdateUser)
				r.Put("/{id}/password", admin.UpdateUserPassword)
				r.Delete("/{id}", admin.DeleteUser)
			})

			r.Get("/settings", admin.GetSettings)
			r.Put("/settings", admin.SaveSettings)

			// Connection control and data initialization.
			r.Get("/connection", admin.ConnectionStatus)
			r.Post("/connection/reconnect", admin.Reconnect)
			r.Post("/data-init", admin.SeedData)

			r.Post("/media", admin.MediaUpload)
			r.Delete("/media", admin.MediaDelete)
		})
	})

	return r
}
