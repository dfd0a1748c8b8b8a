package main

import (
	"log"
	"net/http"

	"timebank/config"
	"timebank/database"
	"timebank/dayoff"
	"timebank/handlers"
	"timebank/middleware"
	"timebank/models"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Core day-off service on top of the GORM store
	dayOffService := dayoff.NewService(database.NewDayOffStore(database.GetDB()))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	overtimeHandler := handlers.NewOvertimeHandler(cfg)
	dayOffHandler := handlers.NewDayOffHandler(cfg, dayOffService)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes
	router.Post("/auth/login", authHandler.Login)
	router.Post("/auth/register", authHandler.Register)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		// Logout (doesn't need password change check)
		r.Post("/auth/logout", authHandler.Logout)

		// Password change (accessible even when password change required)
		r.Post("/auth/change-password", authHandler.ChangePassword)

		// Routes that require password to be changed first
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePasswordChange)

			// Overtime entries (all authenticated users can access)
			r.Get("/overtime", overtimeHandler.ListEntries)
			r.Post("/overtime", overtimeHandler.CreateEntry)
			r.Put("/overtime", overtimeHandler.UpdateEntry)
			r.Delete("/overtime", overtimeHandler.DeleteEntry)

			// Day offs
			r.Get("/dayoffs", dayOffHandler.List)
			r.Get("/dayoffs/one", dayOffHandler.Get)
			r.Post("/dayoffs", dayOffHandler.Create)
			r.Delete("/dayoffs", dayOffHandler.Delete)

			// Admin and HR only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleHR))
				r.Post("/dayoffs/approve", dayOffHandler.Approve)
				r.Get("/export/csv", overtimeHandler.ExportCSV)
			})

			// Admin only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/invites", authHandler.ListInvites)
				r.Post("/invites", authHandler.CreateInvite)
				r.Get("/users", authHandler.ListUsers)
				r.Put("/users", authHandler.UpdateUser)
				r.Delete("/users", authHandler.DeleteUser)
			})
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Printf("Default admin credentials: admin / admin")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
