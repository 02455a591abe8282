package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ARYAMAN170/DontMessIt/controllers"
	auth "github.com/ARYAMAN170/DontMessIt/middleware"
)

func SetupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS Configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Public reads: the dashboard fetches these before login finishes
	r.Get("/messes", controllers.GetMesses)
	r.Get("/menus", controllers.GetMenus)
	r.Get("/foods", controllers.GetFoods)

	// User routes (bearer token)
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/profile", controllers.GetProfile)
		r.Post("/profile/onboarding", controllers.Onboard)
		r.Patch("/profile", controllers.UpdateProfile)

		r.Get("/plates", controllers.GetPlates)
		r.Get("/plate", controllers.GetPlate)

		r.Post("/logs", controllers.CreateLog)
		r.Get("/logs/today", controllers.GetDailyProgress)
		r.Delete("/logs/{log_id}", controllers.DeleteLog)

		r.Post("/scan", controllers.ScanPlate)
	})

	// Mess staff tooling (API key)
	r.Group(func(r chi.Router) {
		r.Use(auth.APIKeyMiddleware)

		r.Post("/ingest/menu", controllers.IngestMenu)
		r.Post("/foods", controllers.CreateFood)
		r.Patch("/foods/{food_id}", controllers.UpdateFood)
	})

	// Server-Sent Events for finished plate scans
	r.Get("/sse/scans", ScanSSE)

	return r
}
