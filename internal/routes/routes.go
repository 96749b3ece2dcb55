package routes

import (
	"net/http"

	"github.com/checkhealth/goals/internal/app"
	"github.com/checkhealth/goals/internal/handler"
	"github.com/checkhealth/goals/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	goal := handler.NewGoalHandler(app.GoalService)

	mux := http.NewServeMux()

	// Probes
	mux.HandleFunc("GET /healthz", health.Health)

	// Goals
	mux.HandleFunc("POST /goals", goal.Create)
	mux.HandleFunc("GET /goals", goal.List)
	mux.HandleFunc("GET /goals/{goal_id}", goal.Get)
	mux.HandleFunc("PUT /goals/{goal_id}", goal.Update)
	mux.HandleFunc("DELETE /goals/{goal_id}", goal.Delete)
	mux.HandleFunc("PATCH /goals/{goal_id}/progress", goal.UpdateProgress)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.RateLimitWrites(app.Cfg.RateLimitWrites, app.Cfg.RateLimitWindow),
	)

	return handler
}
