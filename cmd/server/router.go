package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/speakoai/speako-api/internal/api"
	apiMiddleware "github.com/speakoai/speako-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	userHandler := api.NewUserHandler(app.userStore)
	questionHandler := api.NewQuestionHandler(app.questionStore)
	responseHandler := api.NewResponseHandler(app.db, app.userStore, app.questionStore, app.responseStore)
	feedbackHandler := api.NewFeedbackHandler(app.db, app.userStore, app.feedbackStore)
	analyticsHandler := api.NewAnalyticsHandler(app.analyticsService)

	r.Route("/api", func(r chi.Router) {
		// User endpoints
		r.Post("/users", userHandler.CreateUser)
		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/{id}", userHandler.GetUser)
		r.Put("/users/{id}", userHandler.UpdateUser)
		r.Delete("/users/{id}", userHandler.DeleteUser)
		r.Get("/users/{id}/responses", responseHandler.ListUserResponses)
		r.Get("/users/{id}/feedback", feedbackHandler.ListUserFeedback)

		// Question endpoints
		r.Post("/questions", questionHandler.CreateQuestion)
		r.Get("/questions", questionHandler.ListQuestions)
		r.Get("/questions/{id}", questionHandler.GetQuestion)
		r.Put("/questions/{id}", questionHandler.UpdateQuestion)
		r.Delete("/questions/{id}", questionHandler.DeleteQuestion)

		// Response endpoints
		r.Post("/responses", responseHandler.CreateResponse)
		r.Get("/responses/{id}", responseHandler.GetResponse)
		r.Delete("/responses/{id}", responseHandler.DeleteResponse)

		// Feedback endpoints
		r.Post("/feedback", feedbackHandler.CreateFeedback)
		r.Get("/feedback/{id}", feedbackHandler.GetFeedback)
		r.Delete("/feedback/{id}", feedbackHandler.DeleteFeedback)

		// Analytics endpoints
		r.Get("/analytics/users/{id}/scores", analyticsHandler.GetUserScores)
		r.Get("/analytics/leaderboard", analyticsHandler.GetLeaderboard)
		r.Get("/analytics/questions/{id}", analyticsHandler.GetQuestionSummary)
	})

	return r
}
