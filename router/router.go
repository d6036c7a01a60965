// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/hannalind/quizroom/cliparse"
	"github.com/hannalind/quizroom/handlers"
	"github.com/hannalind/quizroom/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	roleHandler := handlers.NewRoleHandler(db, cfg)
	mediaHandler := handlers.NewMediaHandler(db, cfg)
	billingHandler := handlers.NewBillingHandler(db, cfg)
	quizHandler := handlers.NewQuizHandler(db, cfg)
	storyHandler := handlers.NewStoryHandler(db, cfg)
	courseHandler := handlers.NewCourseHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	documentHandler := handlers.NewDocumentHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Users and profile specializations
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.CreateUser))
	mux.HandleFunc("GET /users", middleware.WithLogging(userHandler.ListUsers))
	mux.HandleFunc("GET /users/{id}", middleware.WithLogging(userHandler.GetUser))
	mux.HandleFunc("PUT /users/{id}", middleware.WithLogging(userHandler.UpdateUser))
	mux.HandleFunc("PATCH /users/{id}", middleware.WithLogging(userHandler.PatchUser))
	mux.HandleFunc("DELETE /users/{id}", middleware.WithLogging(userHandler.DeleteUser))
	mux.HandleFunc("POST /users/{id}/student", middleware.WithLogging(userHandler.CreateStudentProfile))
	mux.HandleFunc("POST /users/{id}/teacher", middleware.WithLogging(userHandler.CreateTeacherProfile))
	mux.HandleFunc("POST /users/{id}/company", middleware.WithLogging(userHandler.CreateCompanyProfile))
	mux.HandleFunc("POST /users/{id}/roles", middleware.WithLogging(userHandler.AssignRole))
	mux.HandleFunc("GET /users/{id}/roles", middleware.WithLogging(userHandler.ListUserRoles))

	// Access control
	mux.HandleFunc("POST /roles", middleware.WithLogging(roleHandler.CreateRole))
	mux.HandleFunc("GET /roles", middleware.WithLogging(roleHandler.ListRoles))
	mux.HandleFunc("PUT /roles/{id}", middleware.WithLogging(roleHandler.UpdateRole))
	mux.HandleFunc("DELETE /roles/{id}", middleware.WithLogging(roleHandler.DeleteRole))
	mux.HandleFunc("POST /permissions", middleware.WithLogging(roleHandler.CreatePermission))
	mux.HandleFunc("GET /permissions", middleware.WithLogging(roleHandler.ListPermissions))
	mux.HandleFunc("POST /roles/{id}/permissions", middleware.WithLogging(roleHandler.GrantPermission))

	// Media
	mux.HandleFunc("POST /media", middleware.WithLogging(mediaHandler.CreateMedia))
	mux.HandleFunc("GET /media/{id}", middleware.WithLogging(mediaHandler.GetMedia))
	mux.HandleFunc("DELETE /media/{id}", middleware.WithLogging(mediaHandler.DeleteMedia))

	// Billing
	mux.HandleFunc("POST /plans", middleware.WithLogging(billingHandler.CreatePlan))
	mux.HandleFunc("GET /plans", middleware.WithLogging(billingHandler.ListPlans))
	mux.HandleFunc("POST /features", middleware.WithLogging(billingHandler.CreateFeature))
	mux.HandleFunc("GET /features", middleware.WithLogging(billingHandler.ListFeatures))
	mux.HandleFunc("POST /plans/{id}/features", middleware.WithLogging(billingHandler.SetPlanFeature))
	mux.HandleFunc("POST /subscriptions", middleware.WithLogging(billingHandler.CreateSubscription))
	mux.HandleFunc("GET /users/{id}/subscriptions", middleware.WithLogging(billingHandler.ListUserSubscriptions))
	mux.HandleFunc("PATCH /subscriptions/{id}", middleware.WithLogging(billingHandler.PatchSubscription))
	mux.HandleFunc("POST /subscriptions/{id}/payments", middleware.WithLogging(billingHandler.CreatePayment))

	// Quizzes, questions, answers
	mux.HandleFunc("POST /quizzes", middleware.WithLogging(quizHandler.CreateQuiz))
	mux.HandleFunc("GET /quizzes", middleware.WithLogging(quizHandler.ListQuizzes))
	mux.HandleFunc("GET /quizzes/{id}", middleware.WithLogging(quizHandler.GetQuiz))
	mux.HandleFunc("PUT /quizzes/{id}", middleware.WithLogging(quizHandler.UpdateQuiz))
	mux.HandleFunc("DELETE /quizzes/{id}", middleware.WithLogging(quizHandler.DeleteQuiz))
	mux.HandleFunc("GET /quizzes/{id}/questions", middleware.WithLogging(quizHandler.ListQuestions))
	mux.HandleFunc("POST /questions", middleware.WithLogging(quizHandler.CreateQuestion))
	mux.HandleFunc("PUT /questions/{id}", middleware.WithLogging(quizHandler.UpdateQuestion))
	mux.HandleFunc("DELETE /questions/{id}", middleware.WithLogging(quizHandler.DeleteQuestion))
	mux.HandleFunc("GET /questions/{id}/answers", middleware.WithLogging(quizHandler.ListAnswers))
	mux.HandleFunc("POST /answers", middleware.WithLogging(quizHandler.CreateAnswer))
	mux.HandleFunc("PUT /answers/{id}", middleware.WithLogging(quizHandler.UpdateAnswer))
	mux.HandleFunc("DELETE /answers/{id}", middleware.WithLogging(quizHandler.DeleteAnswer))
	mux.HandleFunc("GET /creation-methods", middleware.WithLogging(quizHandler.ListCreationMethods))

	// Stories
	mux.HandleFunc("POST /stories", middleware.WithLogging(storyHandler.CreateStory))
	mux.HandleFunc("GET /stories", middleware.WithLogging(storyHandler.ListStories))
	mux.HandleFunc("GET /stories/{id}", middleware.WithLogging(storyHandler.GetStory))
	mux.HandleFunc("DELETE /stories/{id}", middleware.WithLogging(storyHandler.DeleteStory))
	mux.HandleFunc("POST /stories/{id}/contents", middleware.WithLogging(storyHandler.AddContent))
	mux.HandleFunc("DELETE /stories/{id}/contents/{contentID}", middleware.WithLogging(storyHandler.DeleteContent))

	// Courses
	mux.HandleFunc("POST /courses", middleware.WithLogging(courseHandler.CreateCourse))
	mux.HandleFunc("GET /courses", middleware.WithLogging(courseHandler.ListCourses))
	mux.HandleFunc("GET /courses/{id}", middleware.WithLogging(courseHandler.GetCourse))
	mux.HandleFunc("DELETE /courses/{id}", middleware.WithLogging(courseHandler.DeleteCourse))
	mux.HandleFunc("POST /courses/{id}/contents", middleware.WithLogging(courseHandler.AddContent))
	mux.HandleFunc("DELETE /courses/{id}/contents/{contentID}", middleware.WithLogging(courseHandler.DeleteContent))

	// Live game sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("GET /sessions/code/{code}", middleware.WithLogging(sessionHandler.GetSessionByCode))
	mux.HandleFunc("DELETE /sessions/{id}", middleware.WithLogging(sessionHandler.DeleteSession))
	mux.HandleFunc("POST /sessions/{id}/join", middleware.WithLogging(sessionHandler.JoinSession))
	mux.HandleFunc("GET /sessions/{id}/participants", middleware.WithLogging(sessionHandler.ListParticipants))
	mux.HandleFunc("POST /sessions/{id}/participants/{participantID}/answers", middleware.WithLogging(sessionHandler.SubmitAnswer))
	mux.HandleFunc("GET /sessions/{id}/participants/{participantID}/answers", middleware.WithLogging(sessionHandler.ListParticipantAnswers))
	mux.HandleFunc("PATCH /sessions/{id}/participants/{participantID}/score", middleware.WithLogging(sessionHandler.UpdateParticipantScore))
	mux.HandleFunc("DELETE /sessions/{id}/participants/{participantID}", middleware.WithLogging(sessionHandler.DeleteParticipant))
	mux.HandleFunc("POST /sessions/{id}/advance", middleware.WithLogging(sessionHandler.AdvanceQuestion))
	mux.HandleFunc("POST /sessions/{id}/end", middleware.WithLogging(sessionHandler.EndSession))
	mux.HandleFunc("GET /sessions/{id}/leaderboard", middleware.WithLogging(sessionHandler.Leaderboard))

	// Documents and support
	mux.HandleFunc("POST /users/{id}/documents", middleware.WithLogging(documentHandler.CreateDocument))
	mux.HandleFunc("GET /users/{id}/documents", middleware.WithLogging(documentHandler.ListDocuments))
	mux.HandleFunc("DELETE /documents/{id}", middleware.WithLogging(documentHandler.DeleteDocument))
	mux.HandleFunc("POST /support-cases", middleware.WithLogging(documentHandler.CreateSupportCase))
	mux.HandleFunc("GET /support-cases", middleware.WithLogging(documentHandler.ListSupportCases))
	mux.HandleFunc("PATCH /support-cases/{id}", middleware.WithLogging(documentHandler.PatchSupportCase))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quizroom API v1"))
	})

	return mux
}
