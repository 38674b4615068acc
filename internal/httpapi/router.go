package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mannerisms/internal/auth"
	"mannerisms/internal/quiz"
)

func NewRouter(authService *auth.Service, quizService *quiz.Service, opts ...Option) http.Handler {
	api := NewAPI(authService, quizService, opts...)

	r := gin.New()
	r.Use(gin.Recovery(), corsMiddleware(), api.metrics.middleware(), requestLogger(api.logger))

	r.GET("/health", api.HandleHealth)
	r.GET("/ready", api.HandleReady)
	r.GET("/metrics", gin.WrapH(api.metrics.handler()))

	r.POST("/users/", api.HandleRegister)
	r.POST("/token", api.HandleToken)
	r.POST("/refresh", api.HandleRefresh)

	r.GET("/questions/", api.HandleListQuestions)
	r.GET("/advancedQuestion/", api.HandleAdvancedQuestion)

	authed := r.Group("/", requireUser(authService))
	authed.POST("/questions/", api.HandleCreateQuestion)
	authed.POST("/questions/:id/answer", api.HandleSubmitAnswer)
	authed.POST("/advancedQuestion/:id/answer/", api.HandleSubmitAdvancedAnswer)
	authed.GET("/progress/", api.HandleProgress)

	return r
}
