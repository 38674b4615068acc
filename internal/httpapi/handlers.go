package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mannerisms/internal/auth"
	"mannerisms/internal/quiz"
)

const readinessTimeout = 2 * time.Second

func (a *API) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

func (a *API) HandleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	for _, pinger := range a.ready {
		if err := pinger.Ping(ctx); err != nil {
			a.logger.WithError(err).Warn("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, statusResponse{Status: "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, statusResponse{Status: "ready"})
}

func (a *API) HandleRegister(c *gin.Context) {
	var request registerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := a.auth.Register(c.Request.Context(), request.Username, request.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// HandleToken takes OAuth2 password-flow form fields.
func (a *API) HandleToken(c *gin.Context) {
	var form tokenForm
	if err := c.ShouldBind(&form); err != nil {
		writeBindError(c, err)
		return
	}

	pair, err := a.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			abortUnauthorized(c, "incorrect username or password")
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (a *API) HandleRefresh(c *gin.Context) {
	var request refreshRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeBindError(c, err)
		return
	}

	pair, err := a.auth.Refresh(c.Request.Context(), request.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid refresh token"})
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (a *API) HandleListQuestions(c *gin.Context) {
	questions, err := a.quiz.ListQuestions(c.Request.Context(), c.Query("culture"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if questions == nil {
		questions = make([]quiz.BasicQuestion, 0)
	}

	c.JSON(http.StatusOK, questions)
}

func (a *API) HandleCreateQuestion(c *gin.Context) {
	var request createQuestionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeBindError(c, err)
		return
	}

	question, err := a.quiz.CreateQuestion(c.Request.Context(), quiz.NewQuestion{
		Question:      request.Question,
		Options:       request.Options,
		CorrectAnswer: request.CorrectAnswer,
		Explanation:   request.Explanation,
		Category:      strings.TrimSpace(request.Category),
		Difficulty:    request.Difficulty,
		Culture:       strings.TrimSpace(request.Culture),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (a *API) HandleSubmitAnswer(c *gin.Context) {
	var request answerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeBindError(c, err)
		return
	}

	user := currentUser(c)
	result, err := a.quiz.SubmitAnswer(c.Request.Context(), user.ID, c.Param("id"), *request.UserAnswer)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (a *API) HandleAdvancedQuestion(c *gin.Context) {
	question, err := a.quiz.RandomAdvancedQuestion(c.Request.Context(), c.Query("culture"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, advancedQuestionResponse{
		ID:       question.ID,
		Question: question.Question,
		Culture:  question.Culture,
	})
}

func (a *API) HandleSubmitAdvancedAnswer(c *gin.Context) {
	var request answerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeBindError(c, err)
		return
	}

	user := currentUser(c)
	grade, err := a.quiz.SubmitAdvancedAnswer(c.Request.Context(), user.ID, c.Param("id"), *request.UserAnswer)
	switch {
	case err == nil:
		a.metrics.observeGrade(graderOutcomeSuccess)
	case errors.Is(err, quiz.ErrUpstreamFormat):
		a.metrics.observeGrade(graderOutcomeFormatError)
	case errors.Is(err, quiz.ErrUpstreamCall):
		a.metrics.observeGrade(graderOutcomeCallError)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grade)
}

func (a *API) HandleProgress(c *gin.Context) {
	user := currentUser(c)
	progress, err := a.quiz.GetProgress(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProgressResponse(user, progress))
}
