package httpapi

import (
	"time"

	"mannerisms/internal/auth"
	"mannerisms/internal/quiz"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type createQuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Explanation   string   `json:"explanation"`
	Category      string   `json:"category" binding:"required"`
	Difficulty    string   `json:"difficulty"`
	Culture       string   `json:"culture" binding:"required"`
}

// answerRequest keeps user_answer as a pointer so an empty answer is graded
// as wrong instead of rejected, while a missing field is still a 400.
type answerRequest struct {
	UserAnswer *string `json:"user_answer" binding:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type advancedQuestionResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Culture  string `json:"culture"`
}

type progressResponse struct {
	ID                 string       `json:"id"`
	User               userResponse `json:"user"`
	Score              int          `json:"score"`
	CompletedQuestions []string     `json:"completed_questions"`
	LastActivity       time.Time    `json:"last_activity"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func toUserResponse(user auth.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

func toProgressResponse(user auth.User, progress quiz.Progress) progressResponse {
	completed := progress.CompletedQuestions
	if completed == nil {
		completed = make([]string, 0)
	}
	return progressResponse{
		ID:                 progress.ID,
		User:               toUserResponse(user),
		Score:              progress.Score,
		CompletedQuestions: completed,
		LastActivity:       progress.LastActivity,
	}
}
