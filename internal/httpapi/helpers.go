package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"mannerisms/internal/auth"
	"mannerisms/internal/quiz"
)

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "username already registered"})
	case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, quiz.ErrInvalidQuestion):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		abortUnauthorized(c, auth.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "user not found"})
	case errors.Is(err, quiz.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "question not found"})
	case errors.Is(err, quiz.ErrUpstreamFormat), errors.Is(err, quiz.ErrUpstreamCall):
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

// writeBindError reports binding failures, listing each invalid field when
// the validator produced them.
func writeBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, describeFieldError(fieldErr))
	}
	c.JSON(http.StatusBadRequest, validationErrorResponse{
		Error:  "invalid request",
		Fields: fields,
	})
}

func describeFieldError(fieldErr validator.FieldError) string {
	name := toSnakeCase(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return fmt.Sprintf("%s must have at least %s items", name, fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", name, fieldErr.Tag())
	}
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
