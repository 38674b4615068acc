package userclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"mannerisms/internal/auth"
	"mannerisms/internal/quiz"
)

var (
	ErrServiceUnavailable = errors.New("quiz service unavailable")
	ErrNotLoggedIn        = errors.New("not logged in")
)

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// HTTPClient talks to the quiz service on behalf of one player. It keeps the
// token pair from the last login and rotates it once when an authenticated
// call comes back 401.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	tokens auth.TokenPair
}

type AdvancedQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Culture  string `json:"culture"`
}

type Progress struct {
	ID   string `json:"id"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Score              int       `json:"score"`
	CompletedQuestions []string  `json:"completed_questions"`
	LastActivity       time.Time `json:"last_activity"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type answerRequest struct {
	UserAnswer string `json:"user_answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultServer
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	body := credentialsRequest{Username: username, Password: password}
	return c.doJSON(ctx, http.MethodPost, "/users/", body, nil, "")
}

// Login exchanges credentials for a token pair using the form-encoded
// password flow the service expects.
func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var pair auth.TokenPair
	if err := c.send(request, &pair); err != nil {
		return err
	}
	c.setTokens(pair)
	return nil
}

func (c *HTTPClient) ListQuestions(ctx context.Context, culture string) ([]quiz.BasicQuestion, error) {
	path := "/questions/"
	if trimmed := strings.TrimSpace(culture); trimmed != "" {
		path += "?" + url.Values{"culture": {trimmed}}.Encode()
	}

	var questions []quiz.BasicQuestion
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &questions, ""); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *HTTPClient) SubmitAnswer(ctx context.Context, questionID, answer string) (quiz.AnswerResult, error) {
	path := "/questions/" + url.PathEscape(questionID) + "/answer"

	var result quiz.AnswerResult
	if err := c.doAuthorized(ctx, http.MethodPost, path, answerRequest{UserAnswer: answer}, &result); err != nil {
		return quiz.AnswerResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) AdvancedQuestion(ctx context.Context, culture string) (AdvancedQuestion, error) {
	path := "/advancedQuestion/"
	if trimmed := strings.TrimSpace(culture); trimmed != "" {
		path += "?" + url.Values{"culture": {trimmed}}.Encode()
	}

	var question AdvancedQuestion
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &question, ""); err != nil {
		return AdvancedQuestion{}, err
	}
	return question, nil
}

func (c *HTTPClient) SubmitAdvancedAnswer(ctx context.Context, questionID, answer string) (quiz.Grade, error) {
	path := "/advancedQuestion/" + url.PathEscape(questionID) + "/answer/"

	var grade quiz.Grade
	if err := c.doAuthorized(ctx, http.MethodPost, path, answerRequest{UserAnswer: answer}, &grade); err != nil {
		return quiz.Grade{}, err
	}
	return grade, nil
}

func (c *HTTPClient) Progress(ctx context.Context) (Progress, error) {
	var progress Progress
	if err := c.doAuthorized(ctx, http.MethodGet, "/progress/", nil, &progress); err != nil {
		return Progress{}, err
	}
	return progress, nil
}

func (c *HTTPClient) currentTokens() auth.TokenPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

func (c *HTTPClient) setTokens(pair auth.TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = pair
}

func (c *HTTPClient) refresh(ctx context.Context, refreshToken string) error {
	var pair auth.TokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/refresh", refreshRequest{RefreshToken: refreshToken}, &pair, ""); err != nil {
		return err
	}
	c.setTokens(pair)
	return nil
}

func (c *HTTPClient) doAuthorized(ctx context.Context, method, path string, requestBody, responseBody any) error {
	tokens := c.currentTokens()
	if tokens.AccessToken == "" {
		return ErrNotLoggedIn
	}

	err := c.doJSON(ctx, method, path, requestBody, responseBody, tokens.AccessToken)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized || tokens.RefreshToken == "" {
		return err
	}

	if refreshErr := c.refresh(ctx, tokens.RefreshToken); refreshErr != nil {
		return err
	}
	return c.doJSON(ctx, method, path, requestBody, responseBody, c.currentTokens().AccessToken)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody, responseBody any, accessToken string) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		request.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return c.send(request, responseBody)
}

func (c *HTTPClient) send(request *http.Request, responseBody any) error {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
