package grader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"mannerisms/internal/quiz"
)

const (
	DefaultTimeout = 30 * time.Second

	defaultResponse = "No response provided."
)

const systemInstruction = `You grade free-text answers to cultural etiquette questions.
Compare the user's answer with the reference answer for the culture named in the question.
Award an integer score from 0 to 100, where 100 means the answer captures every point of the reference answer.
Write one or two sentences of feedback specific to the question's culture. Never mention or compare with any other culture.
Reply with a single JSON object and nothing else, exactly in the form {"score": <integer>, "response": "<feedback>"}.`

// contentGenerator is the subset of *genai.Models the grader calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client grades advanced answers with a hosted language model.
type Client struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" || model == "" {
		return nil, errors.New("grader api key and model are required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newClient(client.Models, model, timeout), nil
}

func newClient(models contentGenerator, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		models:  models,
		model:   model,
		timeout: timeout,
	}
}

// Grade makes one model call per submission. Transport, quota and deadline
// failures wrap quiz.ErrUpstreamCall; replies that are not the expected JSON
// object wrap quiz.ErrUpstreamFormat.
func (c *Client) Grade(ctx context.Context, req quiz.GradeRequest) (quiz.Grade, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		ResponseMIMEType: "application/json",
	}

	result, err := c.models.GenerateContent(ctx, c.model, genai.Text(userMessage(req)), config)
	if err != nil {
		return quiz.Grade{}, fmt.Errorf("%w: %v", quiz.ErrUpstreamCall, err)
	}
	if result == nil {
		return quiz.Grade{}, fmt.Errorf("%w: empty reply", quiz.ErrUpstreamFormat)
	}

	return parseReply(result.Text())
}

func userMessage(req quiz.GradeRequest) string {
	var b strings.Builder
	if req.Culture != "" {
		name, ok := quiz.CultureName(req.Culture)
		if !ok {
			name = req.Culture
		}
		fmt.Fprintf(&b, "Culture: %s\n", name)
	}
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	fmt.Fprintf(&b, "User answer: %s\n", req.Answer)
	fmt.Fprintf(&b, "Reference answer: %s\n", req.Reference)
	return b.String()
}

type reply struct {
	Score    *int    `json:"score"`
	Response *string `json:"response"`
}

func parseReply(text string) (quiz.Grade, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return quiz.Grade{}, fmt.Errorf("%w: empty reply", quiz.ErrUpstreamFormat)
	}

	var parsed reply
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return quiz.Grade{}, fmt.Errorf("%w: %v", quiz.ErrUpstreamFormat, err)
	}
	if parsed.Score == nil {
		return quiz.Grade{}, fmt.Errorf("%w: reply has no score", quiz.ErrUpstreamFormat)
	}
	if *parsed.Score < 0 {
		return quiz.Grade{}, fmt.Errorf("%w: negative score %d", quiz.ErrUpstreamFormat, *parsed.Score)
	}

	response := defaultResponse
	if parsed.Response != nil {
		response = *parsed.Response
	}
	return quiz.Grade{
		Score:    *parsed.Score,
		Response: response,
	}, nil
}
