package quiz

import "context"

type AnswerResult struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// GradeRequest carries everything the external grader sees for one
// free-text submission.
type GradeRequest struct {
	Question  string
	Culture   string
	Answer    string
	Reference string
}

type Grade struct {
	Score    int    `json:"score"`
	Response string `json:"response"`
}

// Grader judges free-text answers. Implementations return errors wrapping
// ErrUpstreamFormat or ErrUpstreamCall.
type Grader interface {
	Grade(ctx context.Context, request GradeRequest) (Grade, error)
}

func isCorrectAnswer(question BasicQuestion, answer string) bool {
	return answer == question.CorrectAnswer
}
