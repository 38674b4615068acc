package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CultureWestern       = "western"
	CultureEastAsian     = "east_asian"
	CultureSouthAsian    = "south_asian"
	CultureMiddleEastern = "middle_eastern"
)

var cultureNames = map[string]string{
	CultureWestern:       "Western",
	CultureEastAsian:     "East Asian",
	CultureSouthAsian:    "South Asian",
	CultureMiddleEastern: "Middle Eastern",
}

// Cultures lists the supported culture keys in display order.
func Cultures() []string {
	return []string{CultureWestern, CultureEastAsian, CultureSouthAsian, CultureMiddleEastern}
}

func CultureName(culture string) (string, bool) {
	name, ok := cultureNames[culture]
	return name, ok
}

type BasicQuestion struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	Tag           string    `json:"tag"`
	Culture       string    `json:"culture"`
	CreatedAt     time.Time `json:"created_at"`
}

type AdvancedQuestion struct {
	ID            string
	Question      string
	Culture       string
	CorrectAnswer string
	CreatedAt     time.Time
}

// NewQuestion is the caller-supplied part of a basic question. The tag and id
// are assigned by the service.
type NewQuestion struct {
	Question      string
	Options       []string
	CorrectAnswer string
	Explanation   string
	Category      string
	Difficulty    string
	Culture       string
}

// BuildTag renders the human readable de-duplication key, e.g.
// "Western Greetings - 1".
func BuildTag(culture, category string, sequence int) string {
	name, ok := CultureName(culture)
	if !ok {
		name = culture
	}
	return fmt.Sprintf("%s %s - %d", name, category, sequence)
}

func (n NewQuestion) validate() error {
	if _, ok := CultureName(n.Culture); !ok {
		return fmt.Errorf("%w: unknown culture %q", ErrInvalidQuestion, n.Culture)
	}
	if strings.TrimSpace(n.Question) == "" || strings.TrimSpace(n.Category) == "" {
		return fmt.Errorf("%w: question and category are required", ErrInvalidQuestion)
	}
	if len(n.Options) < 2 {
		return fmt.Errorf("%w: at least two options are required", ErrInvalidQuestion)
	}
	for _, option := range n.Options {
		if option == n.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("%w: correct_answer must be one of the options", ErrInvalidQuestion)
}

func (n NewQuestion) build(sequence int, now time.Time) BasicQuestion {
	options := make([]string, len(n.Options))
	copy(options, n.Options)

	return BasicQuestion{
		ID:            uuid.NewString(),
		Question:      n.Question,
		Options:       options,
		CorrectAnswer: n.CorrectAnswer,
		Explanation:   n.Explanation,
		Category:      n.Category,
		Difficulty:    n.Difficulty,
		Tag:           BuildTag(n.Culture, n.Category, sequence),
		Culture:       n.Culture,
		CreatedAt:     now,
	}
}
