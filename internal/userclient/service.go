package userclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultServer            = "http://127.0.0.1:8080"
	defaultHTTPTimeout       = 45 * time.Second
	defaultMaxInvalidAnswers = 3
)

type Config struct {
	Username          string
	Password          string
	ServerURL         string
	Culture           string
	Register          bool
	MaxInvalidAnswers int
	HTTPTimeout       time.Duration
}

// Run logs the player in and serves an interactive command loop until exit or
// end of input.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		return errors.New("username is required")
	}
	if cfg.Password == "" {
		return errors.New("password is required")
	}

	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	maxInvalidAnswers := cfg.MaxInvalidAnswers
	if maxInvalidAnswers <= 0 {
		maxInvalidAnswers = defaultMaxInvalidAnswers
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := NewHTTPClient(serverURL, &http.Client{Timeout: timeout})
	if cfg.Register {
		if err := client.Register(ctx, username, cfg.Password); err != nil {
			return fmt.Errorf("register: %w", describeClientError(err, serverURL))
		}
	}
	if err := client.Login(ctx, username, cfg.Password); err != nil {
		return fmt.Errorf("login: %w", describeClientError(err, serverURL))
	}

	session := &session{
		client:            client,
		reader:            bufio.NewReader(in),
		out:               out,
		serverURL:         serverURL,
		culture:           strings.TrimSpace(cfg.Culture),
		maxInvalidAnswers: maxInvalidAnswers,
	}

	fmt.Fprintf(out, "mannerisms quiz\nusername=%s\nserver=%s\n\n", username, serverURL)
	printHelp(out)
	return session.loop(ctx)
}

type session struct {
	client            *HTTPClient
	reader            *bufio.Reader
	out               io.Writer
	serverURL         string
	culture           string
	maxInvalidAnswers int
}

func (s *session) loop(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, "\n> ")
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		var cmdErr error
		switch command {
		case "help":
			printHelp(s.out)
		case "exit":
			return nil
		case "cultures":
			printCultures(s.out)
		case "questions":
			cmdErr = s.listQuestions(ctx, cultureArg(args, s.culture))
		case "play":
			cmdErr = s.play(ctx, cultureArg(args, s.culture))
		case "advanced":
			cmdErr = s.advanced(ctx, cultureArg(args, s.culture))
		case "progress":
			cmdErr = s.progress(ctx)
		default:
			fmt.Fprintln(s.out, "unknown command. type 'help' for usage.")
		}
		if cmdErr != nil {
			fmt.Fprintf(s.out, "error: %v\n", describeClientError(cmdErr, s.serverURL))
		}
	}
}

func (s *session) listQuestions(ctx context.Context, culture string) error {
	questions, err := s.client.ListQuestions(ctx, culture)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Fprintln(s.out, "No questions.")
		return nil
	}

	for idx, question := range questions {
		fmt.Fprintf(s.out, "%d. [%s] %s\n", idx+1, question.Tag, question.Question)
	}
	return nil
}

func (s *session) play(ctx context.Context, culture string) error {
	questions, err := s.client.ListQuestions(ctx, culture)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Fprintln(s.out, "No questions.")
		return nil
	}

	correctCount := 0
	answered := 0
	for _, question := range questions {
		fmt.Fprintln(s.out)
		fmt.Fprintf(s.out, "[%s] %s\n\n", question.Tag, question.Question)
		for idx, option := range question.Options {
			fmt.Fprintf(s.out, "%s. %s\n", optionLetter(idx), option)
		}
		fmt.Fprintln(s.out)

		invalidCount := 0
		for {
			index, ok := promptAnswer(s.reader, s.out, len(question.Options))
			if !ok {
				invalidCount++
				if invalidCount >= s.maxInvalidAnswers {
					fmt.Fprintln(s.out, "Skipping question after multiple invalid responses.")
					break
				}
				fmt.Fprintf(s.out, "Invalid input. Attempts remaining: %d\n", s.maxInvalidAnswers-invalidCount)
				continue
			}

			result, err := s.client.SubmitAnswer(ctx, question.ID, question.Options[index])
			if err != nil {
				return err
			}
			answered++
			if result.Correct {
				correctCount++
				fmt.Fprintln(s.out, "Correct!")
			} else {
				fmt.Fprintln(s.out, "Wrong.")
			}
			if result.Explanation != "" {
				fmt.Fprintln(s.out, result.Explanation)
			}
			break
		}
	}

	fmt.Fprintln(s.out)
	if answered == 0 {
		fmt.Fprintln(s.out, "No answers submitted in this run.")
		return nil
	}
	fmt.Fprintf(s.out, "This run: %d/%d correct\n", correctCount, answered)
	return s.progress(ctx)
}

func (s *session) advanced(ctx context.Context, culture string) error {
	question, err := s.client.AdvancedQuestion(ctx, culture)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\n%s\n\n", question.Question)
	answer, err := promptLine(s.reader, s.out, "Your answer: ")
	if err != nil {
		return err
	}
	if answer == "" {
		fmt.Fprintln(s.out, "Skipped.")
		return nil
	}

	grade, err := s.client.SubmitAdvancedAnswer(ctx, question.ID, answer)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Score: %d\n%s\n", grade.Score, grade.Response)
	return nil
}

func (s *session) progress(ctx context.Context) error {
	progress, err := s.client.Progress(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Total score: %d\n", progress.Score)
	fmt.Fprintf(s.out, "Completed questions: %d\n", len(progress.CompletedQuestions))
	if !progress.LastActivity.IsZero() {
		fmt.Fprintf(s.out, "Last activity: %s\n", progress.LastActivity.Format(time.RFC3339))
	}
	return nil
}
