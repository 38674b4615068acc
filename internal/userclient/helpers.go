package userclient

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"mannerisms/internal/quiz"
)

func promptAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool) {
	if optionCount < 1 {
		return 0, false
	}

	maxLetter := byte('A' + optionCount - 1)
	fmt.Fprintf(out, "Your answer (A-%c): ", maxLetter)

	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, false
	}

	answer := strings.ToUpper(strings.TrimSpace(line))
	if len(answer) != 1 {
		return 0, false
	}
	letter := answer[0]
	if letter < 'A' || letter > maxLetter {
		return 0, false
	}

	return int(letter - 'A'), true
}

func promptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  cultures")
	fmt.Fprintln(out, "  questions [culture]")
	fmt.Fprintln(out, "  play [culture]")
	fmt.Fprintln(out, "  advanced [culture]")
	fmt.Fprintln(out, "  progress")
	fmt.Fprintln(out, "  exit")
}

func printCultures(out io.Writer) {
	for _, culture := range quiz.Cultures() {
		name, _ := quiz.CultureName(culture)
		fmt.Fprintf(out, "  %-12s %s\n", culture, name)
	}
}

// cultureArg returns the optional culture argument, falling back to the
// session default.
func cultureArg(args []string, fallback string) string {
	if len(args) > 1 {
		return args[1]
	}
	return fallback
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("quiz service unavailable at %s", serverURL)
	}
	return err
}

func optionLetter(index int) string {
	return string(rune('A' + index))
}
