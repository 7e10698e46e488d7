package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// readLine reads one trimmed input line, returning io.EOF when input is
// exhausted.
func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// prompt asks for a single line of input.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	return s.readLine()
}

// promptDefault asks for input, substituting def when the user presses
// Enter.
func (s *Shell) promptDefault(label, def string) (string, error) {
	fmt.Fprintf(s.out, "%s (default: %s): ", label, def)
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// promptOptionalInt asks for an optional integer within [minValue,
// maxValue]; maxValue 0 means unbounded above. Empty input keeps current.
// Invalid input re-prompts.
func (s *Shell) promptOptionalInt(label string, current *int, minValue, maxValue int) (*int, error) {
	for {
		def := ""
		if current != nil {
			def = strconv.Itoa(*current)
		}
		fmt.Fprintf(s.out, "%s [%s]: ", label, def)

		line, err := s.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return current, nil
		}

		value, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid input: %q is not a number\n", line)
			continue
		}
		if value < minValue {
			fmt.Fprintf(s.out, "Value should be greater than or equal to %d\n", minValue)
			continue
		}
		if maxValue > 0 && value > maxValue {
			fmt.Fprintf(s.out, "Value should be less than or equal to %d\n", maxValue)
			continue
		}
		return &value, nil
	}
}

// promptBoundedInt asks for a required integer within [minValue, maxValue],
// offering def on empty input. Invalid input re-prompts.
func (s *Shell) promptBoundedInt(label string, def, minValue, maxValue int) (int, error) {
	for {
		line, err := s.promptDefault(label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}

		value, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid input: %q is not a number\n", line)
			continue
		}
		if value < minValue || (maxValue > 0 && value > maxValue) {
			fmt.Fprintf(s.out, "Value should be between %d and %d\n", minValue, maxValue)
			continue
		}
		return value, nil
	}
}

// promptList asks for a comma-separated list. Empty input keeps current.
func (s *Shell) promptList(label string, current []string) ([]string, error) {
	fmt.Fprintf(s.out, "%s [%s]: ", label, strings.Join(current, ","))
	line, err := s.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return current, nil
	}

	parts := strings.Split(line, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values, nil
}

// animate prints text one rune at a time. With a zero delay it degrades
// to a plain line.
func (s *Shell) animate(text string) {
	if s.opts.AnimationDelay <= 0 {
		fmt.Fprintln(s.out, text)
		return
	}
	for _, r := range text {
		fmt.Fprintf(s.out, "%c", r)
		time.Sleep(s.opts.AnimationDelay)
	}
	fmt.Fprintln(s.out)
}

// clear wipes the terminal when enabled.
func (s *Shell) clear() {
	if s.opts.ClearScreen {
		fmt.Fprint(s.out, "\033[2J\033[H")
	}
}
