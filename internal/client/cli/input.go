package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetToken reads a bearer token from the terminal without echo. The caller
// should wipe the returned slice once it has been copied.
func GetToken(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter access token (empty for none): "); err != nil {
		return nil, err
	}
	tok, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line is
// entered. The collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}
	lines, err := readLines(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetFields prompts for "name=value" lines, one per line, ending on an empty
// line, and returns them as a map. A repeated name keeps the last value.
func GetFields(reader *bufio.Reader, prompt string, w io.Writer) (map[string]string, error) {
	if _, err := fmt.Fprint(w, prompt+"\nEnter fields as name=value (empty line to finish)\n"); err != nil {
		return nil, err
	}
	lines, err := readLines(reader)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", line)
		}
		fields[name] = strings.TrimSpace(value)
	}
	return fields, nil
}

func readLines(reader *bufio.Reader) ([]string, error) {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return lines, nil
		}
		lines = append(lines, line)
		if err != nil {
			return lines, nil
		}
	}
}
