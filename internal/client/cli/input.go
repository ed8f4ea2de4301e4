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

// askText and askPassword are swapped out in tests.
var (
	askText     = promptText
	askPassword = promptPassword
)

// readSecret reads from the terminal without echo.
var readSecret = term.ReadPassword

// promptText asks for a single field as "Label: " and returns the trimmed
// answer. A required field is asked again while the answer is blank. A last
// line without a newline still counts; end of input otherwise returns io.EOF.
func promptText(r *bufio.Reader, w io.Writer, label string, required bool) (string, error) {
	for {
		if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
			return "", err
		}
		line, err := r.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return "", err
		}
		if line != "" || !required {
			return line, nil
		}
		fmt.Fprintf(w, "%s cannot be empty.\n", label)
	}
}

// promptPassword asks for the Hack or Snooze password of username. The
// caller wipes the returned slice.
func promptPassword(w io.Writer, username string) ([]byte, error) {
	if _, err := fmt.Fprintf(w, "Hack or Snooze password for %s: ", username); err != nil {
		return nil, err
	}
	pw, err := readSecret(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
