package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirm prompts the user with a yes/no question on stdin. Returns true for yes.
func Confirm(prompt string) bool {
	return ConfirmFrom(os.Stdin, os.Stderr, StyleWarning.Render(prompt))
}

// ConfirmDanger is like Confirm but styled for destructive actions.
func ConfirmDanger(prompt string) bool {
	return ConfirmFrom(os.Stdin, os.Stderr, StyleError.Render("⚠ "+prompt))
}

// ConfirmFrom asks prompt on w and reads the answer from r.
func ConfirmFrom(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(r).ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}
