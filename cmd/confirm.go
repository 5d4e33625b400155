package cmd

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

var errNotInteractive = errors.New("stdin is not a terminal; pass --yes to confirm")

// confirm asks a yes/no question on the terminal. Without a terminal it
// refuses rather than assuming an answer.
func confirm(question string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, errNotInteractive
	}

	ok := false
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
