package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/pantryhq/pantry/internal/output"
	"github.com/pantryhq/pantry/internal/pantry"
)

// cmdError returns an appropriate error for JSON or text mode.
// Note: Use %v instead of %w for error arguments - wrapping is not preserved in JSON mode.
func cmdError(jsonMode bool, code string, format string, args ...any) error {
	if jsonMode {
		return output.Error(code, fmt.Sprintf(format, args...))
	}
	return fmt.Errorf(format, args...)
}

// failure reports err in JSON or text mode, picking the code from its kind.
func failure(jsonMode bool, err error) error {
	if jsonMode {
		return output.Error(errorCode(err), err.Error())
	}
	return err
}

// errorCode maps an error to the JSON envelope code.
func errorCode(err error) string {
	switch {
	case pantry.IsNotFound(err):
		return output.ErrNotFound
	case pantry.IsValidation(err):
		return output.ErrValidation
	default:
		return output.ErrDatabase
	}
}

// confirmFunc asks the user a yes/no question. Tests replace it.
var confirmFunc = func(title, description string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing to prompt without a terminal (use --force)")
	}

	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()
	if err != nil {
		return false, err
	}
	return confirm, nil
}
