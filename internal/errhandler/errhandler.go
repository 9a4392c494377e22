package errhandler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/bolso/internal/apperr"
	"github.com/pterm/pterm"
)

// IsCancelled reports whether err comes from the user aborting a prompt.
func IsCancelled(err error) bool {
	return errors.Is(err, terminal.InterruptErr) || errors.Is(err, huh.ErrUserAborted)
}

// HandleError prints err for the user and returns the process exit code.
func HandleError(err error) int {
	if err == nil {
		return 0
	}

	if IsCancelled(err) {
		pterm.Warning.Println("Operation Cancelled")
		return 0
	}

	pterm.Error.Println(Message(err))
	return 1
}

// Message renders err as user-facing text. Validation failures are listed one
// field per line.
func Message(err error) string {
	if fields := apperr.FieldErrors(err); len(fields) > 0 && errors.Is(err, apperr.ErrValidation) {
		var b strings.Builder
		b.WriteString("Invalid input:")
		for _, fe := range fields {
			fmt.Fprintf(&b, "\n  - %s", fe.Error())
		}
		for _, other := range nonField(err) {
			fmt.Fprintf(&b, "\n  - %s", other)
		}
		return b.String()
	}

	return capitalize(err.Error())
}

// nonField returns the messages of joined errors that carry no field.
func nonField(err error) []string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}

	var out []string
	for _, e := range joined.Unwrap() {
		if !errors.Is(e, apperr.ErrValidation) {
			out = append(out, e.Error())
		}
	}
	return out
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
