package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/grovetools/tablaunch/errors"
)

// ErrSilent marks a failure the command has already reported. Handle
// prints nothing for it.
var ErrSilent = stderrors.New("failure already reported")

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err based on its code and returns err
func (h *ErrorHandler) Handle(err error) error {
	if err == nil || stderrors.Is(err, ErrSilent) {
		return err
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	s := DefaultStyles()

	launchErr, _ := err.(*errors.LaunchError)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintln(out, s.Error.Render("Configuration not found: ")+errors.Message(err))
		fmt.Fprintln(out, "Run 'tablaunch paths' to see where tablaunch.yml is read from.")

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintln(out, s.Error.Render(errors.Message(err)))
		if launchErr != nil && launchErr.Details["path"] != nil {
			fmt.Fprintf(out, "Fix %v and try again.\n", launchErr.Details["path"])
		}

	case errors.ErrCodeConfinement:
		fmt.Fprintln(out, s.Error.Render(errors.Message(err)))
		if launchErr != nil {
			fmt.Fprintf(out, "The log must stay inside %v\n", launchErr.Details["root"])
		}

	case errors.ErrCodeUnsafeInput:
		fmt.Fprintln(out, s.Error.Render("Rejected: ")+errors.Message(err))

	case errors.ErrCodePathNotFound:
		fmt.Fprintln(out, s.Error.Render(errors.Message(err)))

	case errors.ErrCodeOpenFailed:
		fmt.Fprintln(out, s.Error.Render("Could not open file browser: ")+errors.Message(err))

	default:
		fmt.Fprintln(out, s.Error.Render("Error: ")+err.Error())
	}

	if h.Verbose && launchErr != nil {
		fmt.Fprintf(out, "\nError details:\n%s\n", launchErr.ToJSON())
	}
	return err
}
