package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/aq/log"
	"github.com/ardnew/aq/pipeline"
	"github.com/ardnew/aq/pkg"
)

// Report writes the diagnostic for err to w and returns the process exit
// status: 0 for a nil error, 1 otherwise.
//
// The diagnostic is a context line naming the failed operation and its
// subject, followed by the message of the underlying cause.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	log.Debug("run failed", slog.Any("error", err))

	summary, cause := pkg.Name+": error", err

	var perr *pipeline.Error
	if errors.As(err, &perr) {
		summary, cause = perr.Summary(), perr.Unwrap()
	}

	fmt.Fprintln(w, summary)

	if cause != nil {
		fmt.Fprintln(w, cause.Error())
	}

	return 1
}
