package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/costlens/backend/internal/domain"
)

const (
	// ExitSuccess is returned when the command completed.
	ExitSuccess = 0
	// ExitNotFound is returned when the city has no price page or table.
	ExitNotFound = 1
	// ExitInvalidArgs is returned when flags or configuration are invalid.
	ExitInvalidArgs = 2
	// ExitUpstream is returned when the price source fails.
	ExitUpstream = 3
	// ExitInternal is returned for unexpected failures.
	ExitInternal = 4
)

// cliError carries an exit code alongside the message shown to the user
type cliError struct {
	Message  string
	ExitCode int
}

func (e *cliError) Error() string {
	return e.Message
}

// classifyCLIError maps an error to the exit code and message the CLI reports
func classifyCLIError(err error) *cliError {
	var cliErr *cliError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	switch {
	case errors.Is(err, domain.ErrCityNotFound), errors.Is(err, domain.ErrNoPriceTable):
		return &cliError{Message: err.Error(), ExitCode: ExitNotFound}
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidCatalog):
		return &cliError{Message: err.Error(), ExitCode: ExitInvalidArgs}
	case errors.Is(err, domain.ErrSourceUnavailable), errors.Is(err, domain.ErrRateLimited),
		errors.Is(err, context.DeadlineExceeded):
		return &cliError{Message: err.Error(), ExitCode: ExitUpstream}
	default:
		return &cliError{Message: err.Error(), ExitCode: ExitInternal}
	}
}

func invalidArgsError(format string, args ...interface{}) error {
	return &cliError{Message: fmt.Sprintf(format, args...), ExitCode: ExitInvalidArgs}
}
