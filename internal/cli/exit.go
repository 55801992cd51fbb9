package cli

import (
	"context"
	"errors"

	lookerr "github.com/matzehuels/lookbook/pkg/errors"
)

// Process exit statuses.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// Exit reports err to the user and returns the status main should exit with.
// Interrupts are not reported.
func Exit(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	printError("%s", lookerr.UserMessage(err))
	switch lookerr.GetCode(err) {
	case lookerr.ErrCodeInvalidInput, lookerr.ErrCodeInvalidDeck, lookerr.ErrCodeFileNotFound:
		return ExitUsage
	}
	return ExitFailure
}
