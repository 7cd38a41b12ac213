package game

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// Error kinds as reported to clients.
const (
	KindValidation        = "ValidationError"
	KindIllegalAction     = "IllegalActionError"
	KindInsufficientFunds = "InsufficientFundsError"
	KindStaleTrade        = "StaleTradeError"
)

// ValidationError is returned for malformed payloads.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid command: %s", e.Detail)
}

func (e *ValidationError) Kind() string {
	return KindValidation
}

// IllegalActionError is returned when a well-formed command is not allowed
// for this actor in the current phase.
type IllegalActionError struct {
	Detail string
	Phase  types.Phase
	// Legal lists the commands the actor could issue instead
	Legal []CommandKind
}

func (e *IllegalActionError) Error() string {
	if len(e.Legal) == 0 {
		return fmt.Sprintf("illegal action in phase %s: %s", e.Phase, e.Detail)
	}
	legal := make([]string, len(e.Legal))
	for i, k := range e.Legal {
		legal[i] = string(k)
	}
	return fmt.Sprintf("illegal action in phase %s: %s (legal: %s)", e.Phase, e.Detail, strings.Join(legal, ", "))
}

func (e *IllegalActionError) Kind() string {
	return KindIllegalAction
}

// InsufficientFundsError is returned when a payment exceeds the player's cash.
type InsufficientFundsError struct {
	Needed    int
	Available int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d, have %d", e.Needed, e.Available)
}

func (e *InsufficientFundsError) Kind() string {
	return KindInsufficientFunds
}

// StaleTradeError is returned when an accepted trade no longer matches the
// holdings of either party.
type StaleTradeError struct {
	TradeID string
	Detail  string
}

func (e *StaleTradeError) Error() string {
	return fmt.Sprintf("trade %s is stale: %s", e.TradeID, e.Detail)
}

func (e *StaleTradeError) Kind() string {
	return KindStaleTrade
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}
