package session

import "fmt"

const (
	KindSessionNotFound    = "SessionNotFoundError"
	KindSessionFull        = "SessionFullError"
	KindGameAlreadyStarted = "GameAlreadyStartedError"
	KindSessionBusy        = "SessionBusyError"
)

type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %s not found", e.SessionID)
}

func (e *SessionNotFoundError) Kind() string {
	return KindSessionNotFound
}

type SessionFullError struct {
	SessionID string
}

func (e *SessionFullError) Error() string {
	return fmt.Sprintf("session %s is full", e.SessionID)
}

func (e *SessionFullError) Kind() string {
	return KindSessionFull
}

type GameAlreadyStartedError struct {
	SessionID string
}

func (e *GameAlreadyStartedError) Error() string {
	return fmt.Sprintf("game in session %s has already started", e.SessionID)
}

func (e *GameAlreadyStartedError) Kind() string {
	return KindGameAlreadyStarted
}

// SessionBusyError is returned when a session's mailbox is full.
type SessionBusyError struct {
	SessionID string
}

func (e *SessionBusyError) Error() string {
	return fmt.Sprintf("session %s is busy, try again", e.SessionID)
}

func (e *SessionBusyError) Kind() string {
	return KindSessionBusy
}
