package models

import "time"

// Snapshot is the latest persisted state of one session.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Seq       uint64    `json:"seq"`
	Data      []byte    `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}
