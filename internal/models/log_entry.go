package models

import "time"

// LogEntry represents an audit log row. Before and After are stored as JSONB
// and carried here as raw JSON bytes.
type LogEntry struct {
	ID           int64     `json:"id" db:"id"`
	EntryType    string    `json:"entryType" db:"entry_type"`
	ActorID      string    `json:"actorID" db:"actor_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	ShareOwnerID *int64    `json:"shareOwnerID" db:"share_owner_id"`
	UserID       *string   `json:"userID" db:"user_id"`
	DraftUserID  *int64    `json:"draftUserID" db:"draft_user_id"`
	Before       []byte    `json:"before" db:"before_snapshot"`
	After        []byte    `json:"after" db:"after_snapshot"`
}
