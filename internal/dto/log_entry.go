package dto

import (
	"time"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// LogEntryResponse is the API representation of one audit entry.
type LogEntryResponse struct {
	ID           int64          `json:"id"`
	EntryType    string         `json:"entryType"`
	ActorID      string         `json:"actorID"`
	CreatedAt    time.Time      `json:"createdAt"`
	ShareOwnerID *int64         `json:"shareOwnerID,omitempty"`
	UserID       *string        `json:"userID,omitempty"`
	DraftUserID  *int64         `json:"draftUserID,omitempty"`
	Before       map[string]any `json:"before,omitempty"`
	After        map[string]any `json:"after,omitempty"`
}

// ToLogEntryResponse converts a domain log entry.
func ToLogEntryResponse(e *domain.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:           e.ID,
		EntryType:    string(e.EntryType),
		ActorID:      e.ActorID,
		CreatedAt:    e.CreatedAt,
		ShareOwnerID: e.ShareOwnerID,
		UserID:       e.UserID,
		DraftUserID:  e.DraftUserID,
		Before:       e.Before,
		After:        e.After,
	}
}

// ToListLogEntriesResponse converts a slice of domain log entries.
func ToListLogEntriesResponse(entries []domain.LogEntry) []LogEntryResponse {
	responses := make([]LogEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLogEntryResponse(&entries[i])
	}
	return responses
}
