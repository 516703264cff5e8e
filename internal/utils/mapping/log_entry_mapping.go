package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/models"
)

// ToModelLogEntry converts a domain LogEntry to a model LogEntry, encoding
// the snapshots as JSON for the JSONB columns.
func ToModelLogEntry(d domain.LogEntry) (models.LogEntry, error) {
	var before, after []byte
	var err error
	if d.Before != nil {
		if before, err = json.Marshal(d.Before); err != nil {
			return models.LogEntry{}, fmt.Errorf("failed to encode before snapshot: %w", err)
		}
	}
	if d.After != nil {
		if after, err = json.Marshal(d.After); err != nil {
			return models.LogEntry{}, fmt.Errorf("failed to encode after snapshot: %w", err)
		}
	}
	return models.LogEntry{
		ID:           d.ID,
		EntryType:    string(d.EntryType),
		ActorID:      d.ActorID,
		CreatedAt:    d.CreatedAt,
		ShareOwnerID: d.ShareOwnerID,
		UserID:       d.UserID,
		DraftUserID:  d.DraftUserID,
		Before:       before,
		After:        after,
	}, nil
}

// ToDomainLogEntry converts a model LogEntry to a domain LogEntry.
func ToDomainLogEntry(m models.LogEntry) (domain.LogEntry, error) {
	d := domain.LogEntry{
		ID:           m.ID,
		EntryType:    domain.LogEntryType(m.EntryType),
		ActorID:      m.ActorID,
		CreatedAt:    m.CreatedAt,
		ShareOwnerID: m.ShareOwnerID,
		UserID:       m.UserID,
		DraftUserID:  m.DraftUserID,
	}
	if len(m.Before) > 0 {
		if err := json.Unmarshal(m.Before, &d.Before); err != nil {
			return domain.LogEntry{}, fmt.Errorf("failed to decode before snapshot: %w", err)
		}
	}
	if len(m.After) > 0 {
		if err := json.Unmarshal(m.After, &d.After); err != nil {
			return domain.LogEntry{}, fmt.Errorf("failed to decode after snapshot: %w", err)
		}
	}
	return d, nil
}
