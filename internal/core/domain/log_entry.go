package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// LogEntryType names the kind of mutation an audit entry describes.
type LogEntryType string

const (
	LogEntryCreateShareOwnerships LogEntryType = "create_share_ownerships"
	LogEntryUpdateShareOwnership  LogEntryType = "update_share_ownership"
	LogEntryDeleteShareOwnership  LogEntryType = "delete_share_ownership"
	LogEntryUpdateShareOwner      LogEntryType = "update_share_owner"
	LogEntryUpdateDraftUser       LogEntryType = "update_draft_user"
	LogEntryConvertDraftUser      LogEntryType = "convert_draft_user"
	LogEntryCreateTapirUser       LogEntryType = "create_tapir_user"
)

// LogEntry is an immutable audit record of an administrative mutation. It is
// written inside the same transaction as the mutation it describes; the
// repository layer enforces that.
type LogEntry struct {
	ID        int64        `json:"id"`
	EntryType LogEntryType `json:"entryType"`
	ActorID   string       `json:"actorID"` // TapirUser ID of the staff member
	CreatedAt time.Time    `json:"createdAt"`

	// Subject reference: a share owner, a login account, or a draft user.
	// At least one must be set.
	ShareOwnerID *int64  `json:"shareOwnerID,omitempty"`
	UserID       *string `json:"userID,omitempty"`
	DraftUserID  *int64  `json:"draftUserID,omitempty"`

	Before map[string]any `json:"before,omitempty"`
	After  map[string]any `json:"after,omitempty"`
}

// FreezeForLog snapshots an entity into the flat map form stored in audit
// entries. Two snapshots of equal entities compare equal, which is what the
// diff-gated update logging relies on.
func FreezeForLog(entity any) (map[string]any, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to freeze entity for log: %w", err)
	}
	frozen := map[string]any{}
	if err := json.Unmarshal(raw, &frozen); err != nil {
		return nil, fmt.Errorf("failed to freeze entity for log: %w", err)
	}
	return frozen, nil
}

// SnapshotsEqual compares two frozen snapshots by their canonical JSON form.
func SnapshotsEqual(a, b map[string]any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ja) == string(jb)
}
