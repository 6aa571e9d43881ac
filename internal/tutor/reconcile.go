package tutor

import (
	"encoding/json"

	"github.com/savvy-app/archie-server/internal/domain"
)

// Reconcile merges the attachment references the client carried over
// from prior turns with the ones uploaded this turn. Prior entries are
// kept only when they parse to a structurally complete reference (both
// uri and mimeType); legacy or malformed shapes from older app builds
// are dropped silently instead of failing the turn. Order is
// append-only: filtered prior entries first, then uploads, never
// reordered or deduplicated. The result is always non-nil so it
// marshals as an array.
func Reconcile(priorActive []json.RawMessage, uploaded []domain.AttachmentRef) []domain.AttachmentRef {
	merged := make([]domain.AttachmentRef, 0, len(priorActive)+len(uploaded))
	for _, raw := range priorActive {
		var ref domain.AttachmentRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			continue
		}
		if !ref.Valid() {
			continue
		}
		merged = append(merged, ref)
	}
	return append(merged, uploaded...)
}
