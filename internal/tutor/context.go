package tutor

import "github.com/savvy-app/archie-server/internal/domain"

// BuildContext assembles the bounded payload for one model call: the
// last window turns of history in chronological order (oldest dropped
// first), then the current turn with attachments ahead of the text.
// An empty text means no text part is sent; the dispatcher guarantees
// the current turn is never completely empty before this runs.
func BuildContext(history []domain.Turn, window int, text string, attachments []domain.AttachmentRef) domain.Conversation {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}
	return domain.Conversation{
		History:     history,
		Attachments: attachments,
		Text:        text,
	}
}
