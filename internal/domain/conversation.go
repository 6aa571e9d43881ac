package domain

// Role attributes a conversation turn. The wire values follow the
// provider's convention, which is what the app replays back to us.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one prior message of a conversation as the client resends it
// each request. Immutable.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is the bounded, ordered payload for a single model call:
// the windowed prior turns plus the content of the current user turn.
// Attachment parts are sent before the text part; an empty Text means no
// text part is sent at all.
type Conversation struct {
	History     []Turn
	Attachments []AttachmentRef
	Text        string
}
