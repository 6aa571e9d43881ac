// Package tutor implements the conversation core of the Archie app
// server: per-turn attachment reconciliation, bounded history
// windowing and the multi-action dispatch to the model provider. The
// server holds no session state; all continuity comes from data the
// client resends each turn.
package tutor

import (
	"context"
	"encoding/json"

	"github.com/savvy-app/archie-server/internal/domain"
)

// Action discriminates the four supported request behaviors.
type Action string

const (
	ActionGenerateTitle      Action = "generate_title"
	ActionChat               Action = "chat"
	ActionMathVision         Action = "math_vision"
	ActionGenerateFlashcards Action = "generate_flashcards"
)

// ModelClient is the remote generation capability the service depends
// on. The concrete implementation lives in internal/gemini; tests use
// fakes.
type ModelClient interface {
	// GenerateText runs a one-shot text prompt against the named model.
	GenerateText(ctx context.Context, model, prompt string) (string, error)
	// GenerateJSON runs a one-shot prompt with JSON-forced output and an
	// optional inline image.
	GenerateJSON(ctx context.Context, model, prompt string, image []byte) (string, error)
	// Converse sends a bounded conversation and returns the reply text.
	Converse(ctx context.Context, model, system string, conv domain.Conversation) (string, error)
}

// BlobStore uploads raw payloads to the provider's file store. Uploads
// are idempotent per call and never retried here.
type BlobStore interface {
	Upload(ctx context.Context, data string, media domain.MediaType, displayName string) (domain.AttachmentRef, error)
}

// IncomingFile is one freshly attached file as the client sends it:
// advisory name, declared type and base64 payload. It exists only for
// the duration of one request and is never persisted server-side.
type IncomingFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// Request is the single endpoint's body. Fields beyond Action are
// action-specific; extra fields from older app builds are ignored
// rather than rejected. ActiveFileURIs stays raw because clients may
// replay legacy-shaped entries; reconciliation filters them.
type Request struct {
	Action         Action            `json:"action"`
	Message        string            `json:"message"`
	History        []domain.Turn     `json:"history"`
	Files          []IncomingFile    `json:"files"`
	ActiveFileURIs []json.RawMessage `json:"activeFileUris"`
	Image          string            `json:"image"`
	Topic          string            `json:"topic"`
}

// TitleResult is the generate_title payload.
type TitleResult struct {
	Title string `json:"title"`
}

// ChatResult carries the reply plus the authoritative attachment set
// the client must persist and resend on the next turn.
type ChatResult struct {
	Text           string                 `json:"text"`
	ActiveFileURIs []domain.AttachmentRef `json:"activeFileUris"`
}

// MathProblem is the math_vision payload.
type MathProblem struct {
	LaTeX    string `json:"latex"`
	Hint     string `json:"hint"`
	Solution string `json:"solution"`
}

// Flashcard is one card of the generate_flashcards payload.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Tag   string `json:"tag"`
}
