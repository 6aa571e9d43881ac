// Package gemini adapts the Google generative AI SDK to the tutor core.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/savvy-app/archie-server/internal/domain"
)

// Client wraps a process-lifetime SDK client. It is constructed once at
// startup from validated configuration and is read-only afterwards, so
// concurrent requests share it without locks.
type Client struct {
	ai *genai.Client
}

// New creates a client authenticated with the given API key.
func New(ctx context.Context, apiKey string) (*Client, error) {
	ai, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{ai: ai}, nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	return c.ai.Close()
}

// GenerateText runs a one-shot text prompt against the named model.
func (c *Client) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	m := c.ai.GenerativeModel(model)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(resp)
}

// GenerateJSON runs a one-shot prompt with JSON-forced output and an
// optional inline image. Inline images bypass the file store: the bytes
// travel with the request and leave no reference behind.
func (c *Client) GenerateJSON(ctx context.Context, model, prompt string, image []byte) (string, error) {
	m := c.ai.GenerativeModel(model)
	m.ResponseMIMEType = "application/json"

	parts := []genai.Part{genai.Text(prompt)}
	if len(image) > 0 {
		parts = append(parts, genai.Blob{MIMEType: domain.MediaTypePNG.MIME(), Data: image})
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(resp)
}

// Converse sends a bounded conversation and returns the reply text. The
// current turn carries one file part per attachment, in order, then the
// text part when present.
func (c *Client) Converse(ctx context.Context, model, system string, conv domain.Conversation) (string, error) {
	m := c.ai.GenerativeModel(model)
	if system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := m.StartChat()
	cs.History = make([]*genai.Content, 0, len(conv.History))
	for _, turn := range conv.History {
		cs.History = append(cs.History, &genai.Content{
			Role:  string(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	parts := make([]genai.Part, 0, len(conv.Attachments)+1)
	for _, ref := range conv.Attachments {
		parts = append(parts, genai.FileData{MIMEType: ref.MIMEType, URI: ref.URI})
	}
	if conv.Text != "" {
		parts = append(parts, genai.Text(conv.Text))
	}

	resp, err := cs.SendMessage(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return responseText(resp)
}

// Upload decodes a base64 payload and pushes it to the provider's File
// API, returning the stable reference the model can consume on this and
// later turns. The SDK streams from memory, so nothing is staged on
// disk. The client's display name is advisory; a random suffix keeps
// duplicate names from colliding.
func (c *Client) Upload(ctx context.Context, data string, media domain.MediaType, displayName string) (domain.AttachmentRef, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return domain.AttachmentRef{}, fmt.Errorf("decode payload: %w", err)
	}

	name := displayName
	if name == "" {
		name = "upload"
	}
	name = name + "-" + uuid.NewString()[:8]

	file, err := c.ai.UploadFile(ctx, "", bytes.NewReader(raw), &genai.UploadFileOptions{
		DisplayName: name,
		MIMEType:    media.MIME(),
	})
	if err != nil {
		return domain.AttachmentRef{}, fmt.Errorf("upload %q: %w", name, err)
	}

	return domain.AttachmentRef{URI: file.URI, MIMEType: media.MIME()}, nil
}

// responseText flattens the first candidate's text parts. The SDK can
// split a reply across parts; the tutor contract is a single string.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned no candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("model returned no text parts")
	}
	return b.String(), nil
}
