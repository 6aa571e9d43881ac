// Package domain defines the core types shared across the tutor server.
package domain

import "strings"

// MediaType classifies an uploaded file's payload. The value doubles as
// the MIME string sent to the model provider.
type MediaType string

const (
	MediaTypePNG  MediaType = "image/png"
	MediaTypeJPEG MediaType = "image/jpeg"
	MediaTypePDF  MediaType = "application/pdf"
)

// MIME returns the MIME string for the provider API.
func (m MediaType) MIME() string { return string(m) }

// ClassifyMedia resolves the media type for an upload from the client's
// declared type with a filename-extension fallback. Classification
// happens once at the system boundary; nothing downstream re-derives it.
// The adapter trusts the result — no content sniffing is performed.
func ClassifyMedia(declared, name string) MediaType {
	lower := strings.ToLower(name)
	switch {
	case declared == "pdf" || strings.HasSuffix(lower, ".pdf"):
		return MediaTypePDF
	case strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg"):
		return MediaTypeJPEG
	default:
		return MediaTypePNG
	}
}

// AttachmentRef is a stable pointer to a file already accepted by the
// model provider's file store. The client is the durable holder across
// turns; the server keeps no copy between requests. Immutable once
// created.
type AttachmentRef struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
}

// Valid reports whether the reference is structurally complete. Entries
// carried over from older app builds can be missing either field.
func (a AttachmentRef) Valid() bool {
	return a.URI != "" && a.MIMEType != ""
}
