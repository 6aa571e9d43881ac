package gemini

import (
	"context"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/savvy-app/archie-server/internal/domain"
)

func TestResponseText(t *testing.T) {
	t.Parallel()

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")},
			},
		}},
	}

	got, err := responseText(resp)
	if err != nil {
		t.Fatalf("responseText failed: %v", err)
	}
	if got != "Hello, world" {
		t.Errorf("expected concatenated parts, got %q", got)
	}
}

func TestResponseTextNoCandidates(t *testing.T) {
	t.Parallel()

	if _, err := responseText(&genai.GenerateContentResponse{}); err == nil {
		t.Fatal("expected error for empty response")
	}
	if _, err := responseText(nil); err == nil {
		t.Fatal("expected error for nil response")
	}
}

func TestUploadRejectsInvalidBase64(t *testing.T) {
	t.Parallel()

	// Decode happens before the SDK is touched, so a zero client is fine.
	c := &Client{}
	_, err := c.Upload(context.Background(), "not base64!!!", domain.MediaTypePNG, "photo.png")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "decode payload") {
		t.Errorf("expected decode error, got: %v", err)
	}
}
