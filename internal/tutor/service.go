package tutor

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/savvy-app/archie-server/internal/config"
	"github.com/savvy-app/archie-server/internal/domain"
)

// systemInstruction steers the chat action. It is fixed; per-request
// behavior comes only from the conversation itself.
const systemInstruction = `You are Archie, a friendly and patient tutor inside a mobile study app.
Explain concepts step by step in plain language and keep paragraphs short.
Prefer worked examples over abstract definitions. When files are attached,
ground your answer in their contents and say so. If a question is ambiguous,
ask one clarifying question instead of guessing. Use LaTeX for math notation.`

const mathVisionPrompt = `Analyze this math problem.
Return ONLY valid JSON:
{
  "latex": "The LaTeX code",
  "hint": "A short hint",
  "solution": "The answer"
}`

// Service implements the four tutor actions on top of the model client
// and blob store. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	model ModelClient
	store BlobStore
	cfg   *config.Config
}

// NewService creates the action service.
func NewService(model ModelClient, store BlobStore, cfg *config.Config) *Service {
	return &Service{model: model, store: store, cfg: cfg}
}

// GenerateTitle summarizes a message into a short chat title. The
// contract is trim-only; any quote stripping is the client's business.
func (s *Service) GenerateTitle(ctx context.Context, message string) (TitleResult, error) {
	if strings.TrimSpace(message) == "" {
		return TitleResult{}, errf(ErrValidation, "message is required")
	}

	prompt := "Summarize this in 3-5 words for a chat title: " + message
	out, err := s.model.GenerateText(ctx, s.cfg.TitleModel, prompt)
	if err != nil {
		return TitleResult{}, errf(ErrModelCall, "title generation failed: %v", err)
	}
	return TitleResult{Title: strings.TrimSpace(out)}, nil
}

// Chat runs one conversational turn: upload the new files, merge them
// with the attachment set the client carried over, window the history
// and call the model. The full reconciled set is returned so the client
// can persist it for the next turn.
func (s *Service) Chat(ctx context.Context, req Request) (ChatResult, error) {
	if req.Message == "" && len(req.Files) == 0 && len(req.ActiveFileURIs) == 0 {
		return ChatResult{}, errf(ErrValidation, "message or files required")
	}

	uploaded, err := s.uploadAll(ctx, req.Files)
	if err != nil {
		return ChatResult{}, err
	}

	active := Reconcile(req.ActiveFileURIs, uploaded)
	conv := BuildContext(req.History, s.cfg.HistoryWindow, req.Message, active)

	text, err := s.model.Converse(ctx, s.cfg.ChatModel, systemInstruction, conv)
	if err != nil {
		return ChatResult{}, errf(ErrModelCall, "chat failed: %v", err)
	}

	return ChatResult{Text: text, ActiveFileURIs: active}, nil
}

// uploadAll pushes every new file concurrently. Results keep the input
// order regardless of completion order, and any single failure aborts
// the whole batch; a partial attachment set is never returned.
func (s *Service) uploadAll(ctx context.Context, files []IncomingFile) ([]domain.AttachmentRef, error) {
	if len(files) == 0 {
		return nil, nil
	}

	slog.Info("Uploading new files", "count", len(files))

	refs := make([]domain.AttachmentRef, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			media := domain.ClassifyMedia(f.Type, f.Name)
			ref, err := s.store.Upload(ctx, f.Data, media, f.Name)
			if err != nil {
				slog.Error("File upload failed", "name", f.Name, "media", media, "error", err)
				return errf(ErrUpload, "upload failed for %s: %v", f.Name, err)
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

// MathVision reads a single handwriting or textbook photo and extracts
// the problem as LaTeX with a hint and solution. The image travels
// inline with the prompt; it is never uploaded to the file store, so it
// leaves no reference to carry across turns.
func (s *Service) MathVision(ctx context.Context, image string) (MathProblem, error) {
	if image == "" {
		return MathProblem{}, errf(ErrValidation, "no image provided")
	}
	raw, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return MathProblem{}, errf(ErrValidation, "image is not valid base64")
	}

	out, err := s.model.GenerateJSON(ctx, s.cfg.VisionModel, mathVisionPrompt, raw)
	if err != nil {
		return MathProblem{}, errf(ErrModelCall, "vision analysis failed: %v", err)
	}

	var problem MathProblem
	if err := ParseStructured(out, &problem); err != nil {
		return MathProblem{}, err
	}
	return problem, nil
}

// GenerateFlashcards builds a five-card deck about a topic. Message is
// the fallback field older app builds send instead of topic.
func (s *Service) GenerateFlashcards(ctx context.Context, topic, message string) ([]Flashcard, error) {
	subject := topic
	if subject == "" {
		subject = message
	}
	if strings.TrimSpace(subject) == "" {
		return nil, errf(ErrValidation, "topic is required")
	}

	prompt := fmt.Sprintf(`Create 5 distinct flashcards about: %q.
Return valid JSON array:
[
  { "front": "Question...", "back": "Answer...", "tag": "Concept" }
]`, subject)

	out, err := s.model.GenerateJSON(ctx, s.cfg.FlashcardModel, prompt, nil)
	if err != nil {
		return nil, errf(ErrModelCall, "flashcard generation failed: %v", err)
	}

	var cards []Flashcard
	if err := ParseStructured(out, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
