package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
)

type SummarizerConfig struct {
	Model         string
	Timeout       int // seconds, 0 disables the deadline
	MaxInputChars int // 0 means no local limit
}

// Summarizer sends extracted document text to the configured provider and
// returns the trimmed summary. One attempt per request, no retries.
type Summarizer struct {
	provider IProvider
	cfg      SummarizerConfig
}

func NewSummarizer(provider IProvider, cfg SummarizerConfig) *Summarizer {
	return &Summarizer{provider: provider, cfg: cfg}
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: no text to summarize", appErr.ErrInvalid)
	}
	if s.cfg.MaxInputChars > 0 && len(trimmed) > s.cfg.MaxInputChars {
		trimmed = trimmed[:s.cfg.MaxInputChars]
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Timeout)*time.Second)
		defer cancel()
	}
	prompt := fmt.Sprintf(`You are a helpful assistant.
Summarize the following document into a concise overview.
- Use the same language as the content.
- Keep factual accuracy and key points.
- Output ONLY the summary text.

CONTENT:
%s`, trimmed)
	resp, err := s.provider.Generate(ctx, s.cfg.Model, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", appErr.ErrSummarize, err)
	}
	result := strings.TrimSpace(resp)
	if result == "" {
		return "", fmt.Errorf("%w: empty response", appErr.ErrSummarize)
	}
	return result, nil
}
