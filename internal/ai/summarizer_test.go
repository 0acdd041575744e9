package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
)

type fakeProvider struct {
	response    string
	err         error
	calls       int
	lastModel   string
	lastPrompt  string
	hadDeadline bool
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	p.calls++
	p.lastModel = model
	p.lastPrompt = prompt
	_, p.hadDeadline = ctx.Deadline()
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func TestSummarizeTrimsResponse(t *testing.T) {
	provider := &fakeProvider{response: "  a concise summary \n"}
	s := NewSummarizer(provider, SummarizerConfig{Model: "test-model"})
	result, err := s.Summarize(context.Background(), "document text")
	require.NoError(t, err)
	require.Equal(t, "a concise summary", result)
	require.Equal(t, 1, provider.calls)
	require.Equal(t, "test-model", provider.lastModel)
	require.Contains(t, provider.lastPrompt, "document text")
}

func TestSummarizeEmptyInput(t *testing.T) {
	provider := &fakeProvider{response: "summary"}
	s := NewSummarizer(provider, SummarizerConfig{Model: "test-model"})
	_, err := s.Summarize(context.Background(), "   \n\t ")
	require.ErrorIs(t, err, appErr.ErrInvalid)
	require.Equal(t, 0, provider.calls)
}

func TestSummarizeProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream 503")}
	s := NewSummarizer(provider, SummarizerConfig{Model: "test-model"})
	_, err := s.Summarize(context.Background(), "document text")
	require.ErrorIs(t, err, appErr.ErrSummarize)
	require.Contains(t, err.Error(), "upstream 503")
	require.Equal(t, 1, provider.calls)
}

func TestSummarizeEmptyResponse(t *testing.T) {
	provider := &fakeProvider{response: "  \n "}
	s := NewSummarizer(provider, SummarizerConfig{Model: "test-model"})
	_, err := s.Summarize(context.Background(), "document text")
	require.ErrorIs(t, err, appErr.ErrSummarize)
}

func TestSummarizeTimeoutSetsDeadline(t *testing.T) {
	provider := &fakeProvider{response: "summary"}
	s := NewSummarizer(provider, SummarizerConfig{Model: "test-model", Timeout: 5})
	_, err := s.Summarize(context.Background(), "document text")
	require.NoError(t, err)
	require.True(t, provider.hadDeadline)
}

func TestSummarizeMaxInputChars(t *testing.T) {
	provider := &fakeProvider{response: "summary"}
	s := NewSummarizer(provider, SummarizerConfig{Model: "test-model", MaxInputChars: 10})
	long := strings.Repeat("a", 100)
	_, err := s.Summarize(context.Background(), long)
	require.NoError(t, err)
	require.NotContains(t, provider.lastPrompt, strings.Repeat("a", 11))
}
