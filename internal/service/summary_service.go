package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pdfbrief/pdfbrief/internal/extract"
	"github.com/pdfbrief/pdfbrief/internal/filestore"
	"github.com/pdfbrief/pdfbrief/internal/model"
	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
)

type SummaryStore interface {
	Create(ctx context.Context, rec *model.Summary) error
	ListByUser(ctx context.Context, userID string) ([]model.Summary, error)
	GetByID(ctx context.Context, userID, id string) (*model.Summary, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type SummaryService struct {
	extractor  extract.Extractor
	summarizer Summarizer
	files      filestore.Store
	summaries  SummaryStore
}

func NewSummaryService(extractor extract.Extractor, summarizer Summarizer, files filestore.Store, summaries SummaryStore) *SummaryService {
	return &SummaryService{
		extractor:  extractor,
		summarizer: summarizer,
		files:      files,
		summaries:  summaries,
	}
}

// SummarizeUpload runs the pipeline for one uploaded PDF: extract text,
// summarize, and, when persist is set, store the original bytes and insert
// the record. Steps are strictly sequential and the record insert comes
// last, so a failure never leaves a partial row behind. A file written to
// the store before a failed insert is reclaimed by the cleanup job.
func (s *SummaryService) SummarizeUpload(ctx context.Context, userID, filename string, content []byte, persist bool) (*model.Summary, error) {
	logger := logutil.GetLogger(ctx).With(
		zap.String("user_id", userID),
		zap.String("filename", filename),
		zap.Bool("persist", persist),
	)

	text, err := s.extractor.Extract(content)
	if err != nil {
		logger.Error("pdf extraction failed", zap.Error(err))
		return nil, err
	}
	summary, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		logger.Error("summarization failed", zap.Error(err))
		return nil, err
	}

	rec := &model.Summary{
		UserID:   userID,
		Filename: filename,
		Summary:  summary,
		Ctime:    time.Now().Unix(),
	}
	if !persist {
		return rec, nil
	}

	rec.ID = newID()
	rec.FileKey = buildFileKey(rec.ID, filename)
	if err := s.files.Save(ctx, rec.FileKey, filestore.NewBytesReader(content), int64(len(content))); err != nil {
		logger.Error("store upload failed", zap.Error(err))
		return nil, err
	}
	if err := s.summaries.Create(ctx, rec); err != nil {
		logger.Error("create summary record failed", zap.Error(err))
		return nil, err
	}
	logger.Info("summary created", zap.String("id", rec.ID), zap.Int("summary_len", len(summary)))
	return rec, nil
}

func (s *SummaryService) List(ctx context.Context, userID string) ([]model.Summary, error) {
	return s.summaries.ListByUser(ctx, userID)
}

func (s *SummaryService) Get(ctx context.Context, userID, id string) (*model.Summary, error) {
	return s.summaries.GetByID(ctx, userID, id)
}

func (s *SummaryService) FileURL(key, baseURL string) string {
	if key == "" {
		return ""
	}
	return s.files.URL(key, baseURL)
}

// ValidateUpload rejects a bad upload before any processing happens.
func ValidateUpload(filename string, size, maxSize int64) error {
	if filename == "" {
		return appErr.ErrInvalid
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return appErr.ErrInvalid
	}
	if maxSize > 0 && size > maxSize {
		return appErr.ErrInvalid
	}
	return nil
}

func buildFileKey(id, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}
	return id + ext
}
