package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdfbrief/pdfbrief/internal/model"
	"github.com/pdfbrief/pdfbrief/internal/pkg/response"
	"github.com/pdfbrief/pdfbrief/internal/service"
)

type SummaryHandler struct {
	summaries *service.SummaryService
	maxUpload int64
}

func NewSummaryHandler(summaries *service.SummaryService, maxUpload int64) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, maxUpload: maxUpload}
}

type summaryResponse struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
	PDFFile   string `json:"pdf_file"`
}

// Summarize handles POST /summarize/: run the pipeline and persist the
// record alongside the uploaded file.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	h.process(c, true)
}

// Upload handles POST /upload/: same pipeline, nothing persisted.
func (h *SummaryHandler) Upload(c *gin.Context) {
	h.process(c, false)
}

func (h *SummaryHandler) process(c *gin.Context, persist bool) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Please upload a valid PDF file.")
		return
	}
	if err := service.ValidateUpload(file.Filename, file.Size, h.maxUpload); err != nil {
		response.Error(c, http.StatusBadRequest, "Please upload a valid PDF file.")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Please upload a valid PDF file.")
		return
	}
	defer opened.Close()
	content, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Please upload a valid PDF file.")
		return
	}

	rec, err := h.summaries.SummarizeUpload(c.Request.Context(), getUserID(c), file.Filename, content, persist)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"summary": rec.Summary})
}

func (h *SummaryHandler) List(c *gin.Context) {
	records, err := h.summaries.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	baseURL := requestBaseURL(c)
	result := make([]summaryResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, h.toResponse(rec, baseURL))
	}
	response.JSON(c, http.StatusOK, result)
}

func (h *SummaryHandler) Get(c *gin.Context) {
	rec, err := h.summaries.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.toResponse(*rec, requestBaseURL(c)))
}

func (h *SummaryHandler) toResponse(rec model.Summary, baseURL string) summaryResponse {
	return summaryResponse{
		ID:        rec.ID,
		Filename:  rec.Filename,
		Summary:   rec.Summary,
		CreatedAt: time.Unix(rec.Ctime, 0).UTC().Format(time.RFC3339),
		PDFFile:   h.summaries.FileURL(rec.FileKey, baseURL),
	}
}
