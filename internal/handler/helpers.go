package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pdfbrief/pdfbrief/internal/middleware"
	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
	"github.com/pdfbrief/pdfbrief/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

// handleError maps internal error kinds to HTTP statuses. Processing
// failures (parse, summarization) flatten into a 500 that keeps the
// underlying message, matching the original API.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, http.StatusBadRequest, "Username already taken")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErr.ErrParse), errors.Is(err, appErr.ErrSummarize):
		response.Error(c, http.StatusInternalServerError, "Error during summarization: "+err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "internal error")
	}
}

func requestBaseURL(c *gin.Context) string {
	proto := c.GetHeader("X-Forwarded-Proto")
	if proto == "" {
		if c.Request.TLS != nil {
			proto = "https"
		} else {
			proto = "http"
		}
	}
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	return proto + "://" + host
}
