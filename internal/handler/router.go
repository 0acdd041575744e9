package handler

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/pdfbrief/pdfbrief/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Summaries *SummaryHandler
	Files     *FileHandler
	JWTSecret []byte
	CORSAllow []string
}

// NewRouter wires the route table. Paths keep the trailing-slash form of
// the original API.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(deps.CORSAllow))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.POST("/api/auth/register/", deps.Auth.Register)
	router.POST("/api/auth/login/", deps.Auth.Login)
	router.POST("/api/auth/refresh/", deps.Auth.Refresh)

	authGroup := router.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/summarize/", deps.Summaries.Summarize)
	authGroup.POST("/upload/", deps.Summaries.Upload)
	authGroup.GET("/summaries/", deps.Summaries.List)
	authGroup.GET("/summaries/:id/", deps.Summaries.Get)

	router.GET("/files/:key", deps.Files.Get)

	return router
}
