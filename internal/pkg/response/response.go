package response

import "github.com/gin-gonic/gin"

// The wire format follows the original API surface: success payloads are
// returned as-is, failures carry a single "detail" message.

func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Error(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}
