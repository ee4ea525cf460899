package storage

import (
	"io"
	"mime"
	"net/http"
	"path"

	"go-formacao/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes serves stored blobs back to authenticated clients at
// /uploads/:folder/:filename.
func RegisterRoutes(r *gin.RouterGroup, store Storage) {
	r.GET("/uploads/:folder/:filename", func(c *gin.Context) {
		folder := c.Param("folder")
		filename := c.Param("filename")

		rc, err := store.Open(c.Request.Context(), folder+"/"+filename)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found", nil)
			return
		}
		defer rc.Close()

		contentType := mime.TypeByExtension(path.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, rc)
	})
}
