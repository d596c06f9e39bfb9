package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdfgenie/genie/models"
)

// Render returns a handler for POST /api/v1/render. It runs arbitrary
// summarizer output through the same pipeline as /summary, for archived
// content and previews.
func Render(pl *Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RenderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		out, err := pl.Run(c.Request.Context(), c.Request.Host, req.Content, req.FileID, req.Preview)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.RenderResponse{
			Response: models.Response{Success: true},
			Title:    out.Title,
			Markdown: out.Markdown,
			HTML:     out.HTML,
			Images:   out.Images,
		})
	}
}
