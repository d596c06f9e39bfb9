package handler

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/render"
	"github.com/pdfgenie/genie/store"
)

const (
	defaultSummaryTitle  = "요약 결과"
	defaultResearchTitle = "딥리서치 분석 결과"
)

// ArchiveListResponse is the response for GET /api/v1/archive.
type ArchiveListResponse struct {
	models.Response
	Items []store.ArchiveItem `json:"items"`
}

// ArchiveItemResponse wraps a single archive item.
type ArchiveItemResponse struct {
	models.Response
	Item *store.ArchiveItem `json:"item,omitempty"`

	// Duplicate is set when POST /archive matched an existing item
	// instead of creating one.
	Duplicate bool `json:"duplicate,omitempty"`
}

// ListArchive returns a handler for GET /api/v1/archive?q=&lang=.
func ListArchive(archive *store.Archive) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ArchiveListResponse{
			Response: models.Response{Success: true},
			Items:    archive.List(c.Query("q"), c.Query("lang")),
		})
	}
}

// AddArchive returns a handler for POST /api/v1/archive. A missing title
// falls back to the content's first level-1 heading. Saving the same
// summary of a PDF twice returns the existing item with 200.
func AddArchive(archive *store.Archive) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ArchiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		in := store.NewArchiveItem{
			Title:          archiveTitle(req.Title, req.Content, req.IsDeepResearch),
			Content:        req.Content,
			PDFURL:         req.PDFURL,
			Language:       req.Language,
			IsDeepResearch: req.IsDeepResearch,
		}
		if existing, ok := archive.FindDuplicate(in); ok {
			c.JSON(http.StatusOK, ArchiveItemResponse{
				Response:  models.Response{Success: true},
				Item:      &existing,
				Duplicate: true,
			})
			return
		}

		item, err := archive.Add(in)
		if err != nil {
			respondError(c, models.NewGenieError(models.ErrCodeInternal, "failed to save archive", err))
			return
		}

		c.JSON(http.StatusCreated, ArchiveItemResponse{
			Response: models.Response{Success: true},
			Item:     &item,
		})
	}
}

// GetArchive returns a handler for GET /api/v1/archive/:id.
func GetArchive(archive *store.Archive) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, ok := archive.Get(c.Param("id"))
		if !ok {
			respondError(c, models.NewGenieError(models.ErrCodeNotFound, "archive item not found", nil))
			return
		}
		c.JSON(http.StatusOK, ArchiveItemResponse{
			Response: models.Response{Success: true},
			Item:     &item,
		})
	}
}

// DeleteArchive returns a handler for DELETE /api/v1/archive/:id.
func DeleteArchive(archive *store.Archive) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := archive.Remove(c.Param("id"))
		switch {
		case errors.Is(err, store.ErrNotFound):
			respondError(c, models.NewGenieError(models.ErrCodeNotFound, "archive item not found", err))
		case err != nil:
			respondError(c, models.NewGenieError(models.ErrCodeInternal, "failed to save archive", err))
		default:
			c.JSON(http.StatusOK, models.Response{Success: true})
		}
	}
}

// DownloadArchive returns a handler for GET /api/v1/archive/:id/download.
// The content is served as <title>.md.
func DownloadArchive(archive *store.Archive) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, ok := archive.Get(c.Param("id"))
		if !ok {
			respondError(c, models.NewGenieError(models.ErrCodeNotFound, "archive item not found", nil))
			return
		}

		name := archiveTitle(item.Title, item.Content, item.IsDeepResearch) + ".md"
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(item.Content))
	}
}

func archiveTitle(title, content string, deep bool) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	if t := render.Title(content); t != "" {
		return t
	}
	if deep {
		return defaultResearchTitle
	}
	return defaultSummaryTitle
}
