package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdfgenie/genie/api/middleware"
	"github.com/pdfgenie/genie/config"
	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/session"
	"github.com/pdfgenie/genie/summary"
)

// Ask returns a handler for POST /api/v1/ask. The document must have been
// summarized first; the session supplies its URL and language.
func Ask(
	up *summary.Client,
	pl *Pipeline,
	sessions *session.Manager,
	metrics *middleware.Metrics,
	cfg config.UpstreamConfig,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		question := strings.TrimSpace(req.Question)
		if question == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(models.ErrCodeInvalidInput, "question is empty"))
			return
		}

		sess, ok := sessions.Get(req.FileID)
		if !ok {
			respondError(c, models.NewGenieError(models.ErrCodeNoSession, "summarize the PDF first", nil))
			return
		}

		upStart := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		answer, err := up.Ask(ctx, summary.Query{
			FileID: sess.FileID,
			PDFURL: sess.PDFURL,
			Text:   question,
			Lang:   sess.Lang,
			Permit: permit(c, cfg.ApproxyPermit),
		})
		cancel()
		upstream := time.Since(upStart)
		metrics.ObserveUpstream("ask", err, upstream)
		if err != nil {
			respondError(c, err)
			return
		}

		renderStart := time.Now()
		out, err := pl.Run(c.Request.Context(), c.Request.Host, answer, sess.FileID, false)
		if err != nil {
			respondError(c, err)
			return
		}
		renderMs := time.Since(renderStart).Milliseconds()

		updated, ok := sessions.AddFollowUp(sess.FileID, question, answer)
		followUps := []string{session.FormatFollowUp(question, answer)}
		if ok {
			followUps = updated.FollowUps
		}

		c.JSON(http.StatusOK, models.AskResponse{
			Response:  models.Response{Success: true},
			Answer:    answer,
			Markdown:  out.Markdown,
			HTML:      out.HTML,
			FollowUps: followUps,
			Timing: models.TimingInfo{
				TotalMs:    time.Since(totalStart).Milliseconds(),
				UpstreamMs: upstream.Milliseconds(),
				RenderMs:   renderMs,
			},
		})
	}
}
