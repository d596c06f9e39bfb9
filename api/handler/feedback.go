package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdfgenie/genie/api/middleware"
	"github.com/pdfgenie/genie/config"
	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/session"
	"github.com/pdfgenie/genie/summary"
	"github.com/pdfgenie/genie/webhook"
)

// Feedback returns a handler for POST /api/v1/feedback.
//
// The rating is sent with the session's follow-up log. Once the API accepts
// it, a feedback.submitted event is delivered in the background when a
// webhook URL is configured.
func Feedback(
	up *summary.Client,
	sessions *session.Manager,
	metrics *middleware.Metrics,
	cfg config.UpstreamConfig,
	hook config.WebhookConfig,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.FeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		sess, ok := sessions.Get(req.FileID)
		if !ok {
			respondError(c, models.NewGenieError(models.ErrCodeNoSession, "summarize the PDF first", nil))
			return
		}

		fb := summary.Feedback{
			FileID:   sess.FileID,
			PDFURL:   sess.PDFURL,
			Lang:     sess.Lang,
			Rating:   req.Rating,
			Comment:  req.Comment,
			UsageLog: sess.FollowUps,
			Permit:   permit(c, cfg.ApproxyPermit),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.FeedbackTimeout)
		err := up.SubmitFeedback(ctx, fb)
		cancel()
		if err != nil {
			respondError(c, err)
			return
		}

		if hook.URL != "" {
			done := webhook.DeliverAsync(hook.URL, hook.Secret, webhook.NewFeedbackEvent(sess.FileID, webhook.FeedbackData{
				PDFURL:  sess.PDFURL,
				Lang:    string(sess.Lang),
				Rating:  req.Rating,
				Comment: req.Comment,
			}))
			go func() { metrics.ObserveWebhook(<-done) }()
		}

		c.JSON(http.StatusOK, models.FeedbackResponse{
			Response: models.Response{Success: true},
			OK:       true,
		})
	}
}
