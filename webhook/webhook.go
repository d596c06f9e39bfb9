package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// EventFeedbackSubmitted is sent after the summarization API accepted a
// rating.
const EventFeedbackSubmitted = "feedback.submitted"

// SignatureHeader carries "sha256=<hex>" when a secret is configured.
const SignatureHeader = "X-Genie-Signature"

// retryDelays is the wait before each delivery attempt.
var retryDelays = []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second}

// Event is the payload sent to webhook endpoints.
type Event struct {
	Type      string `json:"type"`
	FileID    string `json:"file_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data"`
}

// FeedbackData is the Data of a feedback.submitted event.
type FeedbackData struct {
	PDFURL  string `json:"pdf_url"`
	Lang    string `json:"lang"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// NewFeedbackEvent builds a feedback.submitted event stamped with the
// current time.
func NewFeedbackEvent(fileID string, data FeedbackData) *Event {
	return &Event{
		Type:      EventFeedbackSubmitted,
		FileID:    fileID,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Deliver sends a webhook event synchronously.
func Deliver(ctx context.Context, url, secret string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Genie-Webhook/1.0")

	if secret != "" {
		req.Header.Set(SignatureHeader, "sha256="+Sign(secret, body))
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// DeliverAsync sends a webhook event in the background with up to 3
// retries (1s, 5s, 30s). The returned channel receives the final error
// (nil on success) and is then closed.
func DeliverAsync(url, secret string, event *Event) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		var err error
		for attempt, delay := range retryDelays {
			if delay > 0 {
				time.Sleep(delay)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err = Deliver(ctx, url, secret, event)
			cancel()
			if err == nil {
				slog.Info("webhook delivered",
					"url", url,
					"event", event.Type,
					"file_id", event.FileID,
					"attempt", attempt+1,
				)
				done <- nil
				return
			}
			slog.Warn("webhook delivery failed",
				"url", url,
				"event", event.Type,
				"file_id", event.FileID,
				"attempt", attempt+1,
				"error", err,
			)
		}
		slog.Error("webhook delivery exhausted all retries",
			"url", url,
			"event", event.Type,
			"file_id", event.FileID,
		)
		done <- err
	}()
	return done
}
