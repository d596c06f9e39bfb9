package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pdfgenie/genie/models"
)

const (
	// maxCommentRunes caps the feedback comment length.
	maxCommentRunes = 500

	// maxUsageLog caps how many follow-up entries accompany feedback.
	maxUsageLog = 10

	// maxResponseBytes caps how much of an upstream response is read.
	maxResponseBytes = 20 << 20
)

// Client talks to the external summarization API.
// It uses net/http directly; the API is two JSON endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
// Pass a nil httpClient to use a default client without a timeout; callers
// then bound requests through the context.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Query asks the API about a document.
type Query struct {
	FileID string
	PDFURL string

	// Text is the question, or models.SummaryQuery for a full summary.
	Text string
	Lang models.Lang

	// Permit is forwarded as the approxy_permit cookie when set.
	Permit string
}

// Feedback is a user rating for a summary.
type Feedback struct {
	FileID   string
	PDFURL   string
	Lang     models.Lang
	Rating   int
	Comment  string
	UsageLog []string
	Permit   string
}

// summaryRequest is the /api/summary request body.
type summaryRequest struct {
	FileID string      `json:"file_id"`
	PDFURL string      `json:"pdf_url"`
	Query  string      `json:"query"`
	Lang   models.Lang `json:"lang"`
}

// feedbackRequest is the /api/feedback request body.
type feedbackRequest struct {
	FileID   string      `json:"file_id"`
	PDFURL   string      `json:"pdf_url"`
	Lang     models.Lang `json:"lang"`
	Rating   int         `json:"rating"`
	Comment  string      `json:"comment"`
	UsageLog []string    `json:"usage_log"`
}

// feedbackResponse is the minimal /api/feedback response we need.
type feedbackResponse struct {
	OK bool `json:"ok"`
}

// Ask sends a query and returns the answer text.
func (c *Client) Ask(ctx context.Context, q Query) (string, error) {
	body := summaryRequest{
		FileID: q.FileID,
		PDFURL: q.PDFURL,
		Query:  q.Text,
		Lang:   q.Lang,
	}

	respBody, err := c.post(ctx, "/api/summary", q.Permit, body)
	if err != nil {
		return "", err
	}

	return pickAnswer(respBody)
}

// Summarize asks for a whole-document summary.
func (c *Client) Summarize(ctx context.Context, fileID, pdfURL string, lang models.Lang, permit string) (string, error) {
	return c.Ask(ctx, Query{
		FileID: fileID,
		PDFURL: pdfURL,
		Text:   models.SummaryQuery,
		Lang:   lang,
		Permit: permit,
	})
}

// SubmitFeedback posts a rating. The comment is trimmed and capped at 500
// characters; only the 10 newest usage log entries are sent.
func (c *Client) SubmitFeedback(ctx context.Context, fb Feedback) error {
	usage := fb.UsageLog
	if len(usage) > maxUsageLog {
		usage = usage[:maxUsageLog]
	}
	if usage == nil {
		usage = []string{}
	}

	body := feedbackRequest{
		FileID:   fb.FileID,
		PDFURL:   fb.PDFURL,
		Lang:     fb.Lang,
		Rating:   fb.Rating,
		Comment:  truncateRunes(strings.TrimSpace(fb.Comment), maxCommentRunes),
		UsageLog: usage,
	}

	respBody, err := c.post(ctx, "/api/feedback", fb.Permit, body)
	if err != nil {
		return err
	}

	var resp feedbackResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return models.NewGenieError(models.ErrCodeUpstreamBadResponse, "could not parse feedback response", err)
	}
	if !resp.OK {
		return models.NewGenieError(models.ErrCodeFeedbackNotPersisted, "feedback was not saved", nil)
	}
	return nil
}

// post sends a JSON body and returns the raw response body of a 2xx reply.
func (c *Client) post(ctx context.Context, path, permit string, payload any) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if permit != "" {
		req.AddCookie(&http.Cookie{Name: "approxy_permit", Value: permit})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.NewGenieError(models.ErrCodeUpstreamTimeout, "summarization API timed out", err)
		}
		return nil, models.NewGenieError(models.ErrCodeUpstreamUnreachable, "summarization API is unreachable; check that the server is running", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, models.NewGenieError(models.ErrCodeUpstreamBadResponse, "failed to read summarization API response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(resp.StatusCode)
	}
	return respBody, nil
}

// pickAnswer extracts the answer from a /api/summary response: "answer",
// then "summary", then the whole body as text.
func pickAnswer(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", models.NewGenieError(models.ErrCodeUpstreamBadResponse, "could not parse summarization API response", err)
	}

	if raw, ok := fields["error"]; ok && truthy(raw) {
		return "", models.NewGenieError(models.ErrCodeUpstreamFailure, rawText(raw), nil)
	}

	for _, key := range []string{"answer", "summary"} {
		if raw, ok := fields[key]; ok && !isNull(raw) {
			return rawText(raw), nil
		}
	}
	return string(bytes.TrimSpace(body)), nil
}

// rawText renders a JSON value as text: strings are unquoted, anything
// else is returned as its JSON encoding.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// truthy reports whether a JSON value would count as set: not null, false,
// zero or the empty string.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// classifyStatus maps upstream HTTP status codes to error codes.
func classifyStatus(status int) *models.GenieError {
	switch status {
	case http.StatusNotFound:
		return models.NewGenieError(models.ErrCodeUpstreamNotFound, "PDF not found", nil)
	case http.StatusUnauthorized:
		return models.NewGenieError(models.ErrCodeUpstreamAuth, "authentication required; check the approxy_permit cookie", nil)
	case http.StatusForbidden:
		return models.NewGenieError(models.ErrCodeUpstreamForbidden, "access denied", nil)
	case http.StatusInternalServerError:
		return models.NewGenieError(models.ErrCodeUpstreamInternal, "summarization server internal error", nil)
	case http.StatusServiceUnavailable:
		return models.NewGenieError(models.ErrCodeUpstreamUnavailable, "summarization server temporarily unavailable", nil)
	default:
		return models.NewGenieError(models.ErrCodeUpstreamFailure, fmt.Sprintf("summarization server error (%d)", status), nil)
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
