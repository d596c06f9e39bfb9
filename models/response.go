package models

// Response is the envelope shared by every JSON endpoint.
type Response struct {
	// Success indicates whether the request completed without errors.
	Success bool `json:"success"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorResponse builds a failed envelope.
func ErrorResponse(code, message string) Response {
	return Response{Error: &ErrorDetail{Code: code, Message: message}}
}

// Image is an image reference found in rendered output.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// SummaryResponse is the response for POST /api/v1/summary.
type SummaryResponse struct {
	Response

	// FileID identifies the document in follow-up and feedback calls.
	FileID string `json:"file_id,omitempty"`

	// Title is the first level-1 heading of the summary, if any.
	Title string `json:"title,omitempty"`

	// Markdown is the summary after image rewriting.
	Markdown string `json:"markdown,omitempty"`

	// HTML is the rendered summary.
	HTML string `json:"html,omitempty"`

	// Images lists the images in the rendered summary.
	Images []Image `json:"images,omitempty"`

	Lang         Lang `json:"lang,omitempty"`
	DeepResearch bool `json:"deep_research,omitempty"`

	// CacheStatus is "hit", "miss", or empty when caching was not requested.
	CacheStatus string `json:"cache_status,omitempty"`

	Timing TimingInfo `json:"timing"`
}

// AskResponse is the response for POST /api/v1/ask.
type AskResponse struct {
	Response

	Answer   string `json:"answer,omitempty"`
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`

	// FollowUps is the conversation log, newest first.
	FollowUps []string `json:"followups,omitempty"`

	Timing TimingInfo `json:"timing"`
}

// FeedbackResponse is the response for POST /api/v1/feedback.
type FeedbackResponse struct {
	Response
	OK bool `json:"ok"`
}

// RenderResponse is the response for POST /api/v1/render.
type RenderResponse struct {
	Response

	Title    string  `json:"title,omitempty"`
	Markdown string  `json:"markdown"`
	HTML     string  `json:"html"`
	Images   []Image `json:"images,omitempty"`
}

// TimingInfo breaks down the time spent handling a request.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// UpstreamMs is the time spent waiting on the summarization API.
	UpstreamMs int64 `json:"upstream_ms"`

	// RenderMs is the time spent rewriting and rendering markdown.
	RenderMs int64 `json:"render_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status   string     `json:"status"` // "healthy" or "degraded"
	Uptime   string     `json:"uptime"`
	Upstream string     `json:"upstream"`
	Cache    CacheStats `json:"cache"`
	Archived int        `json:"archived"`
	Version  string     `json:"version"`
}

// CacheStats reports cache occupancy.
type CacheStats struct {
	Entries    int `json:"entries"`
	MaxEntries int `json:"max_entries"`
}
