package models

import "strings"

// Lang is a response language accepted by the summarization API.
type Lang string

const (
	LangKO Lang = "KO"
	LangEN Lang = "EN"
	LangCN Lang = "CN"
	LangJP Lang = "JP"
)

// Langs lists the supported languages with their display labels.
var Langs = []struct {
	Value Lang
	Label string
}{
	{LangKO, "한국어"},
	{LangEN, "English"},
	{LangCN, "中文"},
	{LangJP, "日本語"},
}

// SummaryQuery is the query string that asks for a whole-document summary.
const SummaryQuery = "SUMMARY_ALL"

// SummaryRequest is the payload for POST /api/v1/summary.
type SummaryRequest struct {
	// PDFURL is the document to summarise. Required.
	PDFURL string `json:"pdf_url" binding:"required,url"`

	// Lang selects the answer language. Default: "KO".
	Lang Lang `json:"lang,omitempty" binding:"omitempty,oneof=KO EN CN JP"`

	// DeepResearch marks the summary as produced in deep-research mode.
	// It is carried into archive entries; the upstream call is unchanged.
	DeepResearch bool `json:"deep_research,omitempty"`

	// MaxAge allows serving a cached summary younger than this many
	// milliseconds. 0 disables the cache lookup.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *SummaryRequest) Defaults() {
	r.PDFURL = strings.TrimSpace(r.PDFURL)
	if r.Lang == "" {
		r.Lang = LangKO
	}
}

// AskRequest is the payload for POST /api/v1/ask.
type AskRequest struct {
	FileID   string `json:"file_id" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// FeedbackRequest is the payload for POST /api/v1/feedback.
type FeedbackRequest struct {
	FileID  string `json:"file_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

// RenderRequest is the payload for POST /api/v1/render.
type RenderRequest struct {
	// Content is raw summarizer output.
	Content string `json:"content"`

	// FileID resolves [IMG_n_m] placeholders. Optional.
	FileID string `json:"file_id,omitempty"`

	// Preview drops level-1 headings and truncates long paragraphs.
	Preview bool `json:"preview,omitempty"`
}

// ArchiveRequest is the payload for POST /api/v1/archive.
type ArchiveRequest struct {
	Title          string `json:"title,omitempty"`
	Content        string `json:"content" binding:"required"`
	PDFURL         string `json:"pdf_url,omitempty"`
	Language       string `json:"language" binding:"required"`
	IsDeepResearch bool   `json:"is_deep_research,omitempty"`
}

// LoginRequest is the payload for POST /api/v1/auth/login.
type LoginRequest struct {
	ID           string `json:"id,omitempty"`
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	ProfileImage string `json:"profile_image,omitempty"`
}
