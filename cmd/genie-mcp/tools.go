package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pdfgenie/genie/imageref"
)

// gateway is a thin client for the genie HTTP API.
type gateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// apiError mirrors the error envelope of the genie API.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// summaryResponse mirrors the fields of POST /api/v1/summary we print.
type summaryResponse struct {
	Success  bool      `json:"success"`
	Error    *apiError `json:"error"`
	FileID   string    `json:"file_id"`
	Title    string    `json:"title"`
	Markdown string    `json:"markdown"`
	Images   []struct {
		Src string `json:"src"`
	} `json:"images"`
}

// askResponse mirrors the fields of POST /api/v1/ask we print.
type askResponse struct {
	Success   bool      `json:"success"`
	Error     *apiError `json:"error"`
	Markdown  string    `json:"markdown"`
	FollowUps []string  `json:"followups"`
}

// post sends a JSON request to the gateway and decodes the envelope into out.
func (g *gateway) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(g.baseURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("X-API-Key", g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

func describe(e *apiError, fallback string) string {
	if e == nil {
		return fallback
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func handleSummarize(gw *gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pdfURL, err := request.RequireString("pdf_url")
		if err != nil {
			return mcp.NewToolResultError("pdf_url is required"), nil
		}

		var resp summaryResponse
		err = gw.post(ctx, "/api/v1/summary", map[string]string{
			"pdf_url": pdfURL,
			"lang":    request.GetString("lang", "KO"),
		}, &resp)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !resp.Success {
			return mcp.NewToolResultError(describe(resp.Error, "summary failed")), nil
		}

		var b strings.Builder
		if resp.Title != "" {
			fmt.Fprintf(&b, "Title: %s\n", resp.Title)
		}
		fmt.Fprintf(&b, "File ID: %s\n\n", resp.FileID)
		b.WriteString(resp.Markdown)
		if len(resp.Images) > 0 {
			fmt.Fprintf(&b, "\n\n---\nImages: %d", len(resp.Images))
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

func handleAsk(gw *gateway) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fileID, err := request.RequireString("file_id")
		if err != nil {
			return mcp.NewToolResultError("file_id is required"), nil
		}
		question, err := request.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError("question is required"), nil
		}

		var resp askResponse
		err = gw.post(ctx, "/api/v1/ask", map[string]string{
			"file_id":  fileID,
			"question": question,
		}, &resp)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !resp.Success {
			return mcp.NewToolResultError(describe(resp.Error, "question failed")), nil
		}
		return mcp.NewToolResultText(resp.Markdown), nil
	}
}

func handleRewriteImages() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError("content is required"), nil
		}
		out := imageref.Prepare(content, request.GetString("file_id", ""), request.GetString("base_url", ""))
		return mcp.NewToolResultText(out), nil
	}
}
