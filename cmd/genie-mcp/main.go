package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	apiURL := os.Getenv("GENIE_MCP_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:3000"
	}
	gw := &gateway{
		baseURL: apiURL,
		apiKey:  os.Getenv("GENIE_MCP_API_KEY"),
		client:  &http.Client{Timeout: 200 * time.Second},
	}

	s := server.NewMCPServer(
		"genie",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	summarizeTool := mcp.NewTool("summarize_pdf",
		mcp.WithDescription("Summarize a PDF by URL. Returns the summary as markdown with image references rewritten to markdown images, plus the file_id needed by ask_pdf."),
		mcp.WithString("pdf_url",
			mcp.Required(),
			mcp.Description("Public URL of the PDF"),
		),
		mcp.WithString("lang",
			mcp.Description("Answer language: 'KO' (default), 'EN', 'CN' or 'JP'"),
			mcp.Enum("KO", "EN", "CN", "JP"),
		),
	)
	s.AddTool(summarizeTool, handleSummarize(gw))

	askTool := mcp.NewTool("ask_pdf",
		mcp.WithDescription("Ask a follow-up question about a PDF previously summarized with summarize_pdf."),
		mcp.WithString("file_id",
			mcp.Required(),
			mcp.Description("The file_id returned by summarize_pdf"),
		),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to ask"),
		),
	)
	s.AddTool(askTool, handleAsk(gw))

	rewriteTool := mcp.NewTool("rewrite_images",
		mcp.WithDescription("Rewrite [IMG_n_m] placeholders and bare image URLs in text into markdown image tags. Runs locally."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text to rewrite"),
		),
		mcp.WithString("file_id",
			mcp.Description("Document file_id used to resolve [IMG_n_m] placeholders; without it placeholders are left as is"),
		),
		mcp.WithString("base_url",
			mcp.Description("Summarization API root prefixed to placeholder image paths (default: relative paths)"),
		),
	)
	s.AddTool(rewriteTool, handleRewriteImages())

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
