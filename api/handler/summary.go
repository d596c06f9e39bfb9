package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/pdfgenie/genie/api/middleware"
	"github.com/pdfgenie/genie/cache"
	"github.com/pdfgenie/genie/config"
	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/session"
	"github.com/pdfgenie/genie/store"
	"github.com/pdfgenie/genie/summary"
)

// PermitCookie is forwarded to the summarization API.
const PermitCookie = "approxy_permit"

// permit returns the browser's approxy_permit cookie, or fallback.
func permit(c *gin.Context, fallback string) string {
	if v, err := c.Cookie(PermitCookie); err == nil && v != "" {
		return v
	}
	return fallback
}

// produced is the shared result of one upstream summary call.
type produced struct {
	resp       *models.SummaryResponse
	upstreamMs int64
	renderMs   int64
}

// Summary returns a handler for POST /api/v1/summary.
//
// Orchestration flow:
//  1. Parse & validate request, derive the file ID.
//  2. Cache lookup when max_age is set.
//  3. Summarize upstream                 (records upstream_ms)
//  4. Normalize, rewrite images, render  (records render_ms)
//  5. Start the session, cache and respond.
//
// Steps 3-5 run once per document and language at a time.
func Summary(
	up *summary.Client,
	pl *Pipeline,
	sessions *session.Manager,
	users *store.Users,
	cc *cache.Cache[*models.SummaryResponse],
	metrics *middleware.Metrics,
	cfg config.UpstreamConfig,
) gin.HandlerFunc {
	var flight singleflight.Group

	produce := func(ctx context.Context, host, fileID, key string, req models.SummaryRequest, cookie string) (produced, error) {
		upStart := time.Now()
		upCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		answer, err := up.Summarize(upCtx, fileID, req.PDFURL, req.Lang, cookie)
		cancel()
		upstream := time.Since(upStart)
		metrics.ObserveUpstream("summary", err, upstream)
		if err != nil {
			return produced{}, err
		}

		renderStart := time.Now()
		out, err := pl.Run(ctx, host, answer, fileID, false)
		if err != nil {
			return produced{}, err
		}
		renderMs := time.Since(renderStart).Milliseconds()

		sessions.Start(fileID, req.PDFURL, req.Lang, req.DeepResearch, out.Markdown)

		resp := &models.SummaryResponse{
			Response:     models.Response{Success: true},
			FileID:       fileID,
			Title:        out.Title,
			Markdown:     out.Markdown,
			HTML:         out.HTML,
			Images:       out.Images,
			Lang:         req.Lang,
			DeepResearch: req.DeepResearch,
		}
		cc.Set(key, resp)

		return produced{resp: resp, upstreamMs: upstream.Milliseconds(), renderMs: renderMs}, nil
	}

	return func(c *gin.Context) {
		totalStart := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.SummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		req.Defaults()
		// Deep research is a signed-in feature.
		if _, ok := users.Current(); !ok {
			req.DeepResearch = false
		}
		fileID := summary.FileID(req.PDFURL)
		base := pl.Resolver.Resolve(c.Request.Host)
		cacheKey := cache.Key(fileID, string(req.Lang), base)

		// ── 2. Cache lookup ─────────────────────────────────────────
		if req.MaxAge > 0 {
			maxAge := time.Duration(req.MaxAge) * time.Millisecond
			if cached, hit := cc.GetFresh(cacheKey, maxAge); hit {
				metrics.ObserveCache("hit")
				if _, ok := sessions.Get(fileID); !ok {
					sessions.Start(fileID, req.PDFURL, req.Lang, req.DeepResearch, cached.Markdown)
				}
				resp := *cached
				resp.DeepResearch = req.DeepResearch
				resp.CacheStatus = "hit"
				resp.Timing = models.TimingInfo{TotalMs: time.Since(totalStart).Milliseconds()}
				c.JSON(http.StatusOK, resp)
				return
			}
			metrics.ObserveCache("miss")
		}

		// ── 3-5. Upstream, render, session, cache ──────────────────
		// Concurrent requests for the same document share one upstream
		// call. The shared call outlives any single client's cancellation.
		v, err, _ := flight.Do(cacheKey, func() (any, error) {
			ctx := context.WithoutCancel(c.Request.Context())
			return produce(ctx, c.Request.Host, fileID, cacheKey, req, permit(c, cfg.ApproxyPermit))
		})
		if err != nil {
			respondError(c, err)
			return
		}
		res := v.(produced)

		sent := *res.resp
		sent.DeepResearch = req.DeepResearch
		if req.MaxAge > 0 {
			sent.CacheStatus = "miss"
		}
		sent.Timing = models.TimingInfo{
			TotalMs:    time.Since(totalStart).Milliseconds(),
			UpstreamMs: res.upstreamMs,
			RenderMs:   res.renderMs,
		}
		c.JSON(http.StatusOK, sent)
	}
}
