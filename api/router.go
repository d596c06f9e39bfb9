package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdfgenie/genie/api/handler"
	"github.com/pdfgenie/genie/api/middleware"
	"github.com/pdfgenie/genie/cache"
	"github.com/pdfgenie/genie/config"
	"github.com/pdfgenie/genie/imageref"
	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/render"
	"github.com/pdfgenie/genie/session"
	"github.com/pdfgenie/genie/store"
	"github.com/pdfgenie/genie/summary"
)

// Deps are the long-lived components the handlers share.
type Deps struct {
	Config    *config.Config
	Upstream  *summary.Client
	Renderer  *render.Renderer
	Summaries *cache.Cache[*models.SummaryResponse]
	Sessions  *session.Manager
	Archive   *store.Archive
	Users     *store.Users
	Metrics   *middleware.Metrics
	StartTime time.Time
}

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit → Metrics
//
// Health and /metrics are outside auth so probes and scrapers always work.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	gin.SetMode(cfg.Server.Mode)

	pl := &handler.Pipeline{
		Renderer: d.Renderer,
		Resolver: imageref.NewBaseResolver(cfg.Images.PublicAPIURL),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	v1 := r.Group("/api/v1")

	// Health: no auth required.
	v1.GET("/health", handler.Health(d.Upstream.BaseURL(), d.Summaries, d.Archive, d.StartTime))

	// Protected group: auth, rate limit, metrics.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))
	protected.Use(d.Metrics.Middleware())

	// Summaries
	protected.POST("/summary", handler.Summary(d.Upstream, pl, d.Sessions, d.Users, d.Summaries, d.Metrics, cfg.Upstream))
	protected.POST("/ask", handler.Ask(d.Upstream, pl, d.Sessions, d.Metrics, cfg.Upstream))
	protected.POST("/feedback", handler.Feedback(d.Upstream, d.Sessions, d.Metrics, cfg.Upstream, cfg.Webhook))
	protected.POST("/render", handler.Render(pl))

	// Archive
	protected.GET("/archive", handler.ListArchive(d.Archive))
	protected.POST("/archive", handler.AddArchive(d.Archive))
	protected.GET("/archive/:id", handler.GetArchive(d.Archive))
	protected.DELETE("/archive/:id", handler.DeleteArchive(d.Archive))
	protected.GET("/archive/:id/download", handler.DownloadArchive(d.Archive))

	// Stub auth
	protected.POST("/auth/login", handler.Login(d.Users))
	protected.POST("/auth/logout", handler.Logout(d.Users))
	protected.GET("/auth/me", handler.Me(d.Users))

	return r
}
