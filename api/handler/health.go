package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdfgenie/genie/cache"
	"github.com/pdfgenie/genie/models"
	"github.com/pdfgenie/genie/store"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health.
//
// Reports degraded when the summary cache is over 80% full; entries are then
// being evicted before they expire.
func Health(upstreamURL string, cc *cache.Cache[*models.SummaryResponse], archive *store.Archive, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := models.CacheStats{
			Entries:    cc.Len(),
			MaxEntries: cc.MaxEntries(),
		}

		status := "healthy"
		if stats.MaxEntries > 0 && stats.Entries > int(float64(stats.MaxEntries)*0.8) {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   status,
			Uptime:   time.Since(startTime).Round(time.Second).String(),
			Upstream: upstreamURL,
			Cache:    stats,
			Archived: archive.Len(),
			Version:  Version,
		})
	}
}
