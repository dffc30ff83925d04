// Package api exposes the HTTP surface: public content routes, auth,
// and the admin CRUD endpoints.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aurorahq/akfeed/internal/auth"
	"github.com/aurorahq/akfeed/internal/service"
	"github.com/aurorahq/akfeed/internal/store"
)

type Handler struct {
	svc    *service.Service
	issuer *auth.Issuer
	logger *slog.Logger
}

func NewHandler(svc *service.Service, issuer *auth.Issuer, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, issuer: issuer, logger: logger}
}

// FrontPage: GET /v1/front-page?refresh=true
func (h *Handler) FrontPage(c *gin.Context) {
	bypass := c.Query("refresh") == "true"
	page, err := h.svc.FrontPage(c.Request.Context(), bypass)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{
			"fallback":     page.Fallback,
			"generated_at": page.GeneratedAt,
		},
		"data": page.Categories,
	})
}

// ListRegions: GET /v1/regions
func (h *Handler) ListRegions(c *gin.Context) {
	regions, err := h.svc.Content().ListRegions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"count": len(regions)},
		"data": regions,
	})
}

// GetRegion: GET /v1/regions/:slug
func (h *Handler) GetRegion(c *gin.Context) {
	region, err := h.svc.Content().GetRegionBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.storeError(c, err, "region not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": region})
}

// RegionNews: GET /v1/regions/:slug/news?limit=6
func (h *Handler) RegionNews(c *gin.Context) {
	ctx := c.Request.Context()
	region, err := h.svc.Content().GetRegionBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.storeError(c, err, "region not found")
		return
	}
	limit := parseLimit(c.DefaultQuery("limit", strconv.Itoa(store.RegionNewsLimit)))
	items, err := h.svc.Content().ListNewsByRegion(ctx, region.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"region": region.Slug, "count": len(items), "limit": limit},
		"data": items,
	})
}

// RegionBusinesses: GET /v1/regions/:slug/businesses?limit=8
func (h *Handler) RegionBusinesses(c *gin.Context) {
	ctx := c.Request.Context()
	region, err := h.svc.Content().GetRegionBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.storeError(c, err, "region not found")
		return
	}
	limit := parseLimit(c.DefaultQuery("limit", strconv.Itoa(store.RegionBusinessLimit)))
	businesses, err := h.svc.Content().ListBusinessesByRegion(ctx, region.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"region": region.Slug, "count": len(businesses), "limit": limit},
		"data": businesses,
	})
}

// RegionResources: GET /v1/regions/:slug/resources?limit=8
func (h *Handler) RegionResources(c *gin.Context) {
	ctx := c.Request.Context()
	region, err := h.svc.Content().GetRegionBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.storeError(c, err, "region not found")
		return
	}
	limit := parseLimit(c.DefaultQuery("limit", strconv.Itoa(store.RegionBusinessLimit)))
	resources, err := h.svc.Content().ListResourcesByRegion(ctx, region.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"region": region.Slug, "count": len(resources), "limit": limit},
		"data": resources,
	})
}

// GetCommunity: GET /v1/communities/:slug
func (h *Handler) GetCommunity(c *gin.Context) {
	page, err := h.svc.ResolveCommunity(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownCommunity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "community not found", "home": "/v1/front-page"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page})
}

// CommunityWeather: GET /v1/communities/:slug/weather
func (h *Handler) CommunityWeather(c *gin.Context) {
	report, err := h.svc.CommunityWeather(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownCommunity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "community not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// Weather: GET /v1/weather?lat=64.84&lon=-147.72&name=Fairbanks
func (h *Handler) Weather(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing lat/lon parameters"})
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat/lon out of range"})
		return
	}
	report := h.svc.WeatherAt(lat, lon, c.Query("name"))
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// MapRegions: GET /v1/map/regions
func (h *Handler) MapRegions(c *gin.Context) {
	m, err := h.svc.RegionMap(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"count": len(m.Regions)},
		"data": m,
	})
}

// MapBusinesses: GET /v1/map/businesses?region=interior
func (h *Handler) MapBusinesses(c *gin.Context) {
	regionSlug := c.Query("region")
	if regionSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing region parameter"})
		return
	}
	markers, err := h.svc.BusinessMarkers(c.Request.Context(), regionSlug)
	if err != nil {
		h.storeError(c, err, "region not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"region": regionSlug, "count": len(markers)},
		"data": markers,
	})
}

// MapResources: GET /v1/map/resources?region=interior
func (h *Handler) MapResources(c *gin.Context) {
	regionSlug := c.Query("region")
	if regionSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing region parameter"})
		return
	}
	markers, err := h.svc.ResourceMarkers(c.Request.Context(), regionSlug)
	if err != nil {
		h.storeError(c, err, "region not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"region": regionSlug, "count": len(markers)},
		"data": markers,
	})
}

// ListWeeklyReports: GET /v1/weekly-reports?limit=12
func (h *Handler) ListWeeklyReports(c *gin.Context) {
	limit := parseLimit(c.DefaultQuery("limit", "12"))
	reports, err := h.svc.Content().ListWeeklyReports(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"count": len(reports), "limit": limit},
		"data": reports,
	})
}

// LatestWeeklyReport: GET /v1/weekly-reports/latest
func (h *Handler) LatestWeeklyReport(c *gin.Context) {
	report, err := h.svc.Content().LatestWeeklyReport(c.Request.Context())
	if err != nil {
		h.storeError(c, err, "no weekly reports published")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}

// FeaturedResources: GET /v1/resources/featured?limit=8
func (h *Handler) FeaturedResources(c *gin.Context) {
	limit := parseLimit(c.DefaultQuery("limit", strconv.Itoa(store.RegionBusinessLimit)))
	resources, err := h.svc.Content().ListFeaturedResources(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"count": len(resources), "limit": limit},
		"data": resources,
	})
}

// Healthz: GET /healthz
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz: GET /readyz
func (h *Handler) Readyz(c *gin.Context) {
	if err := h.svc.CheckReadiness(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// storeError maps ErrNotFound to 404 and everything else to 500.
func (h *Handler) storeError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// parseLimit ensures a sane integer limit, with bounds.
func parseLimit(s string) int {
	l, err := strconv.Atoi(s)
	if err != nil || l <= 0 {
		return 10
	}
	if l > 200 {
		return 200
	}
	return l
}
