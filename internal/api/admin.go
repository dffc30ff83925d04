package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aurorahq/akfeed/internal/domain"
	"github.com/aurorahq/akfeed/internal/service"
	"github.com/aurorahq/akfeed/internal/store"
)

// CreateNews: POST /v1/admin/news
func (h *Handler) CreateNews(c *gin.Context) {
	var item domain.NewsItem
	if err := c.BindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if item.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if err := h.svc.PublishNews(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// UpdateNews: PUT /v1/admin/news/:id
func (h *Handler) UpdateNews(c *gin.Context) {
	var item domain.NewsItem
	if err := c.BindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	item.ID = c.Param("id")
	if err := h.svc.Content().UpdateNewsItem(c.Request.Context(), &item); err != nil {
		h.storeError(c, err, "news item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// SummarizeNews: POST /v1/admin/news/:id/summary
func (h *Handler) SummarizeNews(c *gin.Context) {
	summary, err := h.svc.SummarizeNews(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSummariesDisabled) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			return
		}
		h.storeError(c, err, "news item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"id": c.Param("id"), "summary": summary},
	})
}

// DeleteNews: DELETE /v1/admin/news/:id
func (h *Handler) DeleteNews(c *gin.Context) {
	if err := h.svc.Content().DeleteNewsItem(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err, "news item not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBusiness: POST /v1/admin/businesses
func (h *Handler) CreateBusiness(c *gin.Context) {
	var b domain.LocalBusiness
	if err := c.BindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if b.Name == "" || b.RegionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and region_id are required"})
		return
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := h.svc.Content().InsertBusiness(c.Request.Context(), &b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": b})
}

// UpdateBusiness: PUT /v1/admin/businesses/:id
func (h *Handler) UpdateBusiness(c *gin.Context) {
	var b domain.LocalBusiness
	if err := c.BindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	b.ID = c.Param("id")
	if err := h.svc.Content().UpdateBusiness(c.Request.Context(), &b); err != nil {
		h.storeError(c, err, "business not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

// DeleteBusiness: DELETE /v1/admin/businesses/:id
func (h *Handler) DeleteBusiness(c *gin.Context) {
	if err := h.svc.Content().DeleteBusiness(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err, "business not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateResource: POST /v1/admin/resources
func (h *Handler) CreateResource(c *gin.Context) {
	var r domain.PublicResource
	if err := c.BindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if r.Name == "" || r.RegionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and region_id are required"})
		return
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := h.svc.Content().InsertResource(c.Request.Context(), &r); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": r})
}

// UpdateResource: PUT /v1/admin/resources/:id
func (h *Handler) UpdateResource(c *gin.Context) {
	var r domain.PublicResource
	if err := c.BindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	r.ID = c.Param("id")
	if err := h.svc.Content().UpdateResource(c.Request.Context(), &r); err != nil {
		h.storeError(c, err, "resource not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": r})
}

// DeleteResource: DELETE /v1/admin/resources/:id
func (h *Handler) DeleteResource(c *gin.Context) {
	if err := h.svc.Content().DeleteResource(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err, "resource not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateWeeklyReport: POST /v1/admin/weekly-reports
func (h *Handler) CreateWeeklyReport(c *gin.Context) {
	var r domain.WeeklyReport
	if err := c.BindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	if r.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := h.svc.Content().InsertWeeklyReport(c.Request.Context(), &r); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": r})
}

// UpdateWeeklyReport: PUT /v1/admin/weekly-reports/:id
func (h *Handler) UpdateWeeklyReport(c *gin.Context) {
	var r domain.WeeklyReport
	if err := c.BindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	r.ID = c.Param("id")
	if err := h.svc.Content().UpdateWeeklyReport(c.Request.Context(), &r); err != nil {
		h.storeError(c, err, "weekly report not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": r})
}

// DeleteWeeklyReport: DELETE /v1/admin/weekly-reports/:id
func (h *Handler) DeleteWeeklyReport(c *gin.Context) {
	if err := h.svc.Content().DeleteWeeklyReport(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err, "weekly report not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// SetUserRole: PUT /v1/admin/users/:id/role
func (h *Handler) SetUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}
	if req.Role != store.RoleAdmin && req.Role != store.RoleReader {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	if err := h.svc.UserStore().SetUserRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
		h.storeError(c, err, "user not found")
		return
	}
	c.Status(http.StatusNoContent)
}
