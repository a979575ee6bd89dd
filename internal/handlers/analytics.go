package handlers

import (
	"log/slog"
	"net/http"

	"frontend-gin/internal/analytics"
	"frontend-gin/internal/web"

	"github.com/gin-gonic/gin"
)

const proxyFailed = "Proxy failed"

type AnalyticsView struct {
	Error   string
	Summary *analytics.Summary
}

func (h *Handler) AnalyticsPage(c *gin.Context) {
	var view AnalyticsView

	raw, err := h.api.Heatmap(c.Request.Context())
	if err != nil {
		slog.Error("heatmap fetch failed", "error", err)
		view.Error = proxyFailed
		h.render(c, http.StatusOK, web.PageAnalytics, "Analytics", view)
		return
	}

	summary, err := analytics.Build(raw)
	if err != nil {
		slog.Error("heatmap not understood", "error", err)
		view.Error = "Something went wrong"
		h.render(c, http.StatusOK, web.PageAnalytics, "Analytics", view)
		return
	}

	view.Summary = &summary
	h.render(c, http.StatusOK, web.PageAnalytics, "Analytics", view)
}

// AnalyticsProxy relays the heatmap aggregate untouched.
func (h *Handler) AnalyticsProxy(c *gin.Context) {
	raw, err := h.api.Heatmap(c.Request.Context())
	if err != nil {
		slog.Error("analytics proxy failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": proxyFailed})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
