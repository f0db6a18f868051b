package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"energy_gauge/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	pageName = "dashboard.html"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData is the dashboard template model.
type pageData struct {
	models.Display
	RefreshMs int64
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Dashboard page
// @Description  HTML gauge that renders the current display and follows /ws.
// @Tags         dashboard
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *Handler) dashboardPage(c *gin.Context) {
	c.HTML(http.StatusOK, pageName, pageData{
		Display:   h.services.Monitoring.Display(),
		RefreshMs: h.refresh.Milliseconds(),
	})
}

// @Summary      Current display
// @Description  Every rendered region of the gauge, as last written by the poller.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.Display
// @Router       /api/v1/display [get]
func (h *Handler) getDisplay(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.Display())
}
