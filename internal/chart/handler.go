package chart

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"bcf-backend/internal/shared/server/respond"
	"bcf-backend/internal/shared/util"
	"bcf-backend/internal/simulation"
)

// Handler serves the rendered chart.
type Handler struct {
	Data DataSource
	Opts Options
}

// NewHandler constructs a Handler using DefaultOptions.
func NewHandler(data DataSource) *Handler {
	return &Handler{Data: data, Opts: DefaultOptions()}
}

// RegisterRoutes attaches the chart image route.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/chart.png", h.png)
}

func (h *Handler) png(c *gin.Context) {
	data, src := h.Data.ChartData(c.Request.Context())
	c.Set(simulation.DataSourceKey, string(src))

	var buf bytes.Buffer
	if err := RenderPNG(&buf, data, h.Opts); err != nil {
		respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render chart", nil)
		return
	}
	etag := util.ETag(buf.Bytes())
	c.Header(simulation.SourceHeader, string(src))
	c.Header("Cache-Control", "no-cache")
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
