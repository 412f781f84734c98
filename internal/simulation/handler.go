package simulation

import (
	"github.com/gin-gonic/gin"

	"bcf-backend/internal/shared/server/middleware"
	"bcf-backend/internal/shared/server/respond"
)

// SourceHeader tells operators whether a response came from the analyzer or the fallback.
const SourceHeader = "X-Data-Source"

// DataSourceKey is the gin context key read by the request logger.
const DataSourceKey = middleware.DataSourceKey

// Handler wires HTTP handlers to the simulation service.
// Every handler answers 200; failures only change the payload source.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the simulation API to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/chart-data", h.chartData)
	rg.GET("/run", h.run)
	rg.GET("/logic", h.logic)
}

// RegisterLegacyRoutes attaches the paths used by the first version of the page.
func (h *Handler) RegisterLegacyRoutes(r gin.IRoutes) {
	r.GET("/run_simulation", h.run)
	r.GET("/get_chart_data", h.chartData)
}

type runResponse struct {
	Output string `json:"output"`
}

func (h *Handler) chartData(c *gin.Context) {
	data, src := h.Svc.ChartData(c.Request.Context())
	markSource(c, src)
	respond.OK(c, data)
}

func (h *Handler) run(c *gin.Context) {
	out, src := h.Svc.Transcript(c.Request.Context())
	markSource(c, src)
	respond.OK(c, runResponse{Output: out})
}

func (h *Handler) logic(c *gin.Context) {
	logic, src := h.Svc.Logic(c.Request.Context())
	markSource(c, src)
	respond.OK(c, logic)
}

func markSource(c *gin.Context, src Source) {
	c.Set(DataSourceKey, string(src))
	c.Header(SourceHeader, string(src))
}
