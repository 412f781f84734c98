package server

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"bcf-backend/internal/chart"
	"bcf-backend/internal/services/health"
	"bcf-backend/internal/shared/config"
	"bcf-backend/internal/shared/metrics"
	"bcf-backend/internal/shared/server/middleware"
	"bcf-backend/internal/shared/server/respond"
	"bcf-backend/internal/simulation"
)

const analyzerRateGroup = "ANALYZER"

// analyzerRoutes spawn a subprocess per request and share one rate limit bucket.
var analyzerRoutes = map[string]struct{}{
	"/api/chart-data": {},
	"/api/run":        {},
	"/api/logic":      {},
	"/api/chart.png":  {},
	"/run_simulation": {},
	"/get_chart_data": {},
}

// RouterDeps carries the handlers NewRouter mounts.
type RouterDeps struct {
	Config     config.Config
	Health     *health.Service
	Simulation *simulation.Handler
	Chart      *chart.Handler
	Static     fs.FS
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	if cfg.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "STATIC",
			GroupFor:     rateGroup,
			Rules: map[string]middleware.RateLimitRule{
				analyzerRateGroup: {Rate: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst},
			},
		}))
	}

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	if deps.Simulation != nil {
		deps.Simulation.RegisterRoutes(api)
		deps.Simulation.RegisterLegacyRoutes(r)
	}
	if deps.Chart != nil {
		deps.Chart.RegisterRoutes(api)
	}
	if cfg.Metrics.Enabled {
		r.GET("/metrics", metrics.Handler())
	}

	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Detailed())
	})
	r.GET("/test", func(c *gin.Context) {
		respond.Text(c, "Test page is working!")
	})
	toRoot := func(c *gin.Context) { c.Redirect(http.StatusFound, "/") }
	r.GET("/index", toRoot)
	r.GET("/index.html", toRoot)

	registerStatic(r, deps.Static)

	return r
}

func rateGroup(c *gin.Context) string {
	if _, ok := analyzerRoutes[c.FullPath()]; ok {
		return analyzerRateGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
