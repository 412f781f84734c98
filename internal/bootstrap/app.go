package bootstrap

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"bcf-backend/internal/analyzer"
	"bcf-backend/internal/chart"
	"bcf-backend/internal/services/health"
	"bcf-backend/internal/shared/config"
	"bcf-backend/internal/shared/server"
	"bcf-backend/internal/shared/telemetry"
	"bcf-backend/internal/simulation"
	"bcf-backend/web"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	Invoker           *analyzer.Invoker
	SimulationService *simulation.Service
	SimulationHandler *simulation.Handler
	ChartHandler      *chart.Handler
	Health            *health.Service
	Public            fs.FS
}

// Build wires the analyzer, services and router from cfg.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	public, err := buildPublic(cfg.PublicDir)
	if err != nil {
		return nil, err
	}

	inv := BuildInvoker(cfg.Analyzer)
	simSvc := simulation.NewService(inv)

	app := &App{
		Config:            cfg,
		Invoker:           inv,
		SimulationService: simSvc,
		SimulationHandler: simulation.NewHandler(simSvc),
		ChartHandler:      chart.NewHandler(simSvc),
		Health:            health.NewService(),
		Public:            public,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:     app.Config,
		Health:     app.Health,
		Simulation: app.SimulationHandler,
		Chart:      app.ChartHandler,
		Static:     app.Public,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":        cfg.Env,
		"script":     inv.Script,
		"candidates": candidateNames(inv.Candidates),
		"timeout_ms": cfg.Analyzer.Timeout.Milliseconds(),
		"public_dir": cfg.PublicDir,
	})
	return app, nil
}

// BuildInvoker binds the configured script to the candidate list. An explicit
// candidate list replaces the defaults entirely.
func BuildInvoker(cfg config.AnalyzerConfig) *analyzer.Invoker {
	candidates := analyzer.ParseCandidates(cfg.Candidates)
	if len(candidates) == 0 {
		candidates = analyzer.DefaultCandidates(cfg.PythonPath)
	}
	return &analyzer.Invoker{
		Runner:     analyzer.NewExecRunner(cfg.WorkDir, cfg.MaxOutputBytes),
		Candidates: candidates,
		Script:     cfg.Script,
		Timeout:    cfg.Timeout,
		OnAttempt:  simulation.ObserveAttempt,
	}
}

func buildPublic(dir string) (fs.FS, error) {
	if strings.TrimSpace(dir) == "" {
		return web.PublicFS(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("public dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("public dir %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

func candidateNames(cs []analyzer.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}
