package main

import (
	"time"

	"github.com/spf13/cobra"

	"bcf-backend/internal/bootstrap"
	"bcf-backend/internal/shared/config"
	"bcf-backend/internal/shared/telemetry"
	"bcf-backend/internal/simulation"
)

// version is set at build time via -ldflags.
var version = "dev"

// globalFlags override the loaded configuration when set on the command line.
type globalFlags struct {
	script     string
	python     string
	timeout    time.Duration
	candidates []string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "bcfctl",
		Short: "Run and inspect the broken conductor detector",
		Long: `bcfctl drives the same analyzer invocation the web backend uses.

Configuration is read like the server reads it (defaults, then config.yaml or
$CONFIG_PATH, then environment). Flags below override both.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.script, "script", "", "Analyzer script path (default: analyzer.script)")
	pf.StringVar(&g.python, "python", "", "Preferred Python interpreter (default: $PYTHON_PATH)")
	pf.DurationVar(&g.timeout, "timeout", 0, "Per-candidate timeout, 0 disables (default: analyzer.timeout)")
	pf.StringArrayVar(&g.candidates, "candidate", nil, `Launcher command line, repeatable, e.g. --candidate "py -3"`)
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level for diagnostics on stderr")

	root.AddCommand(
		newRunCmd(g),
		newChartDataCmd(g),
		newRenderCmd(g),
		newServeCmd(g),
	)
	return root
}

// load applies command-line overrides on top of config.Load.
func (g *globalFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("script") {
		cfg.Analyzer.Script = g.script
	}
	if flags.Changed("python") {
		cfg.Analyzer.PythonPath = g.python
	}
	if flags.Changed("timeout") {
		cfg.Analyzer.Timeout = g.timeout
	}
	if flags.Changed("candidate") {
		cfg.Analyzer.Candidates = g.candidates
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	telemetry.Init(telemetry.Config{
		Level:  g.logLevel,
		Format: "console",
		Output: cmd.ErrOrStderr(),
	})
	return cfg, nil
}

func (g *globalFlags) service(cmd *cobra.Command) (*simulation.Service, error) {
	cfg, err := g.load(cmd)
	if err != nil {
		return nil, err
	}
	return simulation.NewService(bootstrap.BuildInvoker(cfg.Analyzer)), nil
}
