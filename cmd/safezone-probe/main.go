// Command safezone-probe runs canned encounters through the safe-zone engine
// and prints arenas, zones and chosen positions as WKT.
//
// Usage:
//
//	safezone-probe list
//	safezone-probe <scenario|all> [seed]
//	safezone-probe polygon '[[x,z],...]' [seed]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/raidkit/safezone/internal/config"
	"github.com/raidkit/safezone/internal/dispatcher"
	"github.com/raidkit/safezone/internal/logging"
	intOtel "github.com/raidkit/safezone/internal/otel"
	"github.com/raidkit/safezone/pkg/safezone"
)

const ProgramName = "safezone-probe"

var (
	SlogManager *logging.SlogManager
	Logger      *slog.Logger

	// EngineLogger is what calculators log through; slog or zerolog per config.
	EngineLogger safezone.Logger

	OTelProvider *intOtel.Provider

	LogFile     *os.File
	LogFilePath string

	SessionStartTime time.Time = time.Now()

	// ScenarioScope tags log records with the scenario being evaluated.
	ScenarioScope = logging.NewScope("scenario")
)

// setup loads config from configDir and wires logging and telemetry.
func setup(configDir string) {
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(os.Stderr, "info", nil, nil)
	Logger = SlogManager.Logger()

	if err := config.Load(configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	var err error
	LogFile, LogFilePath, err = logging.OpenLogFile(config.GetString("logsDir"), ProgramName, SessionStartTime)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
		LogFile = nil
	}

	var logOut io.Writer = os.Stderr
	if LogFile != nil {
		logOut = LogFile
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:        otelCfg.Enabled,
			ServiceName:    otelCfg.ServiceName,
			BatchTimeout:   otelCfg.BatchTimeout,
			MetricInterval: otelCfg.MetricInterval,
			LogWriter:      logOut,
			MetricWriter:   logOut,
			Endpoint:       otelCfg.Endpoint,
			Insecure:       otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
			OTelProvider = nil
		} else {
			Logger.Info("OTel provider initialized", "endpoint", otelCfg.Endpoint)
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	level := config.GetString("logLevel")
	SlogManager.Setup(logOut, level, otelLogProvider, ScenarioScope)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", LogFilePath)

	switch strings.ToLower(config.GetString("logBackend")) {
	case "zerolog":
		EngineLogger = logging.NewZerologLogger(logging.NewConsoleZerolog(logOut, level))
	default:
		EngineLogger = Logger
	}
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := SlogManager.Flush(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to shut down telemetry: %v\n", err)
		}
	}
	if LogFile != nil {
		LogFile.Close()
	}
}

func parseSeed(args []string) (uint64, error) {
	if len(args) == 0 {
		return uint64(SessionStartTime.UnixNano()), nil
	}
	seed, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed %q: %w", args[0], err)
	}
	return seed, nil
}

// newRouter registers the probe's commands. Scenario names are commands of
// their own.
func newRouter(out io.Writer) (*dispatcher.Dispatcher, error) {
	d, err := dispatcher.New(Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	d.Register("list", func(dispatcher.Event) error {
		for _, c := range d.Commands() {
			fmt.Fprintf(out, "%s\t%s\n", c.Name, c.Summary)
		}
		return nil
	}, dispatcher.Describe("show available commands"))

	d.Register("all", func(e dispatcher.Event) error {
		selected := make([]scenario, 0, len(scenarios))
		for _, name := range scenarioNames() {
			selected = append(selected, scenarios[name])
		}
		return runScenarios(out, e.Args, selected...)
	}, dispatcher.Describe("run every built-in scenario"), dispatcher.Logged())

	d.Register("polygon", func(e dispatcher.Event) error {
		if len(e.Args) == 0 {
			return fmt.Errorf("polygon needs a vertex list")
		}
		sc, err := polygonScenario(e.Args[0])
		if err != nil {
			return err
		}
		return runScenarios(out, e.Args[1:], sc)
	}, dispatcher.Describe("forbid a custom polygon given as [[x,z],...]"), dispatcher.Logged())

	for _, name := range scenarioNames() {
		sc := scenarios[name]
		d.Register(name, func(e dispatcher.Event) error {
			return runScenarios(out, e.Args, sc)
		}, dispatcher.Describe(sc.about), dispatcher.Logged())
	}

	d.Fallback(func(e dispatcher.Event) error {
		return fmt.Errorf("unknown scenario %q", e.Command)
	})
	return d, nil
}

func runScenarios(out io.Writer, args []string, selected ...scenario) error {
	seed, err := parseSeed(args)
	if err != nil {
		return err
	}

	p := newProbe(out, EngineLogger, config.GetEngineConfig(), seed)
	for _, sc := range selected {
		if err := p.render(sc); err != nil {
			return err
		}
	}
	return nil
}

// execute dispatches one command line and writes results to out.
func execute(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("no arguments provided, try %q", "list")
	}

	d, err := newRouter(out)
	if err != nil {
		return err
	}
	return d.Dispatch(dispatcher.Event{Command: args[0], Args: args[1:], Timestamp: time.Now()})
}

func main() {
	setup(".")
	err := execute(os.Args[1:], os.Stdout)
	shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
