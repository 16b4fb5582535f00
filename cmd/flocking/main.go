package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/internal/view/terminal"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/internal/view/window"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/render"
	"github.com/lao-tseu-is-alive/go-flocking-simulation/pkg/simulation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	golog "github.com/tochemey/goakt/v3/log"
)

const (
	rendererWindow   = "ebiten"
	rendererTerminal = "tui"
	rendererHeadless = "headless"
)

type options struct {
	configFile  string
	renderer    string
	ticks       int
	metricsAddr string
	quiet       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "configuration file (.json, .toml, .yaml)")
	flag.StringVar(&opts.renderer, "renderer", rendererWindow, "front-end: ebiten, tui or headless")
	flag.IntVar(&opts.ticks, "ticks", 0, "headless only: stop after this many ticks, 0 runs until interrupted")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, overrides the config")
	flag.BoolVar(&opts.quiet, "quiet", false, "discard logs")
	flag.Parse()

	var logger golog.Logger = golog.DefaultLogger
	// the terminal front-end owns stdout
	if opts.quiet || opts.renderer == rendererTerminal {
		logger = golog.DiscardLogger
	}

	if err := run(opts, logger); err != nil {
		logger.Error(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options, logger golog.Logger) error {
	cfg := simulation.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := simulation.LoadConfig(opts.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.metricsAddr != "" {
		cfg.MetricsAddr = opts.metricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := simulation.NewMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// 2. World
	population := flock.NewPopulation()
	canvas := render.NewCanvas()
	controls := simulation.NewControls(cfg.Params())
	spawner := flock.NewSpawner(cfg.Obstacle, cfg.NeighborhoodSize)
	if n := simulation.StageInitialPopulation(cfg, population, spawner); n > 0 {
		logger.Infof("staged %d initial entities", n)
	}

	// 3. Control surface
	surface, err := simulation.StartControlSurface(ctx, logger, simulation.NewControlActor(controls, population, spawner))
	if err != nil {
		return err
	}
	defer func() {
		if err := surface.Stop(context.Background()); err != nil {
			logger.Warnf("failed to stop control surface: %v", err)
		}
	}()

	loop := simulation.NewLoop(cfg, population, canvas, controls,
		simulation.WithLogger(logger),
		simulation.WithMetrics(metrics))

	// 4. Front-end
	switch opts.renderer {
	case rendererHeadless:
		if opts.ticks > 0 {
			_, err := loop.RunTicks(ctx, opts.ticks)
			return ignoreCanceled(err)
		}
		return ignoreCanceled(loop.Run(ctx))

	case rendererWindow:
		done := runInBackground(ctx, loop)
		ebiten.SetWindowSize(window.Width, window.Height)
		ebiten.SetWindowTitle("Flocking simulation")
		err := ebiten.RunGame(window.NewGame(ctx, cfg, canvas, surface, loop.Ticks, logger))
		stop()
		<-done
		if err != nil {
			return fmt.Errorf("window closed with error: %w", err)
		}
		return nil

	case rendererTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		term, err := terminal.New(screen, cfg, canvas, surface, controls, loop.Ticks, logger)
		if err != nil {
			return err
		}
		done := runInBackground(ctx, loop)
		err = term.Run(ctx)
		stop()
		<-done
		return err

	default:
		return fmt.Errorf("unknown renderer %q", opts.renderer)
	}
}

func runInBackground(ctx context.Context, loop *simulation.Loop) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	return done
}

func serveMetrics(addr string, reg *prometheus.Registry, logger golog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Infof("📈 Prometheus /metrics available on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("metrics server: %v", err)
		}
	}()
	return srv
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
