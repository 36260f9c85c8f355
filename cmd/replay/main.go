// Package main provides the input replay tool. It loads configuration, a control map,
// and a scenario, runs every step through the combat input decision engine, and logs
// each decision with a final summary.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/attackinput/internal/config"
	"github.com/cory-johannsen/attackinput/internal/input/binding"
	"github.com/cory-johannsen/attackinput/internal/observability"
	"github.com/cory-johannsen/attackinput/internal/replay"
	"github.com/cory-johannsen/attackinput/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	controlsPath := flag.String("controls", "configs/controls.yaml", "path to control map YAML file")
	scenarioPath := flag.String("scenario", "", "path to scenario YAML file")
	actorScript := flag.String("actor-script", "", "optional Lua script, or directory of scripts, supplying character snapshots")
	instLimit := flag.Int("inst-limit", scripting.DefaultInstructionLimit, "Lua instruction limit per hook call")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatalf("-scenario is required")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	controls, err := binding.LoadControlMap(*controlsPath)
	if err != nil {
		logger.Fatal("loading control map", zap.Error(err))
	}
	sc, err := replay.LoadScenario(*scenarioPath)
	if err != nil {
		logger.Fatal("loading scenario", zap.Error(err))
	}
	logger.Info("scenario loaded",
		zap.String("name", sc.Name),
		zap.String("player", sc.PlayerID()),
		zap.Int("steps", len(sc.Steps)),
	)

	var actor replay.StepActor
	if *actorScript != "" {
		scripts := scripting.NewManager(logger)
		defer scripts.Close()
		if err := scripts.Load(sc.PlayerID(), *actorScript, *instLimit); err != nil {
			logger.Fatal("loading actor script", zap.Error(err))
		}
		actor = scripting.NewScriptedActor(scripts, sc.PlayerID(), logger)
		logger.Info("scripted actor loaded", zap.String("script", *actorScript))
	}

	report, err := replay.NewRunner(cfg, controls, actor, logger).Run(sc)
	if err != nil {
		logger.Fatal("running scenario", zap.Error(err))
	}

	fired := make([]string, 0, len(report.Fired))
	for _, id := range report.Fired {
		fired = append(fired, string(id))
	}
	logger.Info("replay complete",
		zap.String("scenario", report.Scenario),
		zap.Strings("fired", fired),
		zap.Int("meter_flashes", len(report.Flashes)),
		zap.Bool("failed", report.Failed()),
		zap.Duration("elapsed", time.Since(start)),
	)
	if report.Failed() {
		logger.Sync()
		os.Exit(1)
	}
}
