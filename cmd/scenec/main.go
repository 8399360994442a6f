// Command scenec compiles a robot description into a physics-ready scene
// graph, loads it into the in-memory engine, and optionally serves the
// compiled scene to browser viewers over websockets.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"go.uber.org/zap"

	"roboscene/internal/config"
	"roboscene/internal/desc"
	"roboscene/internal/logger"
	"roboscene/internal/physics"
	"roboscene/internal/scene"
	"roboscene/internal/transport/ws"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config YAML")
		descPath   = flag.String("desc", "", "path to robot description YAML (overrides config)")
		listen     = flag.String("listen", "", "viewer websocket address, e.g. :8080 (overrides config)")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	if *descPath != "" {
		cfg.Description = *descPath
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log := logger.New(cfg.Log.Level, logger.DefaultFileConfig(cfg.Log.File))
	defer log.Sync()

	if err := run(log, cfg); err != nil {
		log.Fatal("scenec failed", zap.Error(err))
	}
}

func run(log *zap.Logger, cfg *config.Config) error {
	robot, err := desc.LoadFile(cfg.Description)
	if err != nil {
		return err
	}
	log.Info("loaded robot description",
		zap.String("robot", robot.Name),
		zap.Int("links", len(robot.Links)),
		zap.Int("joints", len(robot.Joints)))

	compiler := scene.NewCompiler(log, scene.Options{
		UnboundedRevolute: cfg.Physics.UnboundedRevolute,
	})
	graph, err := compiler.Compile(robot)
	if err != nil {
		return err
	}
	environment := scene.BuildEnvironment(cfg.Field)

	engine := physics.NewMemory()
	defer engine.Close()
	ctx := context.Background()
	if err := physics.Load(ctx, engine, environment); err != nil {
		return err
	}
	if err := physics.Load(ctx, engine, graph); err != nil {
		return err
	}
	log.Info("scene loaded into engine",
		zap.Int("bodies", len(engine.Bodies())),
		zap.Int("constraints", len(engine.Constraints())))

	if cfg.Listen == "" {
		return nil
	}
	server := ws.NewServer(log, environment, graph)
	mux := http.NewServeMux()
	mux.Handle("/ws", server.Handler())
	log.Info("serving viewer", zap.String("addr", cfg.Listen))
	return http.ListenAndServe(cfg.Listen, mux)
}
