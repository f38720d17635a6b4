// Package main is the entry point for the height-field renderer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/stetizu1/semestral-project-height-fields/internal/config"
	"github.com/stetizu1/semestral-project-height-fields/internal/logger"
	"github.com/stetizu1/semestral-project-height-fields/pkg/core"
	"github.com/stetizu1/semestral-project-height-fields/pkg/geometry"
	"github.com/stetizu1/semestral-project-height-fields/pkg/loaders"
	"github.com/stetizu1/semestral-project-height-fields/pkg/material"
	"github.com/stetizu1/semestral-project-height-fields/pkg/renderer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	elevation, err := loaders.LoadElevationMap(cfg.Terrain.ElevationMap)
	if err != nil {
		return err
	}
	logger.Log.Info("elevation map loaded",
		zap.String("path", cfg.Terrain.ElevationMap),
		zap.Int("width", elevation.ImageWidth()),
		zap.Int("height", elevation.ImageHeight()),
	)

	terrain, err := geometry.NewHeightMap(
		elevation,
		vec3(cfg.Terrain.Position),
		cfg.Terrain.Width,
		cfg.Terrain.Height,
		cfg.Terrain.Depth,
		material.NewLambertian(vec3(cfg.Terrain.Albedo)),
	)
	if err != nil {
		return fmt.Errorf("building height map: %w", err)
	}
	logger.Log.Debug("height map built",
		zap.Int("rows", terrain.Rows()),
		zap.Int("cols", terrain.Cols()),
	)

	camera := renderer.NewCamera(
		vec3(cfg.Camera.LookFrom),
		vec3(cfg.Camera.LookAt),
		core.NewVec3(0, 1, 0),
		cfg.Camera.VFov,
		float64(cfg.Output.Width)/float64(cfg.Output.Height),
	)

	r := renderer.NewRenderer(
		camera,
		[]core.Shape{terrain},
		vec3(cfg.Sun.Direction),
		cfg.Sun.Ambient,
		logger.Log,
	)
	img := r.Render(cfg.Output.Width, cfg.Output.Height)

	if err := renderer.SavePNG(img, cfg.Output.Path); err != nil {
		return err
	}
	logger.Log.Info("image written", zap.String("path", cfg.Output.Path))
	return nil
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
