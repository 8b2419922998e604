// Package main is the entry point for the OffView mesh viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/offview/internal/config"
	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/internal/mesh"
	"github.com/Faultbox/offview/internal/session"
	"github.com/Faultbox/offview/internal/shading"
	"github.com/Faultbox/offview/internal/viewer"
)

func main() {
	// Parse CLI flags first
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

	logger.Info("=== OffView ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// A malformed mesh is fatal; nothing partial is ever shown.
	m, err := mesh.LoadFile(cfg.Mesh.Path)
	if err != nil {
		logger.Error("failed to load mesh", zap.String("path", cfg.Mesh.Path), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m.ComputeNormals()

	prompts := session.NewPrompter(os.Stdin, os.Stdout)

	var model shading.Model
	if cfg.Shading.Model == "" {
		model = session.PromptShading(prompts)
	} else {
		model = shading.Select(cfg.Shading.Model)
	}

	s := session.New(m, model, mgl32.Vec4(cfg.Shading.Light), prompts)

	v, err := viewer.New(viewer.Config{
		Title:      "OffView - " + filepath.Base(cfg.Mesh.Path),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		FOVDegrees: cfg.Graphics.FOVDegrees,
	}, s)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
