package handler

import (
	"os"
	"testing"

	"github.com/pranavvermapv/real-estate-crm/internal/upload"
	"github.com/pranavvermapv/real-estate-crm/pkg/config"
	"github.com/pranavvermapv/real-estate-crm/prometheus"
)

// TestMain wires the package singletons the handlers reach for: metrics
// (promauto registers globally, so exactly once per binary) and an upload
// store rooted in a scratch directory.
func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	dir, err := os.MkdirTemp("", "crm-uploads-*")
	if err != nil {
		panic(err)
	}
	cfg.Upload.Dir = dir

	prometheus.InitMetrics(cfg)
	upload.Init(cfg)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
