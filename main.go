package main

import (
	"github.com/mlukasik/auth-service/internal/config"
	"github.com/mlukasik/auth-service/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
