// Package main is the entry point for the filesystem API server.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dalangge1/vite-plugin-fs/internal/config"
	"github.com/dalangge1/vite-plugin-fs/internal/fs"
	"github.com/dalangge1/vite-plugin-fs/internal/handler"
	"github.com/dalangge1/vite-plugin-fs/internal/logging"
	"github.com/dalangge1/vite-plugin-fs/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var fsys fs.FileSystem
	if cfg.Ref != "" {
		fsys = fs.NewGitFS(cfg.Root, cfg.Ref)
		logger.Info("serving git ref", zap.String("root", cfg.Root), zap.String("ref", cfg.Ref))
	} else {
		fsys = fs.NewLocalFS(cfg.Root)
		logger.Info("serving directory", zap.String("root", cfg.Root))
	}

	h := handler.NewReadHandler(fsys, handler.DefaultResolver, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	r.GET("/raw/*path", h.Raw)

	// Every other path is a filesystem read. Registered as the no-route
	// fallback because a root-level catch-all would conflict with /raw.
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Data(http.StatusNotFound, "text/plain", nil)
			return
		}
		h.Serve(c)
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	logger.Info("server starting", zap.String("url", url))

	if cfg.Open {
		go openBrowser(url)
	}

	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default: // linux, etc.
		cmd = "xdg-open"
		args = []string{url}
	}

	_ = exec.Command(cmd, args...).Start()
}
