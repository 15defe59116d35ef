// Package main provides the entry point for synthosd, the page-transformation
// core's HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/synthos/synthos/internal/config"
	"github.com/synthos/synthos/internal/pagecache"
	"github.com/synthos/synthos/internal/provider"
	"github.com/synthos/synthos/internal/server"
)

var (
	port      = flag.Int("port", 8080, "Server port")
	directory = flag.String("directory", "", "Project directory (for .synthos/synthos.json and .env)")
	version   = flag.Bool("version", false, "Print version and exit")
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("synthosd %s (%s)\n", Version, BuildTime)
		os.Exit(0)
	}

	workDir := *directory
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			log.Fatalf("Failed to get working directory: %v", err)
		}
	}

	log.Printf("Starting synthosd v%s", Version)
	log.Printf("Project directory: %s", workDir)

	paths := config.GetPaths()
	if err := paths.EnsurePaths(); err != nil {
		log.Fatalf("Failed to create data directories: %v", err)
	}

	appConfig, err := config.Load(workDir)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cacheDir := appConfig.CacheDir
	if cacheDir == "" {
		cacheDir = paths.PageCacheDir()
	}
	cache := pagecache.New(cacheDir)

	ctx := context.Background()
	providerReg, err := provider.NewRegistry(ctx, *appConfig)
	if err != nil {
		log.Printf("Warning: no provider could be initialized: %v", err)
	}

	serverConfig := server.DefaultConfig()
	serverConfig.Port = *port

	srv := server.New(serverConfig, appConfig, cache, providerReg)

	go func() {
		log.Printf("synthosd listening on http://localhost:%d", *port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down synthosd...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("synthosd stopped")
}
