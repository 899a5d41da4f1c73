package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"route-engine/internal/app"
	"route-engine/internal/config"
	"route-engine/internal/controllers"
	"route-engine/internal/middleware"
	"route-engine/internal/resolve"
	"route-engine/internal/server"
)

func main() {
	_ = godotenv.Load()

	// Load and validate configuration
	cfg := config.Load()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Register controllers, then compile the table exactly once
	a.RegisterController(newSiteController())
	a.RegisterController(newUserController(a))

	if err := a.Publish(); err != nil {
		log.Fatalf("Failed to publish routes: %v", err)
	}

	// The engine handler resolves everything except the metrics endpoint
	root := http.NewServeMux()
	root.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	root.Handle("/", middleware.Logging(a.Logger)(server.NewEngineHandler(a)))

	srv := server.New(root, cfg.Port)
	errCh := srv.Start()
	fmt.Printf("Server starting on port %s...\n", cfg.Port)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		fmt.Println("Shutting down server...")
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Println("Server exited")
}

// newSiteController serves the landing page and the health check
func newSiteController() *controllers.Base {
	c := controllers.NewBase("site")

	c.Register("index", "/", []string{"GET"}, func(ctx context.Context, a *resolve.App, params map[string]string) (interface{}, error) {
		return resolve.HTML(200, "<h1>route-engine</h1><p>It works.</p>"), nil
	})

	c.Register("health", "/health", []string{"GET"}, func(ctx context.Context, a *resolve.App, params map[string]string) (interface{}, error) {
		return resolve.JSON(200, map[string]string{"status": "ok"}), nil
	})

	return c
}

// newUserController demonstrates path parameters and reverse routing
func newUserController(a *app.App) *controllers.Base {
	c := controllers.NewBase("user")

	c.Register("view", "/user/{id}", []string{"GET"}, func(ctx context.Context, reqApp *resolve.App, params map[string]string) (interface{}, error) {
		profileURL := a.URLs.CreateURL("user/tab", map[string]string{
			"id":  params["id"],
			"tab": "profile",
		})
		return resolve.JSON(200, map[string]string{
			"id":      params["id"],
			"profile": profileURL,
		}), nil
	})

	c.Register("tab", "/user/{id}/{tab}", []string{"GET"}, func(ctx context.Context, reqApp *resolve.App, params map[string]string) (interface{}, error) {
		return resolve.JSON(200, map[string]string{
			"id":  params["id"],
			"tab": params["tab"],
		}), nil
	})

	return c
}
