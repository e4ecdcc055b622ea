package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abhinxvz/task-mng/modules/api"
	"github.com/abhinxvz/task-mng/modules/notification"
	"github.com/abhinxvz/task-mng/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager ===")

	cfg := loadConfig()

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open task store: %v", err)
	}

	// Independent modules first, then modules with dependencies.
	modules := []mono.Module{
		notification.NewModule(app.Logger()),
		task.NewModule(store, cfg.StoreBackend, app.Logger()),
		api.NewModule(cfg.ListenAddr(), cfg.AllowedOrigins, app.Logger()),
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Fatalf("Failed to register %s module: %v", m.Name(), err)
		}
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// openStore creates the task store selected by cfg.
func openStore(cfg Config) (task.Store, error) {
	switch cfg.StoreBackend {
	case backendMemory:
		return task.NewMemoryStore(), nil
	case backendSQLite:
		db, err := task.OpenSQLite(cfg.DBPath, cfg.DBDebug)
		if err != nil {
			return nil, err
		}
		store, err := task.NewSQLiteStore(db)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %s or %s)", cfg.StoreBackend, backendMemory, backendSQLite)
	}
}

func printStartupInfo(cfg Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("Task store: %s", cfg.StoreBackend)
	if cfg.StoreBackend == backendSQLite {
		log.Printf("Database: %s", cfg.DBPath)
	}
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.Port)
	log.Println("  GET    /tasks              - List all tasks")
	log.Println("  POST   /tasks              - Create a task")
	log.Println("  PUT    /tasks/:id          - Update a task")
	log.Println("  PUT    /tasks/:id/complete - Toggle completion")
	log.Println("  DELETE /tasks/:id          - Delete a task")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
