package api

import (
	"context"
	"fmt"
	"time"

	"github.com/abhinxvz/task-mng/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Module is the driving adapter that exposes the task REST endpoints. It
// reaches the task module only through TaskPort.
type Module struct {
	app            *fiber.App
	addr           string
	allowedOrigins string
	taskPort       task.TaskPort
	logger         types.Logger
}

var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the API module listening on addr. allowedOrigins is a
// comma separated CORS origin list; "*" allows every origin.
func NewModule(addr, allowedOrigins string, moduleLogger types.Logger) *Module {
	return &Module{
		addr:           addr,
		allowedOrigins: allowedOrigins,
		logger:         moduleLogger.WithModule("api"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	}
}

// Start builds the Fiber app and starts listening.
func (m *Module) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("taskPort dependency not set")
	}

	m.app = m.newApp()

	// Start server in goroutine with startup error detection
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app != nil {
		if err := m.app.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.addr,
		},
	}
}

// newApp creates the Fiber app for the module's task port.
func (m *Module) newApp() *fiber.App {
	return NewApp(m.taskPort, m.allowedOrigins, m.logger)
}

// NewApp creates a Fiber app with middleware and the task routes served
// over tasks.
func NewApp(tasks task.TaskPort, allowedOrigins string, appLogger types.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Task Manager API",
		DisableStartupMessage: true,
		ErrorHandler:          newErrorHandler(appLogger),
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency} ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	registerRoutes(app, NewHandlers(tasks, appLogger))
	return app
}

// registerRoutes sets up all HTTP routes.
func registerRoutes(app *fiber.App, h *Handlers) {
	app.Get("/health", h.HealthCheck)

	app.Get("/tasks", h.ListTasks)
	app.Post("/tasks", h.CreateTask)
	app.Put("/tasks/:id", h.UpdateTask)
	app.Put("/tasks/:id/complete", h.ToggleComplete)
	app.Delete("/tasks/:id", h.DeleteTask)
}

// newErrorHandler answers every unhandled error with an ErrorResponse.
func newErrorHandler(appLogger types.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := MsgInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			appLogger.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
		}

		return c.Status(code).JSON(ErrorResponse{Error: message})
	}
}
