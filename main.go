package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/taskify/modules/api"
	"github.com/example/taskify/modules/auth"
	"github.com/example/taskify/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Taskify ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Independent modules first, then the API that depends on them.
	app.Register(auth.NewModule())
	app.Register(task.NewModule())
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

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

func printStartupInfo() {
	log.Println("")
	log.Println("Taskify started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register       - Register a new account")
	log.Println("  POST   /api/v1/auth/login          - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh        - Refresh access token")
	log.Println("  GET    /health                     - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile             - Current account")
	log.Println("  GET    /api/v1/tasks               - List tasks (?status= &q= &page=)")
	log.Println("  POST   /api/v1/tasks               - Create a task")
	log.Println("  GET    /api/v1/tasks/:id           - Get a task")
	log.Println("  PUT    /api/v1/tasks/:id           - Update a task")
	log.Println("  DELETE /api/v1/tasks/:id           - Delete a task")
	log.Println("  POST   /api/v1/tasks/:id/toggle    - Toggle pending/completed")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
