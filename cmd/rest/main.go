package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"realestate-chatbot-be/internal/bootstrap"
	"realestate-chatbot-be/internal/config"
	"realestate-chatbot-be/internal/server"
	"realestate-chatbot-be/internal/tracer"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// Tracing stays off unless OTEL_ENABLED=true
	shutdownTracer, err := tracer.Init(context.Background(), cfg.Tracing, cfg.App.Environment)
	if err != nil {
		log.Printf("Tracing disabled: %v", err)
	} else if cfg.Tracing.Enabled {
		log.Printf("Exporting traces for %s (%s) to %s", cfg.Tracing.ServiceName, cfg.App.Environment, cfg.Tracing.Endpoint)
	}
	defer shutdownTracer(context.Background())

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Start Background Services
	if err := container.LeadConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start lead consumer: %v", err)
	}

	// 4. Serve until a signal arrives
	srv := server.New(cfg, container)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
