package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/zhouzirui/mindwell/backend/internal/analysis/triage"
	"github.com/zhouzirui/mindwell/backend/internal/config"
	"github.com/zhouzirui/mindwell/backend/internal/handler"
	"github.com/zhouzirui/mindwell/backend/internal/metrics"
	"github.com/zhouzirui/mindwell/backend/internal/middleware"
	"github.com/zhouzirui/mindwell/backend/internal/model/resource"
	"github.com/zhouzirui/mindwell/backend/internal/service/analytics"
	"github.com/zhouzirui/mindwell/backend/internal/service/booking"
	"github.com/zhouzirui/mindwell/backend/internal/service/chat"
	"github.com/zhouzirui/mindwell/backend/internal/store"
	"github.com/zhouzirui/mindwell/backend/internal/store/memstore"
	"github.com/zhouzirui/mindwell/backend/internal/store/pgstore"
	"github.com/zhouzirui/mindwell/backend/internal/store/sqlitestore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	tokens, err := middleware.ParseTokenDirectory(cfg.AuthTokens)
	if err != nil {
		log.Fatalf("failed to parse AUTH_TOKENS: %v", err)
	}
	if tokens.Len() == 0 {
		log.Println("AUTH_TOKENS not set, booking and admin routes will reject every request")
	}

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Store.Driver, err)
	}
	log.Printf("[store] using %s driver", cfg.Store.Driver)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	engineOpts := []triage.Option{}
	if cfg.Chat.RandomSeed != nil {
		engineOpts = append(engineOpts, triage.WithSeed(*cfg.Chat.RandomSeed))
	}
	engine := triage.NewEngine(engineOpts...)

	defaultLang, _ := triage.ParseLanguage(cfg.Chat.DefaultLanguage)
	chatService := chat.NewService(engine,
		chat.WithStore(st),
		chat.WithMetrics(m),
		chat.WithThinkingDelay(cfg.Chat.ThinkingDelay),
		chat.WithDefaultLanguage(defaultLang),
		chat.WithPersistTimeout(cfg.Store.PersistTimeout),
	)
	bookingService := booking.NewService(st, booking.WithMetrics(m))
	analyticsService := analytics.NewService(st)

	deps := handler.Deps{
		Chat:      chatService,
		Booking:   bookingService,
		Analytics: analyticsService,
		Resources: resource.NewMemoryStore(resource.Seed()),
		Tokens:    tokens,
		Metrics:   m,
	}
	if cfg.MetricsEnabled {
		deps.Gatherer = reg
	}
	router := handler.NewRouter(deps)

	startServer(ctx, cfg.Server, withTracing(router))

	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.PersistTimeout)
	defer cancel()
	if err := chatService.Drain(drainCtx); err != nil {
		log.Printf("[sessionlog] pending writes abandoned: %v", err)
	}
	if err := st.Close(); err != nil {
		log.Printf("[store] close failed: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memstore.New(), nil
	case config.DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return pgstore.New(connectCtx, cfg.DatabaseURL)
	case config.DriverSQLite:
		return sqlitestore.New(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// withTracing wraps h with otel spans and trace context propagation.
func withTracing(h http.Handler) http.Handler {
	return otelhttp.NewHandler(h, "http.server",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
		}),
		// named by method here; middleware.TraceRoute adds the route pattern
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("MindWell backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
