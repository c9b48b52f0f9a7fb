// cmd/athena/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"athena/internal/assistant"
	"athena/internal/catalog"
	"athena/internal/circulation"
	"athena/internal/config"
	"athena/internal/report"
	"athena/internal/roster"
	"athena/internal/store"
	"athena/internal/telemetry"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("athena exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if cfg.OTLPEndpoint != "" {
		shutdown, err := telemetry.Init(ctx, "athena", cfg.OTLPEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				logger.Warn("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	catalogSvc, err := catalog.NewService(ctx, st, logger)
	if err != nil {
		return err
	}
	rosterSvc, err := roster.NewService(ctx, st, logger)
	if err != nil {
		return err
	}
	circulationSvc, err := circulation.NewService(ctx, st, catalogSvc, rosterSvc, logger)
	if err != nil {
		return err
	}

	var gen assistant.Generator
	if cfg.GeminiAPIKey != "" {
		gen, err = assistant.NewGoogleGenerator(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI librarian disabled")
		gen = assistant.NewDisabledGenerator()
	}
	gateway := assistant.NewGateway(gen, logger,
		assistant.WithModel(cfg.GeminiModel),
		assistant.WithTimeout(cfg.AskTimeout),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Mount("/books", catalog.NewHandler(catalogSvc).Routes())
		r.Mount("/students", roster.NewHandler(rosterSvc).Routes())
		r.Mount("/circulation", circulation.NewHandler(circulationSvc).Routes())
		r.Get("/dashboard", report.NewHandler(catalogSvc, rosterSvc, circulationSvc).HandleDashboard)
		r.Post("/assistant/ask", assistant.NewHandler(gateway, catalogSvc, rosterSvc, circulationSvc).HandleAsk)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("athena listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
