package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
	_ "time/tzdata" // Asia/Seoul on hosts without a zone database

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"workoutlog/internal/config"
	"workoutlog/internal/logging"
	"workoutlog/internal/record"
	"workoutlog/internal/session"
	"workoutlog/internal/store"
	"workoutlog/internal/web"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			logging.New,
			newStore,
			session.NewRegistry,
			newHandler,
			newHTTPServer,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}

func newStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (record.Store, error) {
	// Cloud clients keep this context for token refresh, so it must outlive startup.
	s, closeFn, err := store.Open(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return closeFn() },
	})
	return s, nil
}

func newHandler(s record.Store, sessions *session.Registry, log *zap.Logger, cfg *config.Config) (*web.Handler, error) {
	return web.NewHandler(s, sessions, log, web.Options{
		Form:    cfg.Form,
		CSRFKey: cfg.CSRFKey,
		Secure:  cfg.IsProduction(),
	})
}

func newHTTPServer(lc fx.Lifecycle, h *web.Handler, cfg *config.Config, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("listening", zap.String("addr", "http://127.0.0.1"+srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
