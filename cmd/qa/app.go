package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/moringa-qa/client/config"
	"github.com/moringa-qa/client/internal/advisor"
	"github.com/moringa-qa/client/internal/aggregate"
	"github.com/moringa-qa/client/internal/auth"
	"github.com/moringa-qa/client/internal/gateway"
	"github.com/moringa-qa/client/internal/orchestrator"
	"github.com/moringa-qa/client/internal/viewsession"
)

// app wires the client core: config, logger, gateway, view-session
// tracker, aggregate store, orchestrator and advisor. Created once per
// command invocation.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	gw      *gateway.Client
	tracker *viewsession.Tracker
	store   *aggregate.Store
	orch    *orchestrator.Orchestrator
	adv     *advisor.Advisor
	token   string

	closers []func() error
}

func newApp(ctx context.Context) (*app, error) {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	tokens := auth.StaticToken(cfg.Auth.Token)
	httpClient := &http.Client{Timeout: time.Duration(cfg.API.TimeoutSec) * time.Second}
	gw := gateway.NewClient(cfg.API.BaseURL, tokens, httpClient, logger)

	a := &app{
		cfg:    cfg,
		logger: logger,
		gw:     gw,
		token:  cfg.Auth.Token,
	}

	var store viewsession.Store
	if cfg.Redis.Addr != "" {
		ttl := time.Duration(cfg.Redis.SessionTTLSec) * time.Second
		redisStore, err := viewsession.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "qa:session:", ttl, logger)
		if err != nil {
			// Degraded mode: view tracking falls back to in-process state.
			logger.Warn("redis session store unavailable, using in-process store", zap.Error(err))
			store = viewsession.NewMemoryStore()
		} else {
			store = redisStore
			a.closers = append(a.closers, redisStore.Close)
		}
	} else {
		store = viewsession.NewMemoryStore()
	}

	a.tracker = viewsession.NewTracker(store, logger)
	a.store = aggregate.NewStore(gw, a.tracker, logger)
	a.orch = orchestrator.New(gw, a.store, logger)
	a.adv = advisor.New(gw.ListDuplicates, cfg.Advisor.MinTitleLen,
		time.Duration(cfg.Advisor.QuietMs)*time.Millisecond, logger)
	return a, nil
}

func (a *app) close() {
	a.adv.Close()
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("close", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
