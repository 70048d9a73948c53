package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mailgen/internal/config"
	"mailgen/internal/httpapi"
	"mailgen/internal/mail"
	"mailgen/internal/manager"
	"mailgen/internal/registry"
)

// app is the wired service: one model handle shared by everything.
type app struct {
	mgr *manager.Manager
	svc mail.Service
	log zerolog.Logger
}

func (a *app) close() {
	if err := a.mgr.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close model")
	}
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// newAdapter picks the inference backend named in cfg.
func newAdapter(cfg config.ModelConfig, log zerolog.Logger) (manager.InferenceAdapter, error) {
	reqTimeout, connTimeout := seconds(cfg.RequestTimeoutSeconds), seconds(cfg.ConnectTimeoutSeconds)
	switch cfg.Backend {
	case "hf":
		return manager.NewHFAdapter(cfg.BaseURL, cfg.APIKey, reqTimeout, connTimeout), nil
	case "llama-server":
		return manager.NewLlamaServerAdapter(cfg.BaseURL, cfg.APIKey, reqTimeout, connTimeout, log), nil
	case "openai":
		return manager.NewOpenAIAdapter(cfg.BaseURL, cfg.APIKey, reqTimeout), nil
	case "llama":
		return manager.NewLlamaAdapter(cfg.CtxSize, cfg.Threads, cfg.GPULayers), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// buildApp loads the model. Any failure is a model load error and ends the process.
func buildApp(ctx context.Context, cfg config.Config, log zerolog.Logger) (*app, error) {
	cache, err := registry.NewCache(cfg.Model.CacheDir)
	if err != nil {
		return nil, mail.ModelLoadError(err)
	}
	cache.Register(registry.HTTPFetcher{Token: cfg.Model.SourceToken}, "http", "https")
	if cfg.Model.S3Endpoint != "" {
		s3f, err := registry.NewS3Fetcher(cfg.Model.S3Endpoint, cfg.Model.S3AccessKey, cfg.Model.S3SecretKey, cfg.Model.S3UseSSL)
		if err != nil {
			return nil, mail.ModelLoadError(err)
		}
		cache.Register(s3f, "s3")
	}

	opts := []manager.Option{manager.WithResolver(cache), manager.WithLogger(log)}
	if cfg.Model.Tokenizer != "" {
		tr, err := manager.NewTokenTruncator(cfg.Model.Tokenizer, cache.Dir())
		if err != nil {
			return nil, mail.ModelLoadError(err)
		}
		opts = append(opts, manager.WithTruncator(tr))
	}

	adapter, err := newAdapter(cfg.Model, log)
	if err != nil {
		return nil, mail.ModelLoadError(err)
	}
	mgr := manager.New(manager.Config{
		ModelID: cfg.Model.ID,
		Backend: cfg.Model.Backend,
		Source:  cfg.Model.Source,
		Device:  cfg.Model.Device,
		Local:   cfg.Model.Backend == "llama",
		MaxWait: seconds(cfg.Model.MaxWaitSeconds),
	}, adapter, opts...)
	if err := mgr.Load(ctx); err != nil {
		return nil, mail.ModelLoadError(err)
	}

	prompts, err := mail.ParsePrompts(cfg.Reply.PromptTemplate, cfg.Summary.PromptTemplate)
	if err != nil {
		_ = mgr.Close()
		return nil, err
	}
	return &app{mgr: mgr, svc: mail.NewService(mgr, prompts, log), log: log}, nil
}

func runServe(ctx context.Context, o *options) error {
	cfg, log := o.cfg, o.log
	log.Info().Str("model", cfg.Model.ID).Str("backend", cfg.Model.Backend).Str("cache_dir", cfg.Model.CacheDir).Bool("llama_built", manager.LlamaBuilt()).Msg("starting mailgen")
	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}
	defer a.close()
	md := a.mgr.Model()
	log.Info().Str("model", md.ID).Str("device", md.Device).Msg("model ready")

	httpapi.SetLogger(log)
	httpapi.SetMaxBodyBytes(cfg.Server.MaxBodyBytes)
	httpapi.SetCORSOrigins(cfg.Server.CORSOrigins)
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewMux(a.svc, a.mgr),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       seconds(cfg.Server.ReadTimeoutSeconds),
		WriteTimeout:      seconds(cfg.Server.WriteTimeoutSeconds),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Msg("mailgen listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown error")
		}
		return nil
	})
	return g.Wait()
}
