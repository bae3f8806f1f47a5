package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/formintake/internal/cooldown"
	"github.com/dmitrymomot/formintake/internal/httpapi"
	"github.com/dmitrymomot/formintake/internal/notify"
	"github.com/dmitrymomot/formintake/internal/store"
	"github.com/dmitrymomot/formintake/internal/submission"
	"github.com/dmitrymomot/formintake/internal/upload"
	"github.com/dmitrymomot/formintake/pkg/config"
	"github.com/dmitrymomot/formintake/pkg/cookie"
	"github.com/dmitrymomot/formintake/pkg/email"
	"github.com/dmitrymomot/formintake/pkg/environment"
	"github.com/dmitrymomot/formintake/pkg/httpserver"
	"github.com/dmitrymomot/formintake/pkg/logger"
	"github.com/dmitrymomot/formintake/pkg/pg"
	"github.com/dmitrymomot/formintake/pkg/ratelimiter"
	"github.com/dmitrymomot/formintake/pkg/redis"
	"github.com/dmitrymomot/formintake/pkg/requestid"
	"github.com/dmitrymomot/formintake/pkg/session"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Name        string `env:"APP_NAME" envDefault:"formintake"`
	MaxBodySize int64  `env:"HTTP_MAX_BODY_SIZE" envDefault:"1048576"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var app appConfig
	if err := config.Load(&app); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(environment.Parse(app.Env), app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var (
		pgCfg       pg.Config
		httpCfg     httpserver.Config
		sessionCfg  session.Config
		cookieCfg   cookie.Config
		mailCfg     email.Config
		smtpCfg     email.SMTPConfig
		uploadCfg   upload.Config
		cooldownCfg cooldown.Config
		notifyCfg   notify.Config
		limitCfg    ratelimiter.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&sessionCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&mailCfg) },
		func() error { return config.Load(&smtpCfg) },
		func() error { return config.Load(&uploadCfg) },
		func() error { return config.Load(&cooldownCfg) },
		func() error { return config.Load(&notifyCfg) },
		func() error { return config.Load(&limitCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}
	if notifyCfg.AdminEmail == "" {
		notifyCfg.AdminEmail = mailCfg.SenderEmail
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if pgCfg.AutoMigrate {
		if err := pg.Migrate(ctx, pool, store.Migrations, pgCfg, log); err != nil {
			return err
		}
	}

	checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}

	var sessionStore session.Store
	switch sessionCfg.Store {
	case session.StoreRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		sessionStore = session.NewRedisStore(client)
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	default:
		sessionStore = session.NewMemoryStore(sessionCfg.CleanupInterval)
	}

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}
	sessions := session.NewFromConfig(sessionCfg,
		session.WithStore(sessionStore),
		session.WithCookieManager(cookies),
		session.WithErrorHandler(httpapi.SessionErrorHandler(log)),
	)
	defer func() { _ = sessions.Close() }()

	mailer, err := email.New(mailCfg, smtpCfg)
	if err != nil {
		return err
	}

	storage, err := upload.NewStorage(ctx, uploadCfg)
	if err != nil {
		return err
	}

	limiter := cooldown.New(cooldown.NewSessionState(sessions, cooldownCfg.SessionKey), cooldownCfg)
	pipeline := submission.New(
		limiter,
		upload.New(storage,
			upload.WithMaxSize(uploadCfg.MaxSize),
			upload.WithBasePath(uploadCfg.BasePath),
			upload.WithLogger(log),
		),
		store.New(pool, store.WithLogger(log)),
		notify.New(mailer, notifyCfg, notify.WithLogger(log)),
		submission.WithLogger(log),
	)

	opts := httpapi.Options{
		Pipeline:         pipeline,
		Session:          sessions.EnsureSession,
		Cooldown:         limiter,
		Checks:           checks,
		MaxBodySize:      app.MaxBodySize,
		MaxMultipartSize: 2*uploadCfg.MaxSize + app.MaxBodySize,
		Logger:           log,
	}
	if uploadCfg.Storage == upload.StorageLocal {
		opts.Uploads = http.Dir(uploadCfg.Dir)
		opts.UploadsPrefix = uploadCfg.URLPrefix
	}
	if limitCfg.Enabled {
		limitStore := ratelimiter.NewMemoryStore()
		defer limitStore.Close()
		bucket, err := ratelimiter.NewBucket(limitStore, limitCfg)
		if err != nil {
			return err
		}
		opts.RateLimit = bucket
	}

	log.InfoContext(ctx, "starting server",
		slog.String("addr", httpCfg.Addr),
		slog.String("mail_driver", mailCfg.Driver),
		slog.String("upload_storage", uploadCfg.Storage),
		slog.String("session_store", sessionCfg.Store),
	)

	return httpserver.New(httpCfg, httpapi.NewRouter(opts), httpserver.WithLogger(log)).Run(ctx)
}
