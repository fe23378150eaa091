package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rpupo63/construction-site-backend/admin"
	"github.com/rpupo63/construction-site-backend/api"
	"github.com/rpupo63/construction-site-backend/auth"
	"github.com/rpupo63/construction-site-backend/cache"
	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rpupo63/construction-site-backend/content"
	"github.com/rpupo63/construction-site-backend/database"
	"github.com/rpupo63/construction-site-backend/errs"
	"github.com/rpupo63/construction-site-backend/monitoring"
	"github.com/rpupo63/construction-site-backend/services"
	"github.com/rpupo63/construction-site-backend/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultSessionTTL = 12 * time.Hour

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Routes:
  /api/public/...   published content, home page bundle, contact form
  /api/auth/...     admin sign in and sign out
  /api/admin/...    content management (Bearer token or session cookie)
  /admin            admin screens
  /healthz          health check

Environment Variables:
  PORT                    listen port (default 8080)
  DB_TYPE                 supa or sqlite
  STORAGE_BACKEND         s3 or memory (default s3)
  CACHE_BACKEND           memory or redis (default memory)
  NATS_URL                share cache invalidations between instances
  JWT_SECRET              session signing key (required)
  ORPHAN_SWEEP_INTERVAL   run the orphan sweep on a schedule, e.g. 24h`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := loadConfig(ctx)
	if monitoring.Init(cfg, version) {
		defer monitoring.Flush()
	}

	app, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	if config.GetBool(cfg, "AUTO_MIGRATE", false) {
		if err := app.db.Migrate(); err != nil {
			return err
		}
	}

	if interval := config.GetDuration(cfg, "ORPHAN_SWEEP_INTERVAL", 0); interval > 0 {
		deleteMode := config.GetBool(cfg, "ORPHAN_SWEEP_DELETE", false)
		log.Info().Dur("interval", interval).Bool("delete", deleteMode).Msg("Scheduled orphan sweep enabled")
		go app.sweeper.Run(ctx, interval, deleteMode)
	}

	secureCookies := config.GetBool(cfg, "SECURE_COOKIES", config.GetString(cfg, "ENVIRONMENT", "dev") != "dev")
	adminUI := admin.NewHandlers(app.catalog, app.auth, app.db.Contacts(), secureCookies)

	server, err := api.NewServer(cfg, api.Dependencies{
		Catalog: app.catalog,
		Auth:    app.auth,
		Contact: app.contact,
		Sweeper: app.sweeper,
		DB:      app.db,
		AdminUI: adminUI.Routes(),
	})
	if err != nil {
		return err
	}

	errChannel := make(chan error)
	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	cancel()
	server.ShutdownGracefully(30 * time.Second)
	return nil
}

// app holds the wired services shared by the commands.
type app struct {
	db      database.Database
	files   *storage.Files
	catalog *content.Catalog
	auth    *auth.Service
	contact *services.ContactService
	sweeper *services.OrphanSweeper
	closers []io.Closer
	nc      *nats.Conn
}

func (a *app) close() {
	if a.nc != nil {
		a.nc.Close()
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close resource")
		}
	}
}

func openDatabase(cfg map[string]string) (database.Database, error) {
	gdb, err := database.Open(cfg)
	if err != nil {
		return database.Database{}, err
	}
	return database.New(gdb), nil
}

func openFiles(ctx context.Context, cfg map[string]string) (*storage.Files, error) {
	var store storage.ObjectStore
	bucket := config.GetString(cfg, "STORAGE_BUCKET", "company-assets")

	switch backend := config.GetString(cfg, "STORAGE_BACKEND", "s3"); backend {
	case "s3":
		s3Store, err := storage.NewS3StoreFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store, bucket = s3Store, s3Store.Bucket()
	case "memory":
		log.Warn().Msg("Using in-memory object store; uploads are lost on restart")
		store = storage.NewMemoryStore()
	default:
		return nil, errs.BadRequest(fmt.Sprintf("unsupported STORAGE_BACKEND %q", backend))
	}

	publicURL := config.GetString(cfg, "STORAGE_PUBLIC_URL", "")
	if publicURL == "" {
		return nil, errs.NewConfigMissingError("STORAGE_PUBLIC_URL")
	}
	return storage.NewFiles(store, publicURL, bucket), nil
}

func newAuthService(cfg map[string]string, db database.Database) (*auth.Service, error) {
	secret := config.GetString(cfg, "JWT_SECRET", "")
	if secret == "" {
		return nil, errs.NewConfigMissingError("JWT_SECRET")
	}
	ttl := config.GetDuration(cfg, "SESSION_TTL", defaultSessionTTL)
	return auth.NewService(db.Users(), auth.NewTokens(secret, ttl)), nil
}

func buildApp(ctx context.Context, cfg map[string]string) (*app, error) {
	a := &app{}
	var err error

	if a.db, err = openDatabase(cfg); err != nil {
		return nil, err
	}
	if a.files, err = openFiles(ctx, cfg); err != nil {
		return nil, err
	}

	queryCache, err := cache.Open(cfg)
	if err != nil {
		return nil, err
	}
	if c, ok := queryCache.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	deps := content.Deps{
		Cache: queryCache,
		TTL:   config.GetDuration(cfg, "CACHE_TTL", cache.DefaultTTL),
		Files: a.files,
	}
	if natsURL := config.GetString(cfg, "NATS_URL", ""); natsURL != "" {
		subject := config.GetString(cfg, "CONTENT_EVENTS_SUBJECT", "content.changed")
		origin := uuid.NewString()
		a.nc, err = nats.Connect(natsURL, nats.Name("construction-site-backend"))
		if err != nil {
			return nil, errs.NewServiceUnavailableError("nats", err)
		}
		if _, err := cache.Subscribe(a.nc, subject, queryCache, origin); err != nil {
			a.close()
			return nil, errs.NewServiceUnavailableError("nats", err)
		}
		deps.Notifier = cache.NewNotifier(a.nc, subject, origin)
		log.Info().Str("subject", subject).Msg("Sharing cache invalidations over NATS")
	}
	a.catalog = content.NewCatalog(a.db, deps)

	if a.auth, err = newAuthService(cfg, a.db); err != nil {
		return nil, err
	}

	var mailer services.Mailer
	if sender, err := services.NewEmailSender(cfg); err != nil {
		log.Warn().Err(err).Msg("Contact emails disabled")
	} else {
		mailer = sender
	}
	a.contact = services.NewContactService(a.db.Contacts(), services.NewContactNotifierFromConfig(cfg, mailer))

	grace := config.GetDuration(cfg, "ORPHAN_GRACE_PERIOD", services.DefaultGracePeriod)
	a.sweeper = services.NewOrphanSweeper(a.db, a.files, content.ManagedPrefixes, grace)
	return a, nil
}
